package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mki/max-dump/internal/chunktest"
	"github.com/mki/max-dump/storage"
)

func fixtureForest(t *testing.T) []storage.Node {
	t.Helper()
	stream := chunktest.Stream(
		chunktest.Container(0x0002,
			chunktest.Value(0x0001, []byte("Hello")),
			chunktest.ExtendedValue(0x0004, []byte{0x0e, 0x00, 0x00, 0x00}),
		),
		chunktest.Value(0x0003, []byte("tail")),
	)
	nodes, err := storage.Decode(stream)
	require.NoError(t, err)
	return nodes
}

func TestDocumentRoundTrip(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	doc := Document{
		DumpID:    "0cbd27fc-17dc-4dbc-a1cf-960a0f0b2c45",
		Stream:    "Scene",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
		Nodes:     fromStorage(fixtureForest(t)),
	}

	data, err := Marshal(codec, doc)
	require.NoError(t, err)

	back, err := Unmarshal(codec, data)
	require.NoError(t, err)
	require.Equal(t, doc, back)
}

func TestMarshalDeterministic(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	doc := NewDocument("Scene", fixtureForest(t))

	one, err := Marshal(codec, doc)
	require.NoError(t, err)
	two, err := Marshal(codec, doc)
	require.NoError(t, err)
	assert.Equal(t, one, two)
}

func TestForestRoundTrip(t *testing.T) {
	forest := fixtureForest(t)
	doc := NewDocument("Scene", forest)
	require.Equal(t, forest, doc.Forest())
}

func TestNewDocumentStampsIdentity(t *testing.T) {
	doc := NewDocument("Scene", nil)

	assert.Equal(t, "Scene", doc.Stream)
	_, err := uuid.Parse(doc.DumpID)
	require.NoError(t, err)
	assert.NotZero(t, doc.CreatedAt)
	assert.Empty(t, doc.Nodes)
}
