package storage

/*

# Chunk stream decoding for 3ds Max scene archives

A scene archive is an OLE compound file whose named streams ("Scene",
"ClassData", "Config", ...) each hold one contiguous run of chunks. A chunk
is a small header followed by a payload, and the header's length field does
double duty:

  - the sign bit discriminates the payload form: set means the payload is a
    nested sequence of child chunks (a container), clear means raw bytes (a
    value)
  - the remaining bits carry the total chunk size, header included

The length is a 32 bit field unless it is zero, in which case the real
length follows as a 64 bit field with the same sign bit convention. All
fields are little endian; the format's native platform never wrote anything
else.

Decoding is a budgeted recursive descent. Each container's declared payload
is the exact byte budget for its children: every chunk's claim is checked
against the enclosing budget before any payload byte is read, and a
container whose children do not consume the budget exactly is an error.
Malformed input is always reported as a decode error, never a panic, and
never a partial tree.

Chunk identifiers are opaque here. They are only meaningful relative to the
containing chunk, and interpreting them is left to callers (see the values
package for the per-id decoding hooks).

*/
