package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/mki/max-dump/container"
	"github.com/mki/max-dump/export"
	"github.com/mki/max-dump/render"
	"github.com/mki/max-dump/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	logger.New("INFO")
	defer logger.OnExit()

	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "streams":
		return cmdStreams(args[1:], out, errOut)
	case "dump":
		return cmdDump(args[1:], out, errOut)
	case "export":
		return cmdExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "maxdump: decode the chunk streams of 3ds Max scene archives")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  maxdump streams <file.max>")
	fmt.Fprintln(w, "  maxdump dump [-stream Scene] [-max-depth N] <file.max>")
	fmt.Fprintln(w, "  maxdump export [-stream Scene] [-o out.cbor] <file.max>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - stream names are full directory paths, '/' separated; 'streams' lists them")
	fmt.Fprintln(w, "  - export writes a deterministic CBOR document (stdout without -o)")
}

func cmdStreams(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("streams", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: maxdump streams <file.max>")
		return 2
	}

	cf, err := container.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "open archive: %v\n", err)
		return 1
	}
	defer cf.Close()

	for _, name := range cf.StreamNames() {
		fmt.Fprintln(out, name)
	}
	return 0
}

func cmdDump(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var streamName string
	var maxDepth int
	fs.StringVar(&streamName, "stream", "Scene", "Stream to decode")
	fs.IntVar(&maxDepth, "max-depth", storage.DefaultMaxDepth, "Container nesting bound")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: maxdump dump [-stream Scene] [-max-depth N] <file.max>")
		return 2
	}

	cf, err := container.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "open archive: %v\n", err)
		return 1
	}
	defer cf.Close()

	p := storage.NewParser(logger.Sugar, cf, storage.WithMaxDepth(maxDepth))
	nodes, err := p.Parse(context.Background(), streamName)
	if err != nil {
		fmt.Fprintf(errOut, "parse: %v\n", err)
		return 1
	}

	if err := render.Tree(out, nodes); err != nil {
		fmt.Fprintf(errOut, "render: %v\n", err)
		return 1
	}
	return 0
}

func cmdExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var streamName string
	var outPath string
	fs.StringVar(&streamName, "stream", "Scene", "Stream to decode")
	fs.StringVar(&outPath, "o", "", "Output file (stdout when empty)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: maxdump export [-stream Scene] [-o out.cbor] <file.max>")
		return 2
	}

	cf, err := container.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "open archive: %v\n", err)
		return 1
	}
	defer cf.Close()

	p := storage.NewParser(logger.Sugar, cf)
	nodes, err := p.Parse(context.Background(), streamName)
	if err != nil {
		fmt.Fprintf(errOut, "parse: %v\n", err)
		return 1
	}

	codec, err := export.NewCodec()
	if err != nil {
		fmt.Fprintf(errOut, "codec: %v\n", err)
		return 1
	}
	data, err := export.Marshal(codec, export.NewDocument(streamName, nodes))
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}

	if outPath == "" {
		_, _ = out.Write(data)
		return 0
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}
