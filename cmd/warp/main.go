package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/falk/warp/decode"
	"github.com/falk/warp/encode"
	"github.com/falk/warp/internal/codec"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "c", "compress":
		runCompress(os.Args[2:])
	case "d", "decompress":
		runDecompress(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Warp - parallel chunked file compressor")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  warp compress [flags] <input> <output.warp>")
	fmt.Fprintln(os.Stderr, "  warp decompress [flags] <input.warp> <output>")
}

func runCompress(args []string) {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	threads := fs.Int("threads", 1, "worker goroutines")
	level := fs.Int("level", 1, "codec compression level")
	algo := fs.String("algo", "auto", "codec: auto, zstd, lz4, snappy")
	chunkBytes := fs.Uint("chunk-bytes", 0, "override chunk size in bytes (0 = policy default)")
	autoMode := fs.String("auto-mode", "balanced", "warm-up scoring: balanced, throughput, ratio")
	autoLock := fs.Int("auto-lock", 4, "chunks sampled during warm-up")
	doIndex := fs.Bool("index", true, "write the optional index block")
	checksum := fs.Bool("checksum", false, "write an end-to-end xxh64 checksum block")
	verbose := fs.Bool("v", false, "print a summary after encoding")
	fs.Parse(args)

	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	opts := encode.DefaultOptions()
	opts.Threads = *threads
	opts.Level = *level
	opts.ChunkBytes = uint32(*chunkBytes)
	opts.AutoLock = *autoLock
	opts.DoIndex = *doIndex
	opts.Verbose = *verbose

	a, err := parseAlgo(*algo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warp: %v\n", err)
		os.Exit(2)
	}
	opts.Algo = a

	switch *autoMode {
	case "throughput":
		opts.AutoMode = encode.Throughput
	case "ratio":
		opts.AutoMode = encode.Ratio
	default:
		opts.AutoMode = encode.Balanced
	}

	if *checksum {
		opts.ChkKind = encode.ChecksumXXH64
	}

	if err := encode.Encode(context.Background(), fs.Arg(0), fs.Arg(1), opts); err != nil {
		fmt.Fprintf(os.Stderr, "warp: compress failed: %v\n", err)
		os.Exit(1)
	}
}

func runDecompress(args []string) {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	threads := fs.Int("threads", 1, "worker goroutines")
	verify := fs.Bool("verify", false, "verify the end-to-end checksum, if present")
	verbose := fs.Bool("v", false, "print a summary after decoding")
	fs.Parse(args)

	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	opts := decode.Options{
		Threads: *threads,
		Verify:  *verify,
		Verbose: *verbose,
	}

	if err := decode.Decode(context.Background(), fs.Arg(0), fs.Arg(1), opts); err != nil {
		fmt.Fprintf(os.Stderr, "warp: decompress failed: %v\n", err)
		os.Exit(1)
	}
}

func parseAlgo(s string) (codec.Algo, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case "zstd":
		return codec.Zstd, nil
	case "lz4":
		return codec.Lz4, nil
	case "snappy":
		return codec.Snappy, nil
	default:
		return 0, fmt.Errorf("unknown algo %q (want auto, zstd, lz4, or snappy)", s)
	}
}
