// Command tngdump prints a summary of a trajectory file: particle, frame and
// frame-set counts, plus one line per frame set with its header fields.
package main

import (
	"fmt"
	"os"

	"github.com/ogier/pflag"

	"github.com/tngformat/tng"
	"github.com/tngformat/tng/format"
)

var hashMode = pflag.String("hash", "use", "integrity hash mode: \"use\" or \"skip\"")

func main() {
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tngdump [--hash=use|skip] <file.tng>")
		os.Exit(2)
	}

	if err := run(pflag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "tngdump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	mode, err := parseHashMode(*hashMode)
	if err != nil {
		return err
	}

	tj, err := tng.NewTrajectory(tng.WithHashMode(mode))
	if err != nil {
		return err
	}

	if err := tj.Open(path, format.ReadMode); err != nil {
		return err
	}
	defer tj.Close()

	fmt.Printf("particles:  %d\n", tj.NumParticlesGet())
	fmt.Printf("frames:     %d\n", tj.NumFramesGet())
	fmt.Printf("frame sets: %d\n", tj.NumFrameSetsGet())

	for i := 0; i < int(tj.NumFrameSetsGet()); i++ {
		h, err := tj.FrameSetNrFind(i)
		if err != nil {
			return err
		}
		fmt.Printf("  [%d] first_frame=%d frame_count=%d frames_written=%d mappings=%d\n",
			i, h.FirstFrame, h.FrameCount, h.FramesWritten, h.MappingCount)
	}

	return nil
}

func parseHashMode(s string) (format.HashMode, error) {
	switch s {
	case "use":
		return format.HashUse, nil
	case "skip":
		return format.HashSkip, nil
	default:
		return 0, fmt.Errorf("tngdump: unknown hash mode %q", s)
	}
}
