// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvreel/cadenza"
	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/formats/wav"
)

var exportCmd = &cobra.Command{
	Use:   "export <input> <output.wav>",
	Short: "Decode an audio file and write it as 16-bit PCM WAV",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	registry := cadenza.DefaultRegistry()
	dec, ok := registry.Lookup(in)
	if !ok {
		return fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, in)
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("opening %s: %w", in, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}

	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer w.Close()

	if err := wav.WriteBuffer(w, buf); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("%s: %d Hz, %d channel(s), %s\n",
		out, buf.SampleRate, buf.Channels, buf.Duration().Round(1e6))
	return nil
}
