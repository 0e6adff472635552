// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvreel/cadenza"
	"github.com/mvreel/cadenza/config"
	"github.com/mvreel/cadenza/device"
	"github.com/mvreel/cadenza/logging"
)

var (
	playRate float64
	playGain float64
	playLoop bool
)

var playCmd = &cobra.Command{
	Use:   "play <file>...",
	Short: "Play audio files through the engine",
	Long: `Play mixes the given files into one output stream. Every file is
loaded asynchronously and starts as soon as its decode finishes, so long
tracks begin together with short ones only if you wait for them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&playRate, "rate", 1.0, "playback rate multiplier (scales pitch and speed)")
	playCmd.Flags().Float64Var(&playGain, "gain", 1.0, "volume scale")
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "loop playback until interrupted")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	eng := cadenza.New(cadenza.Options{
		SampleRate:        cfg.Audio.SampleRate,
		Channels:          cfg.Audio.Channels,
		CommandQueueDepth: cfg.Audio.CommandQueueDepth,
		LoaderQueueDepth:  cfg.Audio.LoaderQueueDepth,
		Logger:            log,
	})
	defer eng.Close()

	out, err := device.Open(eng.Mixer(), device.Options{
		BufferSize: time.Duration(cfg.Audio.BufferMillis) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer out.Close()

	handles := make([]cadenza.Handle, 0, len(args))
	for _, path := range args {
		h, err := eng.RequestLoad(path)
		if err != nil {
			return fmt.Errorf("requesting %s: %w", path, err)
		}
		handles = append(handles, h)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// The CLI stands in for the game loop: tick the engine, start tracks
	// as their loads finish, leave when everything has played out.
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	started := make(map[cadenza.Handle]bool)
	reported := make(map[cadenza.Handle]bool)

	for {
		select {
		case sig := <-sigCh:
			log.Info("interrupted", zap.String("signal", sig.String()))
			return nil
		case <-ticker.C:
		}

		eng.Update()

		remaining := 0
		for i, h := range handles {
			switch eng.Status(h) {
			case cadenza.StatusPending:
				remaining++
			case cadenza.StatusFailed:
				if !reported[h] {
					log.Error("skipping track", zap.String("path", args[i]), zap.Error(eng.Err(h)))
					reported[h] = true
				}
			case cadenza.StatusReady:
				if !started[h] {
					if playLoop {
						eng.PlayLooped(h)
					} else {
						eng.Play(h)
					}
					eng.SetRate(h, playRate)
					eng.SetGain(h, playGain)
					started[h] = true
					log.Info("playing",
						zap.String("path", args[i]),
						zap.Float64("rate", playRate),
						zap.Duration("duration", eng.Duration(h)),
					)
				}
				if playLoop || eng.Position(h) < eng.Duration(h).Seconds() {
					remaining++
				}
			}
		}

		if remaining == 0 {
			return nil
		}
	}
}
