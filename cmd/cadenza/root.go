// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cadenza",
	Short: "Real-time audio playback engine for rhythm games",
	Long: `Cadenza is the audio subsystem of a rhythm game, packaged as a
standalone tool. It decodes audio files on a worker goroutine, mixes an
arbitrary number of tracks with per-track rate and gain control, and
feeds the system audio device with sample-accurate blocks.

The play command exercises the full pipeline: loader, mixer, and device.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.PersistentFlags().Int("sample-rate", 48000, "output sample rate in Hz")
	rootCmd.PersistentFlags().Int("channels", 2, "output channel count")
	rootCmd.PersistentFlags().Int("buffer-ms", 20, "device buffer in milliseconds")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (default stderr)")

	viper.BindPFlag("audio.sample_rate", rootCmd.PersistentFlags().Lookup("sample-rate"))
	viper.BindPFlag("audio.channels", rootCmd.PersistentFlags().Lookup("channels"))
	viper.BindPFlag("audio.buffer_ms", rootCmd.PersistentFlags().Lookup("buffer-ms"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if verbose {
		viper.Set("logging.level", "debug")
	}
}
