// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/mvreel/cadenza/audio"
)

// ConstantBuffer builds a decoded buffer where every sample has the same
// value. frames is per channel.
func ConstantBuffer(sampleRate, channels, frames int, value float32) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	return &audio.Buffer{SampleRate: sampleRate, Channels: channels, Samples: samples}
}

// SineBuffer builds a decoded buffer holding a sine wave at frequency Hz,
// identical on every channel.
func SineBuffer(sampleRate, channels, frames int, frequency float64) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(sampleRate)
		v := float32(math.Sin(2 * math.Pi * frequency * t))
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}
	return &audio.Buffer{SampleRate: sampleRate, Channels: channels, Samples: samples}
}

// RampBuffer builds a buffer whose sample value equals its frame index
// scaled by slope. Handy for asserting interpolated reads.
func RampBuffer(sampleRate, channels, frames int, slope float32) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		v := slope * float32(f)
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}
	return &audio.Buffer{SampleRate: sampleRate, Channels: channels, Samples: samples}
}
