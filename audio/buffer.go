// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded, immutable PCM clip: interleaved float32
// samples in [-1,1] at the source's native rate. Ownership of a Buffer is
// transferred by value of the pointer; after handing a Buffer to the mixer
// nothing else may touch Samples.
type Buffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the clip length at its native rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	frames := b.Frames()
	return time.Duration(float64(frames) / float64(b.SampleRate) * float64(time.Second))
}

// ReadAll drains src into a Buffer. The whole clip is decoded eagerly;
// for long tracks this is the dominant source of load latency, which is
// why decoding runs on the loader goroutine and never on the render path.
func ReadAll(src Source) (*Buffer, error) {
	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	buf := make([]float32, bufSize)
	samples := make([]float32, 0, bufSize*4)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptyStream
	}

	return &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		Samples:    samples,
	}, nil
}
