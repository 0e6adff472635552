// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level audio primitives shared by the
// loader and the mixer.
//
// # Source Interface
//
// The Source interface is implemented by every format decoder:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources stream interleaved samples; ReadSamples returns io.EOF when the
// stream is finished.
//
// # Buffers
//
// A Buffer is a fully decoded clip. ReadAll drains a Source eagerly:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Buffers are immutable after decode and exclusively owned by whoever
// holds them: the loader hands a Buffer to the engine, the engine hands it
// to the mixer, and no component keeps an alias after the handoff. That
// ownership discipline is what keeps the render path free of locks.
//
// # Format Registry
//
// The registry dispatches decoders by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register(".wav", wav.Decoder{})
//	dec, ok := registry.Lookup("assets/sounds/theme.wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to mix tracks without worrying
// about bit depths; clamping happens once, after summation.
package audio
