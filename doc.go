// SPDX-License-Identifier: EPL-2.0

// Package cadenza is a real-time audio playback engine for rhythm games.
//
// The engine coordinates three goroutines: a loader worker that decodes
// audio files, the game loop that owns the Engine, and the device render
// goroutine that pulls mixed sample blocks. Sample buffers move between
// them by ownership transfer over channels; nothing is shared mutably.
//
// # Quick Start
//
//	eng := cadenza.New(cadenza.Options{SampleRate: 48000, Channels: 2})
//	defer eng.Close()
//
//	out, _ := device.Open(eng.Mixer(), device.Options{})
//	defer out.Close()
//
//	h, _ := eng.RequestLoad("assets/sounds/theme.wav")
//	for { // game loop
//	    eng.Update()        // drain finished loads, once per tick
//	    if eng.Play(h) {    // no-op until the load finishes
//	        break
//	    }
//	}
//
// # Surface
//
// Game logic talks only to the Engine: RequestLoad, Update, Play,
// PlayLooped, SetRate, SetGain, Stop, Status, Position. Everything is
// non-blocking and fire-and-forget; a command against a handle that is
// not ready is a no-op and the caller retries next tick.
//
// # Rate Control
//
// SetRate couples pitch and speed: the mixer advances each track's
// virtual playhead by rate source-frames per output frame and
// interpolates between neighbouring samples. Rate 2.0 plays twice as
// fast, one octave up.
//
// # Supported Formats
//
// The default decoder registry handles:
//   - WAV (PCM 16-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Register additional decoders on an audio.Registry and pass it in
// Options.
package cadenza
