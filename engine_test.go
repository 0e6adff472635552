// SPDX-License-Identifier: EPL-2.0

package cadenza

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvreel/cadenza/formats/wav"
	"github.com/mvreel/cadenza/loader"
)

// writeSineWav writes a mono PCM-16 sine fixture and returns its path.
func writeSineWav(t *testing.T, sampleRate, frames int) string {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		v := math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
		samples[i] = int16(v * 16000)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, sampleRate, 1, samples); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

// updateUntil ticks the engine until the handle leaves StatusPending.
func updateUntil(t *testing.T, e *Engine, h Handle) Status {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		e.Update()
		if st := e.Status(h); st != StatusPending {
			return st
		}
		time.Sleep(time.Millisecond)
	}

	t.Fatalf("handle %d stuck pending", h)
	return StatusUnknown
}

func TestEngine_LoadPlayRender(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 48000)

	e := New(Options{SampleRate: 48000, Channels: 2})
	defer e.Close()

	h, err := e.RequestLoad(path)
	if err != nil {
		t.Fatalf("RequestLoad() error = %v", err)
	}
	if h == InvalidHandle {
		t.Fatal("RequestLoad() returned the invalid handle")
	}
	if got := e.Status(h); got != StatusPending {
		t.Fatalf("status right after request = %v, want pending", got)
	}

	if got := updateUntil(t, e, h); got != StatusReady {
		t.Fatalf("status after load = %v (err %v), want ready", got, e.Err(h))
	}
	if got, want := e.Duration(h), time.Second; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}

	if !e.Play(h) {
		t.Fatal("Play() = false for a ready handle")
	}

	block := make([]float32, 2*512)
	e.Mixer().Render(block)

	silent := true
	for _, s := range block {
		if s != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("rendered block is silent after Play")
	}

	if got := e.Position(h); got <= 0 {
		t.Errorf("Position() = %v after one block, want > 0", got)
	}
}

func TestEngine_PositionTracksRenderedFrames(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 48000)

	e := New(Options{SampleRate: 48000, Channels: 2})
	defer e.Close()

	h, err := e.RequestLoad(path)
	if err != nil {
		t.Fatal(err)
	}
	updateUntil(t, e, h)
	e.Play(h)

	block := make([]float32, 2*480)
	for i := 0; i < 50; i++ {
		e.Mixer().Render(block)
	}

	// 50 blocks of 480 frames at 48 kHz is exactly half a second.
	if got, want := e.Position(h), 0.5; math.Abs(got-want) > 1e-6 {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestEngine_FailedLoad(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	defer e.Close()

	h, err := e.RequestLoad(filepath.Join(t.TempDir(), "missing.wav"))
	if err != nil {
		t.Fatal(err)
	}

	if got := updateUntil(t, e, h); got != StatusFailed {
		t.Fatalf("status = %v, want failed", got)
	}
	if !errors.Is(e.Err(h), loader.ErrUnreadable) {
		t.Errorf("Err() = %v, want ErrUnreadable", e.Err(h))
	}
	if e.Play(h) {
		t.Error("Play() = true for a failed handle")
	}
	if got := e.Duration(h); got != 0 {
		t.Errorf("Duration() = %v for a failed handle, want 0", got)
	}
}

func TestEngine_PendingHandleIsNotPlayable(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 4800)

	e := New(Options{})
	defer e.Close()

	h, err := e.RequestLoad(path)
	if err != nil {
		t.Fatal(err)
	}

	// Before any Update the handle cannot be ready, whatever the worker
	// has done in the meantime.
	if e.Play(h) {
		t.Error("Play() = true before Update observed the result")
	}
	if e.SetRate(h, 1.5) {
		t.Error("SetRate() = true before Update observed the result")
	}
	if e.SetGain(h, 0.5) {
		t.Error("SetGain() = true before Update observed the result")
	}
	if got := e.Position(h); got != 0 {
		t.Errorf("Position() = %v for a pending handle, want 0", got)
	}
}

func TestEngine_UnknownHandle(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	defer e.Close()

	const h Handle = 42
	if got := e.Status(h); got != StatusUnknown {
		t.Errorf("Status() = %v, want unknown", got)
	}
	if e.Play(h) {
		t.Error("Play() = true for an unknown handle")
	}
	if got := e.Position(h); got != 0 {
		t.Errorf("Position() = %v, want 0", got)
	}
	// Stop on an unknown handle is a no-op, not a crash.
	e.Stop(h)
}

func TestEngine_StopForgetsHandle(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 4800)

	e := New(Options{})
	defer e.Close()

	h, err := e.RequestLoad(path)
	if err != nil {
		t.Fatal(err)
	}
	updateUntil(t, e, h)
	e.Play(h)
	e.Stop(h)

	if got := e.Status(h); got != StatusUnknown {
		t.Errorf("status after Stop = %v, want unknown", got)
	}
	if e.Play(h) {
		t.Error("Play() = true after Stop")
	}
}

func TestEngine_HandlesAreDistinct(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 4800)

	e := New(Options{})
	defer e.Close()

	h1, err := e.RequestLoad(path)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := e.RequestLoad(path)
	if err != nil {
		t.Fatal(err)
	}

	if h1 == h2 {
		t.Fatalf("two requests share handle %d", h1)
	}
	if h1 == InvalidHandle || h2 == InvalidHandle {
		t.Fatal("issued the invalid handle")
	}
}

func TestEngine_CloseRejectsFurtherLoads(t *testing.T) {
	t.Parallel()

	path := writeSineWav(t, 48000, 4800)

	e := New(Options{})
	e.Close()

	if _, err := e.RequestLoad(path); !errors.Is(err, loader.ErrClosed) {
		t.Errorf("RequestLoad() after Close = %v, want ErrClosed", err)
	}

	// Close twice is fine.
	e.Close()

	// The mixer renders silence after shutdown.
	block := make([]float32, 2*256)
	for i := range block {
		block[i] = 1
	}
	e.Mixer().Render(block)
	for i, s := range block {
		if s != 0 {
			t.Fatalf("block[%d] = %v after Close, want 0", i, s)
		}
	}
}

func TestEngine_DefaultOptions(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	defer e.Close()

	if got := e.Mixer().SampleRate(); got != 48000 {
		t.Errorf("default sample rate = %d, want 48000", got)
	}
	if got := e.Mixer().Channels(); got != 2 {
		t.Errorf("default channels = %d, want 2", got)
	}
}
