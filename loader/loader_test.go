// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/formats/wav"
)

func testRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(".wav", wav.Decoder{})
	return r
}

// writeWavFixture writes a mono PCM-16 WAV with frames samples of a
// constant value and returns its path.
func writeWavFixture(t *testing.T, sampleRate, frames int) string {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = 8000
	}

	path := filepath.Join(t.TempDir(), "fixture.wav")
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

func waitResult(t *testing.T, l *Loader) Result {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := l.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}

	t.Fatal("timed out waiting for load result")
	return Result{}
}

func TestLoader_DecodesWav(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 44100, 4410)

	l := New(testRegistry(), 0, nil)
	defer l.Close()

	if err := l.Submit(path, 7); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	res := waitResult(t, l)
	if res.Token != 7 {
		t.Errorf("result token = %d, want 7", res.Token)
	}
	if res.Err != nil {
		t.Fatalf("result error = %v", res.Err)
	}
	if res.Buffer.SampleRate != 44100 {
		t.Errorf("buffer sample rate = %d, want 44100", res.Buffer.SampleRate)
	}
	if res.Buffer.Channels != 1 {
		t.Errorf("buffer channels = %d, want 1", res.Buffer.Channels)
	}
	if got := res.Buffer.Frames(); got != 4410 {
		t.Errorf("buffer frames = %d, want 4410", got)
	}
}

func TestLoader_PollIsNonBlocking(t *testing.T) {
	t.Parallel()

	l := New(testRegistry(), 0, nil)
	defer l.Close()

	done := make(chan struct{})
	go func() {
		_, ok := l.Poll()
		if ok {
			t.Error("Poll() returned a result with nothing submitted")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll() blocked")
	}
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	l := New(testRegistry(), 0, nil)
	defer l.Close()

	if err := l.Submit("track.xyz", 1); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	res := waitResult(t, l)
	if !errors.Is(res.Err, audio.ErrUnsupportedFormat) {
		t.Errorf("result error = %v, want ErrUnsupportedFormat", res.Err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	l := New(testRegistry(), 0, nil)
	defer l.Close()

	if err := l.Submit(filepath.Join(t.TempDir(), "nope.wav"), 2); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	res := waitResult(t, l)
	if !errors.Is(res.Err, ErrUnreadable) {
		t.Errorf("result error = %v, want ErrUnreadable", res.Err)
	}
}

func TestLoader_SurvivesMalformedFile(t *testing.T) {
	t.Parallel()

	// A garbage .wav must fail its own job and nothing else.
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("this is not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := writeWavFixture(t, 22050, 2205)

	l := New(testRegistry(), 0, nil)
	defer l.Close()

	if err := l.Submit(bad, 1); err != nil {
		t.Fatal(err)
	}
	if err := l.Submit(good, 2); err != nil {
		t.Fatal(err)
	}

	first := waitResult(t, l)
	if first.Token != 1 {
		t.Fatalf("results out of order: first token = %d", first.Token)
	}
	if !errors.Is(first.Err, ErrDecodeFailed) {
		t.Errorf("malformed file error = %v, want ErrDecodeFailed", first.Err)
	}

	second := waitResult(t, l)
	if second.Token != 2 {
		t.Fatalf("results out of order: second token = %d", second.Token)
	}
	if second.Err != nil {
		t.Errorf("good file after bad one failed: %v", second.Err)
	}
	if second.Buffer.Frames() != 2205 {
		t.Errorf("good file frames = %d, want 2205", second.Buffer.Frames())
	}
}

func TestLoader_QueueFull(t *testing.T) {
	t.Parallel()

	// A tiny queue with a job that can't finish instantly: submissions
	// past capacity must fail fast instead of blocking.
	l := New(testRegistry(), 1, nil)
	defer l.Close()

	sawFull := false
	for i := 0; i < 50; i++ {
		if err := l.Submit("track.xyz", Token(i)); errors.Is(err, ErrQueueFull) {
			sawFull = true
			break
		}
	}

	if !sawFull {
		t.Error("Submit() never reported ErrQueueFull on a depth-1 queue")
	}
}

func TestLoader_CloseJoinsWorker(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 44100, 44100)

	l := New(testRegistry(), 0, nil)
	for i := 0; i < 4; i++ {
		if err := l.Submit(path, Token(i)); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Close() did not join the worker")
	}

	if err := l.Submit(path, 99); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Close = %v, want ErrClosed", err)
	}
}

func TestLoader_SubmitDuringClose(t *testing.T) {
	t.Parallel()

	// Submissions racing Close must come back as ErrClosed or
	// ErrQueueFull, never panic on the closed job channel.
	for i := 0; i < 50; i++ {
		l := New(testRegistry(), 1, nil)

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch err := l.Submit("track.xyz", Token(j)); err {
				case nil, ErrClosed, ErrQueueFull:
				default:
					t.Errorf("Submit() error = %v", err)
				}
			}
		}()

		go func() {
			defer wg.Done()
			l.Close()
		}()

		wg.Wait()

		if err := l.Submit("track.xyz", 0); !errors.Is(err, ErrClosed) {
			t.Fatalf("Submit() after Close = %v, want ErrClosed", err)
		}
	}
}
