// SPDX-License-Identifier: EPL-2.0

package cadenza

import (
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/loader"
	"github.com/mvreel/cadenza/mixer"
)

// Handle identifies one requested track from load through playback.
// The zero value is never a valid handle.
type Handle uint32

const InvalidHandle Handle = 0

// Status is the load state of a handle.
type Status uint8

const (
	// StatusUnknown: the handle was never issued by this engine.
	StatusUnknown Status = iota
	// StatusPending: submitted, decode not finished yet.
	StatusPending
	// StatusReady: decoded and handed to the mixer; playable.
	StatusReady
	// StatusFailed: decode failed; see Err.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// SampleRate of the output device in Hz. Default 48000.
	SampleRate int
	// Channels of the output device. Default 2.
	Channels int
	// CommandQueueDepth bounds the engine→mixer command channel.
	CommandQueueDepth int
	// LoaderQueueDepth bounds the decode job queue.
	LoaderQueueDepth int
	// Registry maps file extensions to decoders. Default DefaultRegistry.
	Registry *audio.Registry
	// Logger for off-render-path diagnostics. Default is a nop logger.
	Logger *zap.Logger
}

type handleState struct {
	path     string
	status   Status
	err      error
	duration time.Duration
	pos      *atomic.Uint64
}

// Engine is the audio manager: the only surface the rest of the game
// talks to. It issues load requests, drains decode results once per tick,
// and forwards playback commands to the mixer.
//
// All methods except Position must be called from the same goroutine
// (the game loop). Position is safe from anywhere.
type Engine struct {
	mix *mixer.Mixer
	ld  *loader.Loader
	log *zap.Logger

	handles map[Handle]*handleState
	next    Handle

	lastUnknown uint64
	lastDropped uint64
	closed      bool
}

// New creates an engine with a running loader worker and an idle mixer.
// Wire the mixer to a device with the device package, or drive
// Engine.Mixer().Render directly in tests.
func New(opts Options) *Engine {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 48000
	}
	if opts.Channels <= 0 {
		opts.Channels = 2
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Engine{
		mix:     mixer.New(opts.SampleRate, opts.Channels, opts.CommandQueueDepth, opts.Logger),
		ld:      loader.New(opts.Registry, opts.LoaderQueueDepth, opts.Logger),
		log:     opts.Logger,
		handles: make(map[Handle]*handleState),
	}
}

// Mixer exposes the render side for device wiring. Game logic has no
// business calling this.
func (e *Engine) Mixer() *mixer.Mixer { return e.mix }

// RequestLoad submits a decode job for path and returns a handle that is
// immediately usable to query load status. The decode happens on the
// loader goroutine; poll Status (or just call Play every tick) until the
// handle leaves StatusPending.
func (e *Engine) RequestLoad(path string) (Handle, error) {
	if e.closed {
		return InvalidHandle, loader.ErrClosed
	}

	e.next++
	h := e.next

	if err := e.ld.Submit(path, loader.Token(h)); err != nil {
		e.next--
		return InvalidHandle, err
	}

	e.handles[h] = &handleState{path: path, status: StatusPending}
	return h, nil
}

// Update drains finished loads and forwards them to the mixer. Call once
// per game-loop tick; this is the only place results are consumed, so the
// call cadence bounds load-to-playback latency.
func (e *Engine) Update() {
	if e.closed {
		return
	}

	for {
		res, ok := e.ld.Poll()
		if !ok {
			break
		}

		h := Handle(res.Token)
		st, ok := e.handles[h]
		if !ok {
			continue
		}

		if res.Err != nil {
			st.status = StatusFailed
			st.err = res.Err
			continue
		}

		st.status = StatusReady
		st.duration = res.Buffer.Duration()
		st.pos = &atomic.Uint64{}
		e.mix.Load(mixer.TrackID(h), res.Buffer, st.pos)
	}

	e.reportMixerDiagnostics()
}

// Play starts playback of a loaded handle. Returns false when the handle
// is unknown or not ready yet; callers retry next tick.
func (e *Engine) Play(h Handle) bool {
	return e.play(h, false)
}

// PlayLooped starts playback that wraps back to the beginning at the end
// of the buffer, for menu and level music.
func (e *Engine) PlayLooped(h Handle) bool {
	return e.play(h, true)
}

func (e *Engine) play(h Handle, loop bool) bool {
	if !e.ready(h) {
		return false
	}
	e.mix.Play(mixer.TrackID(h), loop)
	return true
}

// SetRate changes the playback rate multiplier for a handle. Rate scales
// pitch and speed together.
func (e *Engine) SetRate(h Handle, rate float64) bool {
	if !e.ready(h) {
		return false
	}
	e.mix.SetRate(mixer.TrackID(h), rate)
	return true
}

// SetGain changes a handle's volume scale (1.0 native, 0.0 silent).
func (e *Engine) SetGain(h Handle, gain float64) bool {
	if !e.ready(h) {
		return false
	}
	e.mix.SetGain(mixer.TrackID(h), gain)
	return true
}

// Stop halts playback and discards the track. The handle is forgotten.
func (e *Engine) Stop(h Handle) {
	if !e.ready(h) {
		return
	}
	e.mix.Stop(mixer.TrackID(h))
	delete(e.handles, h)
}

// Status reports the load state of a handle.
func (e *Engine) Status(h Handle) Status {
	st, ok := e.handles[h]
	if !ok {
		return StatusUnknown
	}
	return st.status
}

// Err returns the load failure for a StatusFailed handle, nil otherwise.
func (e *Engine) Err(h Handle) error {
	st, ok := e.handles[h]
	if !ok {
		return nil
	}
	return st.err
}

// Duration returns the clip length of a ready handle, zero otherwise.
// Recorded before the buffer is handed to the mixer.
func (e *Engine) Duration(h Handle) time.Duration {
	st, ok := e.handles[h]
	if !ok {
		return 0
	}
	return st.duration
}

// Position returns the handle's playhead in seconds of source time. Reads
// a cell the mixer publishes after every block, so the value is at most
// one block stale. Safe to call from any goroutine; game logic uses this
// for beat synchronization.
func (e *Engine) Position(h Handle) float64 {
	st, ok := e.handles[h]
	if !ok || st.pos == nil {
		return 0
	}
	return math.Float64frombits(st.pos.Load())
}

// Close shuts the mixer down and joins the loader worker. In-flight
// decodes finish; their results are discarded.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true

	e.mix.Shutdown()
	e.ld.Close()
	e.log.Debug("engine closed")
}

func (e *Engine) ready(h Handle) bool {
	st, ok := e.handles[h]
	return ok && st.status == StatusReady
}

// reportMixerDiagnostics surfaces the mixer's silent command drops out of
// band. The mixer itself never logs on the render path.
func (e *Engine) reportMixerDiagnostics() {
	if unknown := e.mix.UnknownCommands(); unknown != e.lastUnknown {
		e.log.Debug("mixer ignored commands for unknown tracks",
			zap.Uint64("total", unknown))
		e.lastUnknown = unknown
	}
	if dropped := e.mix.DroppedCommands(); dropped != e.lastDropped {
		e.log.Warn("mixer command queue overflow",
			zap.Uint64("total", dropped))
		e.lastDropped = dropped
	}
}
