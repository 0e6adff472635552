// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/utils"
)

const DefaultQueueDepth = 64

// Mixer owns all track playback state and synthesizes output blocks on
// demand from the device callback. Commands arrive on a bounded channel
// with a single producer (the engine) and a single consumer (the render
// goroutine); Render never allocates, locks, or performs I/O.
type Mixer struct {
	sampleRate int
	channels   int

	commands chan command

	// render-goroutine state, untouched by anyone else
	tracks   map[TrackID]*track
	shutdown bool

	// diagnostics, read out of band by the engine
	unknownCmds atomic.Uint64
	droppedCmds atomic.Uint64

	done chan struct{}
}

// New creates a mixer producing interleaved float32 at sampleRate with
// the given channel count. queueDepth bounds the command channel; zero
// selects DefaultQueueDepth.
func New(sampleRate, channels, queueDepth int, log *zap.Logger) *Mixer {
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}

	if log != nil {
		log.Debug("mixer configured",
			zap.Int("sample_rate", sampleRate),
			zap.Int("channels", channels),
			zap.Int("queue_depth", queueDepth),
		)
	}

	return &Mixer{
		sampleRate: sampleRate,
		channels:   channels,
		commands:   make(chan command, queueDepth),
		tracks:     make(map[TrackID]*track),
		done:       make(chan struct{}),
	}
}

func (m *Mixer) SampleRate() int { return m.sampleRate }
func (m *Mixer) Channels() int   { return m.channels }

// Done is closed once a Shutdown command has been drained.
func (m *Mixer) Done() <-chan struct{} { return m.done }

// UnknownCommands reports how many commands referenced a track id the
// mixer did not know. Diagnostics only.
func (m *Mixer) UnknownCommands() uint64 { return m.unknownCmds.Load() }

// DroppedCommands reports how many commands were discarded because the
// queue was full.
func (m *Mixer) DroppedCommands() uint64 { return m.droppedCmds.Load() }

// Load hands a decoded buffer to the mixer. The caller gives up ownership
// of buf; posOut is the cell the mixer publishes the playhead into.
func (m *Mixer) Load(id TrackID, buf *audio.Buffer, posOut *atomic.Uint64) {
	m.send(command{kind: cmdLoad, id: id, buf: buf, pos: posOut})
}

// Play starts or restarts playback of a loaded track from its current
// position.
func (m *Mixer) Play(id TrackID, loop bool) {
	m.send(command{kind: cmdPlay, id: id, loop: loop})
}

// SetRate changes the playback rate multiplier. Rate scales pitch and
// speed together; 1.0 is native.
func (m *Mixer) SetRate(id TrackID, rate float64) {
	m.send(command{kind: cmdSetRate, id: id, value: rate})
}

// SetGain changes the track's volume scale.
func (m *Mixer) SetGain(id TrackID, gain float64) {
	m.send(command{kind: cmdSetGain, id: id, value: gain})
}

// Stop halts a track and discards it.
func (m *Mixer) Stop(id TrackID) {
	m.send(command{kind: cmdStop, id: id})
}

// Shutdown stops the mixer. The render pass that drains it completes
// normally; every pass after that produces silence.
func (m *Mixer) Shutdown() {
	m.send(command{kind: cmdShutdown})
}

// send enqueues fire-and-forget. A full queue drops the command rather
// than blocking the caller; the real-time consumer cannot be waited on.
func (m *Mixer) send(cmd command) {
	select {
	case m.commands <- cmd:
	default:
		m.droppedCmds.Add(1)
	}
}

// Render produces exactly len(dst) samples: drains pending commands,
// accumulates every active track, and clamps the sum. Called by the
// device at its own cadence; this is the real-time path.
func (m *Mixer) Render(dst []float32) {
	m.drainCommands()

	for i := range dst {
		dst[i] = 0
	}

	if m.shutdown || len(dst) < m.channels {
		return
	}

	mixed := false
	for _, t := range m.tracks {
		if !t.active {
			continue
		}
		step := t.rate * float64(t.buf.SampleRate) / float64(m.sampleRate)
		t.mix(dst, m.channels, step)
		mixed = true
	}

	if mixed {
		for i := range dst {
			dst[i] = utils.ClampSample(dst[i])
		}
	}
}

// drainCommands applies pending commands in send order, after sweeping
// tracks that finished during the previous render pass. Work is bounded:
// at most one queue's worth of commands per call, no allocation beyond
// track creation on load.
func (m *Mixer) drainCommands() {
	for id, t := range m.tracks {
		if !t.active && t.pos >= float64(t.buf.Frames()) {
			delete(m.tracks, id)
		}
	}

	for i := 0; i < cap(m.commands); i++ {
		select {
		case cmd := <-m.commands:
			m.apply(cmd)
		default:
			return
		}
	}
}

func (m *Mixer) apply(cmd command) {
	if cmd.kind == cmdShutdown {
		if !m.shutdown {
			m.shutdown = true
			m.tracks = make(map[TrackID]*track)
			close(m.done)
		}
		return
	}

	if m.shutdown {
		return
	}

	if cmd.kind == cmdLoad {
		m.tracks[cmd.id] = newTrack(cmd.id, cmd.buf, cmd.pos)
		return
	}

	t, ok := m.tracks[cmd.id]
	if !ok {
		// Unknown track ids are dropped silently; the render thread has
		// no error path. Counted for out-of-band diagnostics.
		m.unknownCmds.Add(1)
		return
	}

	switch cmd.kind {
	case cmdPlay:
		t.active = true
		t.loop = cmd.loop
	case cmdSetRate:
		if cmd.value >= 0 {
			t.rate = cmd.value
		}
	case cmdSetGain:
		if cmd.value >= 0 {
			t.gain = float32(cmd.value)
		}
	case cmdStop:
		delete(m.tracks, cmd.id)
	}
}
