// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/mvreel/cadenza/mixer"
)

// Options configures the hardware output.
type Options struct {
	// BufferSize is the device-side buffer length. Smaller means lower
	// latency but less headroom before audible dropouts. Zero uses the
	// driver default.
	BufferSize time.Duration
}

// Output connects a mixer to the hardware device. oto pulls fixed-size
// byte blocks through Read at the cadence set by the device buffer and
// sample rate; each pull renders exactly one block from the mixer.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	mix    *mixer.Mixer
	buf    []float32
}

// Open initializes the audio device at the mixer's sample rate and
// channel layout and starts pulling. Only one device context can exist
// per process.
func Open(m *mixer.Mixer, opts Options) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   m.SampleRate(),
		ChannelCount: m.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	o := &Output{ctx: ctx, mix: m}
	o.player = ctx.NewPlayer(o)
	o.player.Play()

	return o, nil
}

// Read implements io.Reader for oto. This runs on the device goroutine;
// it renders one mixer block and serializes it as float32 LE. The sample
// buffer is grown once and reused, keeping the hot path allocation-free.
func (o *Output) Read(p []byte) (int, error) {
	samples := len(p) / 4
	samples -= samples % o.mix.Channels()
	if samples == 0 {
		return 0, nil
	}

	if cap(o.buf) < samples {
		o.buf = make([]float32, samples)
	}
	buf := o.buf[:samples]

	o.mix.Render(buf)

	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[4*i:4*i+4], math.Float32bits(v))
	}

	return samples * 4, nil
}

// Suspend pauses the entire device without tearing it down.
func (o *Output) Suspend() error { return o.ctx.Suspend() }

// Resume restarts a suspended device.
func (o *Output) Resume() error { return o.ctx.Resume() }

// Close stops pulling from the mixer. The oto context itself cannot be
// torn down; suspend it so the device stays silent.
func (o *Output) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("closing device player: %w", err)
	}
	return o.ctx.Suspend()
}
