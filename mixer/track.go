// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"sync/atomic"

	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/utils"
)

// track is one loaded clip with independent playback state. It lives
// exclusively on the render goroutine; the only part visible outside is
// the published playhead cell.
type track struct {
	buf  *audio.Buffer
	id   TrackID
	rate float64
	gain float32
	loop bool

	// Virtual playhead in source frames, fractional. Must stay float64
	// for the whole life of the track: float32 accumulation drifts
	// audibly out of sync with the game timeline over multi-minute
	// clips.
	pos float64

	active bool

	// playhead, seconds as math.Float64bits, written after every block
	posOut *atomic.Uint64
}

func newTrack(id TrackID, buf *audio.Buffer, posOut *atomic.Uint64) *track {
	return &track{
		buf:    buf,
		id:     id,
		rate:   1.0,
		gain:   1.0,
		posOut: posOut,
	}
}

// sampleAt reads channel ch at fractional frame position pos using the
// 4-point Catmull-Rom kernel. Neighbour indexes are clamped to the valid
// frame range so a playhead near either edge never reads out of bounds.
func (t *track) sampleAt(pos float64, ch int) float32 {
	frames := t.buf.Frames()
	i1 := int(pos)
	if i1 >= frames {
		i1 = frames - 1
	}
	frac := float32(pos - float64(i1))

	i0 := i1 - 1
	if i0 < 0 {
		i0 = 0
	}
	i2 := i1 + 1
	if i2 >= frames {
		i2 = frames - 1
	}
	i3 := i1 + 2
	if i3 >= frames {
		i3 = frames - 1
	}

	n := t.buf.Channels
	s := t.buf.Samples
	return utils.CubicInterpolate(
		s[i0*n+ch], s[i1*n+ch], s[i2*n+ch], s[i3*n+ch], frac)
}

// frameAt fills out with one output frame read at the track's playhead,
// folding or spreading channels as needed. out has outChannels entries.
func (t *track) frameAt(pos float64, out []float32) {
	src := t.buf.Channels
	dst := len(out)

	switch {
	case src == dst:
		for c := range out {
			out[c] = t.sampleAt(pos, c)
		}
	case src == 1:
		// Mono spreads to every output channel
		v := t.sampleAt(pos, 0)
		for c := range out {
			out[c] = v
		}
	default:
		// Fold all source channels into each output channel
		var sum float32
		for c := 0; c < src; c++ {
			sum += t.sampleAt(pos, c)
		}
		v := sum / float32(src)
		for c := range out {
			out[c] = v
		}
	}
}

// mix renders the track into dst (interleaved, outChannels wide),
// accumulating on top of whatever is already there. step is the playhead
// advance per output frame in source frames. Returns false once the
// playhead passes the end of the buffer; the caller removes the track on
// the next command-drain pass.
func (t *track) mix(dst []float32, outChannels int, step float64) bool {
	frames := len(dst) / outChannels
	total := float64(t.buf.Frames())
	pos := t.pos

	// An empty buffer has nothing to play and nothing to wrap to.
	if total <= 0 {
		t.active = false
		t.publish()
		return false
	}

	var frame [8]float32
	out := frame[:outChannels]

	for i := 0; i < frames; i++ {
		for pos >= total {
			if !t.loop {
				t.pos = total
				t.active = false
				t.publish()
				return false
			}
			pos -= total
		}

		t.frameAt(pos, out)
		base := i * outChannels
		for c := 0; c < outChannels; c++ {
			dst[base+c] += out[c] * t.gain
		}

		pos += step
	}

	t.pos = pos
	t.publish()
	return true
}

// publish stores the playhead (seconds at the clip's native rate) into
// the shared cell. Atomic store only; safe on the render path.
func (t *track) publish() {
	if t.posOut == nil {
		return
	}
	sec := t.pos / float64(t.buf.SampleRate)
	t.posOut.Store(math.Float64bits(sec))
}
