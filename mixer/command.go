// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync/atomic"

	"github.com/mvreel/cadenza/audio"
)

// TrackID identifies one loaded track inside the mixer. It is assigned by
// the engine and is meaningless to anything else.
type TrackID uint32

type cmdKind uint8

const (
	cmdLoad cmdKind = iota
	cmdPlay
	cmdSetRate
	cmdSetGain
	cmdStop
	cmdShutdown
)

// command is the message type on the engine→mixer channel. Exactly one
// goroutine sends (the engine) and exactly one drains (the render
// goroutine); buffer ownership for cmdLoad transfers with the message.
type command struct {
	kind  cmdKind
	id    TrackID
	buf   *audio.Buffer
	pos   *atomic.Uint64 // playhead cell shared with the engine, load only
	value float64        // rate or gain
	loop  bool
}
