// SPDX-License-Identifier: EPL-2.0

package cadenza

import (
	"github.com/mvreel/cadenza/audio"
	"github.com/mvreel/cadenza/formats/aiff"
	"github.com/mvreel/cadenza/formats/mp3"
	"github.com/mvreel/cadenza/formats/vorbis"
	"github.com/mvreel/cadenza/formats/wav"
)

// DefaultRegistry returns a registry with every bundled format decoder
// registered under its usual file extensions.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(".wav", wav.Decoder{})
	r.Register(".aif", aiff.Decoder{})
	r.Register(".aiff", aiff.Decoder{})
	r.Register(".mp3", mp3.Decoder{})
	r.Register(".ogg", vorbis.Decoder{})
	return r
}
