// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrEmptyStream       = errors.New("source produced no samples")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
)
