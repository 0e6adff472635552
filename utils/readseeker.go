// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"fmt"
	"io"
)

// MemReadSeeker implements io.ReadSeeker over an in-memory byte slice.
// The go-audio decoders require seeking; when a caller hands us a plain
// io.Reader the data is slurped into one of these first.
type MemReadSeeker struct {
	data   []byte
	offset int64
}

func NewMemReadSeeker(data []byte) *MemReadSeeker {
	return &MemReadSeeker{data: data}
}

func (rs *MemReadSeeker) Read(p []byte) (n int, err error) {
	if rs.offset >= int64(len(rs.data)) {
		return 0, io.EOF
	}
	n = copy(p, rs.data[rs.offset:])
	rs.offset += int64(n)
	return n, nil
}

func (rs *MemReadSeeker) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = rs.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(rs.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position")
	}

	rs.offset = newOffset
	return newOffset, nil
}
