// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	// ErrQueueFull indicates the job queue has no room; retry next tick.
	ErrQueueFull = errors.New("loader queue is full")

	// ErrClosed indicates the loader no longer accepts submissions.
	ErrClosed = errors.New("loader is closed")

	// ErrDecodeFailed indicates the file was readable but could not be
	// decoded (malformed or unsupported content).
	ErrDecodeFailed = errors.New("decode failed")

	// ErrUnreadable indicates the file could not be opened or read.
	ErrUnreadable = errors.New("file unreadable")
)
