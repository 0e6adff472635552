// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/mvreel/cadenza/audio"
)

const DefaultQueueDepth = 32

// Token correlates a load request with its eventual result.
type Token uint32

// Result is the outcome of one decode job. Either Buffer or Err is set.
// Buffer ownership passes to whoever polls the result.
type Result struct {
	Token  Token
	Path   string
	Buffer *audio.Buffer
	Err    error
}

type request struct {
	path  string
	token Token
}

// Loader decodes audio files on a dedicated worker goroutine. Jobs are
// submitted and results retrieved without blocking; the caller polls once
// per tick. A failed decode never stops the worker from serving
// subsequent jobs.
type Loader struct {
	registry *audio.Registry
	jobs     chan request
	results  chan Result
	done     chan struct{}
	log      *zap.Logger

	// guards closed and the send side of jobs against a racing Close
	mtx    sync.Mutex
	closed bool
}

// New starts the worker goroutine. queueDepth bounds both the job and the
// result queues; zero selects DefaultQueueDepth.
func New(registry *audio.Registry, queueDepth int, log *zap.Logger) *Loader {
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}
	if log == nil {
		log = zap.NewNop()
	}

	l := &Loader{
		registry: registry,
		jobs:     make(chan request, queueDepth),
		results:  make(chan Result, queueDepth),
		done:     make(chan struct{}),
		log:      log,
	}

	go l.run()

	return l
}

// Submit enqueues a decode job and returns immediately. Jobs are served
// FIFO. Returns ErrQueueFull when the job queue has no room; the caller
// is expected to retry next tick.
func (l *Loader) Submit(path string, token Token) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if l.closed {
		return ErrClosed
	}

	select {
	case l.jobs <- request{path: path, token: token}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Poll returns a completed result if one is ready. Non-blocking: the
// second return is false when nothing has finished yet.
func (l *Loader) Poll() (Result, bool) {
	select {
	case res := <-l.results:
		return res, true
	default:
		return Result{}, false
	}
}

// Close stops accepting submissions, lets in-flight decodes finish, and
// joins the worker. Unpolled results are discarded. Safe to call more
// than once.
func (l *Loader) Close() {
	l.mtx.Lock()
	if !l.closed {
		l.closed = true
		close(l.jobs)
	}
	l.mtx.Unlock()

	for {
		select {
		case <-l.done:
			return
		case <-l.results:
			// discard; nobody will consume these anymore
		}
	}
}

func (l *Loader) run() {
	defer close(l.done)

	for req := range l.jobs {
		res := l.decode(req)
		if res.Err != nil {
			l.log.Warn("load failed",
				zap.String("path", req.path),
				zap.Uint32("token", uint32(req.token)),
				zap.Error(res.Err),
			)
		} else {
			l.log.Debug("loaded",
				zap.String("path", req.path),
				zap.Uint32("token", uint32(req.token)),
				zap.Int("sample_rate", res.Buffer.SampleRate),
				zap.Int("channels", res.Buffer.Channels),
				zap.Duration("duration", res.Buffer.Duration()),
			)
		}
		l.results <- res
	}
}

// decode runs one job start to finish. Any panic out of a codec library
// is converted to a decode failure so a malformed file cannot take the
// worker down.
func (l *Loader) decode(req request) (res Result) {
	res = Result{Token: req.token, Path: req.path}

	defer func() {
		if r := recover(); r != nil {
			res.Buffer = nil
			res.Err = fmt.Errorf("%w: decoder panic: %v", ErrDecodeFailed, r)
		}
	}()

	dec, ok := l.registry.Lookup(req.path)
	if !ok {
		res.Err = fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, req.path)
		return res
	}

	f, err := os.Open(req.path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrUnreadable, err)
		return res
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		return res
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		return res
	}

	res.Buffer = buf
	return res
}
