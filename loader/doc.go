// SPDX-License-Identifier: EPL-2.0

// Package loader decodes audio files off the real-time path.
//
// A Loader runs one worker goroutine that serves decode jobs FIFO. The
// interface is deliberately poll-based: Submit returns immediately and
// Poll is non-blocking, so the game loop can check for finished loads
// once per tick without ever stalling.
//
//	l := loader.New(registry, 0, log)
//	defer l.Close()
//
//	l.Submit("assets/sounds/theme.wav", 1)
//	for {
//	    res, ok := l.Poll()
//	    if !ok {
//	        break // nothing finished this tick
//	    }
//	    // res.Buffer or res.Err, correlated by res.Token
//	}
//
// Decoding is eager: the whole clip is decoded into memory in one job.
// That makes load latency proportional to clip length, but it means the
// mixer side never touches the filesystem or a codec.
//
// Failures (unsupported format, unreadable file, malformed content) come
// back as results with Err set; they never stop the worker, and a panic
// inside a codec library is converted into a decode failure.
package loader
