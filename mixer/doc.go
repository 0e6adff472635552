// SPDX-License-Identifier: EPL-2.0

// Package mixer implements the real-time mixing core: per-track playback
// state, fractional-position resampling, and block synthesis for the
// device callback.
//
// # Ownership Model
//
// The mixer owns every track exclusively. Buffers arrive over the command
// channel and are never aliased after the handoff, so the render path
// needs no locks at all: state is confined to the single goroutine that
// calls Render.
//
// # Command Protocol
//
// The engine drives the mixer through fire-and-forget commands on a
// bounded single-producer/single-consumer channel:
//
//	m := mixer.New(48000, 2, 0, log)
//	m.Load(1, buf, posCell)
//	m.Play(1, false)
//	m.SetRate(1, 1.5)
//
// Commands are applied in send order at the start of the next Render
// call, so Load followed by Play in the same tick is always audible in
// the next block. Commands naming an unknown track are dropped silently;
// a full queue drops the newest command instead of blocking the sender.
//
// # Rate and Pitch
//
// SetRate changes how fast the virtual playhead advances through the
// source buffer. Resampling by fractional-position interpolation couples
// pitch and speed: rate 2.0 plays twice as fast and an octave up. There
// is no independent pitch-only control.
//
// # Real-Time Constraints
//
// Render performs bounded work per block: it drains at most one queue's
// worth of commands, touches no locks, allocates only when a load
// command creates a track, and never does I/O. Anything heavier (decode,
// logging, status bookkeeping) belongs to the loader or the engine.
package mixer
