// SPDX-License-Identifier: EPL-2.0

// Package device wires a mixer to the system audio output via oto.
//
// The contract is pull-based: the hardware requests N samples at a fixed
// output rate and channel layout, and the mixer always delivers exactly
// N (silence when nothing is playing) without blocking. Tests that don't
// need a sound card skip this package entirely and call Mixer.Render
// themselves.
package device
