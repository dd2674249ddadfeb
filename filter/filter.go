// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filter provides small signal-smoothing filters for interactive
// and sensor data: a one-pole low-pass step and the one-euro filter.
package filter

import "math"

// LowPass returns one step of a one-pole low-pass filter: x blended
// toward the previous output with coefficient alpha in [0, 1]. alpha 1
// passes x through unchanged; alpha 0 holds the previous output.
func LowPass(x, xprev, alpha float32) float32 {
	return alpha*x + (1-alpha)*xprev
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// OneEuro is a simple and efficient filter for smoothing interactive
// signals (https://gery.casiez.net/1euro/).
//
// Tuning: set Beta to 0 and MinCutoff to a middle-ground value such as
// 1 Hz. While the signal moves slowly, adjust MinCutoff to remove jitter
// with acceptable lag (decreasing MinCutoff reduces jitter but adds lag;
// it must stay > 0). Then, while the signal moves quickly, increase Beta
// to reduce lag, starting from small values like 0.001. If high-speed lag
// is a problem, increase Beta; if slow-speed jitter is a problem,
// decrease MinCutoff.
type OneEuro struct {
	// MinCutoff is the minimum cutoff frequency in Hz. Must be > 0.
	MinCutoff float32
	// Beta is the cutoff slope applied to the filtered derivative.
	Beta float32

	xfilt       float32
	dxfilt      float32
	lastTime    uint32
	initialized bool
}

// NewOneEuro returns a filter with the conventional defaults:
// MinCutoff 1 Hz, Beta 0.
func NewOneEuro() *OneEuro {
	return &OneEuro{MinCutoff: 1}
}

// Process filters the sample x taken at time t (in milliseconds) and
// returns the smoothed value. The first sample passes through unchanged;
// a repeated timestamp returns the previous output without updating
// state.
func (f *OneEuro) Process(x float32, t uint32) float32 {
	if !f.initialized {
		f.initialized = true
		f.dxfilt = 0
		f.xfilt = x
		f.lastTime = t
		return x
	}
	if t == f.lastTime {
		return f.xfilt
	}

	dt := float32(t-f.lastTime) * 0.001
	dx := (x - f.xfilt) / dt
	f.lastTime = t

	f.dxfilt = LowPass(dx, f.dxfilt, alpha(1, dt)) // derivative cutoff 1Hz
	fc := f.MinCutoff + f.Beta*abs32(f.dxfilt)
	f.xfilt = LowPass(x, f.xfilt, alpha(fc, dt))
	return f.xfilt
}

// Reset discards the filter state; the next sample passes through as if
// the filter were new. Tuning parameters are kept.
func (f *OneEuro) Reset() {
	f.xfilt = 0
	f.dxfilt = 0
	f.lastTime = 0
	f.initialized = false
}

func alpha(cutoff, dt float32) float32 {
	r := 2 * float32(math.Pi) * cutoff * dt
	return r / (r + 1)
}
