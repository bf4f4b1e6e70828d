// Package analysis provides frequency-domain analysis of recorded
// pressure traces.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrEmptyTrace = errors.New("analysis: empty trace")

// Spectrum is the one-sided power spectrum of a sampled trace.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of samples taken at
// interval dt. The trace is zero-padded to the next power of two.
func PowerSpectrum(samples []float64, dt float64) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyTrace
	}
	if dt <= 0 {
		return nil, errors.New("analysis: sample interval must be positive")
	}

	n := nextPow2(len(samples))
	padded := make([]float64, n)
	copy(padded, samples)

	coeffs := fft.FFTReal(padded)

	half := n / 2
	sp := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	df := 1.0 / (float64(n) * dt)
	for i := 0; i < half; i++ {
		sp.Freqs[i] = float64(i) * df
		mag := cmplx.Abs(coeffs[i])
		sp.Power[i] = mag * mag
	}
	return sp, nil
}

// Dominant returns the frequency bin with the largest power, skipping the
// DC component.
func (s *Spectrum) Dominant() float64 {
	best := 0.0
	bestPower := -1.0
	for i := 1; i < len(s.Freqs); i++ {
		if s.Power[i] > bestPower {
			bestPower = s.Power[i]
			best = s.Freqs[i]
		}
	}
	return best
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FrameRMS reduces a sequence of recorded frames to one RMS value per
// frame, for plotting total field activity over a run.
func FrameRMS(frames [][]float64) []float64 {
	out := make([]float64, len(frames))
	for i, data := range frames {
		if len(data) == 0 {
			continue
		}
		sum := 0.0
		for _, v := range data {
			sum += v * v
		}
		out[i] = math.Sqrt(sum / float64(len(data)))
	}
	return out
}
