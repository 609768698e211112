// Package analysis provides frequency-domain views of recorded
// series, used to spot power and poison oscillations.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2 recursion.
// The input length must be a power of two; Pad extends arbitrary
// series to the next one.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft length must be a power of two")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// Pad returns data zero-extended to the next power-of-two length. The
// result is always a fresh slice.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum pads the series and returns the magnitude of each
// non-negative frequency bin.
func PowerSpectrum(data []float64) []float64 {
	spec := FFT(Pad(data))
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Dominant returns the strongest oscillation in a series sampled at
// interval dt: its frequency in hertz and its spectral magnitude. The
// DC bin is skipped. A series too short or too flat to carry an
// oscillation yields (0, 0).
func Dominant(data []float64, dt float64) (freqHz, magnitude float64) {
	if len(data) < 4 || dt <= 0 {
		return 0, 0
	}

	ps := PowerSpectrum(data)
	maxIdx := 0
	maxMag := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxMag {
			maxMag = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, 0
	}

	// Bin i of an n-point transform sits at i/(n*dt) hertz.
	n := 2 * len(ps)
	return float64(maxIdx) / (float64(n) * dt), maxMag
}
