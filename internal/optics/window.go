package optics

import (
	"math"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// WindowCustom selects a caller-supplied 5-coefficient window.
const WindowCustom = "Custom"

// windowCoefficients holds the α0..α4 terms of the generalized cosine window
//
//	w[n] = α0 − α1·cos(2πn/(N−1)) + α2·cos(4πn/(N−1))
//	          − α3·cos(6πn/(N−1)) + α4·cos(8πn/(N−1))
//
// for the eight named window functions. The symmetric (N−1) denominator keeps
// w[n] == w[N−1−n].
var windowCoefficients = map[string][5]float64{
	"Hann":             {0.5, 0.5, 0, 0, 0},
	"Hamming":          {0.54, 0.46, 0, 0, 0},
	"Blackman":         {0.42, 0.5, 0.08, 0, 0},
	"Exact Blackman":   {0.42659, 0.49656, 0.076849, 0, 0},
	"Nuttall":          {0.355768, 0.487396, 0.144232, 0.012604, 0},
	"Blackman-Nuttall": {0.3635819, 0.4891775, 0.1365995, 0.0106411, 0},
	"Blackman-Harris":  {0.35875, 0.48829, 0.14128, 0.01168, 0},
	"Flat Top":         {0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368},
}

// SumCosineWindow smooths the named column by same-length convolution against
// a generalized cosine window of the given width, normalized by the window
// sum, and writes the result to "<column> (<windowName>)". windowName must be
// one of the eight named coefficient sets or "Custom" with an explicit
// coefficient array.
func (p *Processor) SumCosineWindow(column, windowName string, width int, coeffs ...[5]float64) error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}
	data, err := frame.Column(column)
	if err != nil {
		return err
	}
	if width < 1 {
		return errors.New(errors.CodeInvalidArgument, "window width must be positive, got %d", width)
	}

	var alpha [5]float64
	switch {
	case windowName == WindowCustom:
		if len(coeffs) == 0 {
			return errors.InvalidWindow(windowName)
		}
		alpha = coeffs[0]
	default:
		var ok bool
		alpha, ok = windowCoefficients[windowName]
		if !ok {
			return errors.InvalidWindow(windowName)
		}
	}

	window := makeWindow(alpha, width)
	smoothed := convolveSame(data, window)
	return frame.AddColumn(column+" ("+windowName+")", smoothed)
}

// makeWindow evaluates the sum-of-cosines formula for a symmetric window of
// the given width.
func makeWindow(alpha [5]float64, width int) []float64 {
	w := make([]float64, width)
	if width == 1 {
		w[0] = alpha[0] - alpha[1] + alpha[2] - alpha[3] + alpha[4]
		return w
	}
	denom := float64(width - 1)
	for n := 0; n < width; n++ {
		x := float64(n) / denom
		w[n] = alpha[0] -
			alpha[1]*math.Cos(2*math.Pi*x) +
			alpha[2]*math.Cos(4*math.Pi*x) -
			alpha[3]*math.Cos(6*math.Pi*x) +
			alpha[4]*math.Cos(8*math.Pi*x)
	}
	return w
}

// convolveSame convolves data against the window in same-length mode and
// normalizes by the window sum, so a constant signal stays constant away from
// the edges.
func convolveSame(data, window []float64) []float64 {
	var sum float64
	for _, w := range window {
		sum += w
	}

	n, m := len(data), len(window)
	offset := (m - 1) / 2
	out := make([]float64, n)
	for i := range out {
		var acc float64
		for j := 0; j < m; j++ {
			k := i + offset - j
			if k < 0 || k >= n {
				continue
			}
			acc += data[k] * window[j]
		}
		out[i] = acc / sum
	}
	return out
}
