package optics

import (
	"log/slog"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// LowPassFilter applies an ideal low-pass filter to the named column: forward
// real FFT, zero every frequency bin at or beyond cutoffIndex, inverse
// transform. The result lands in "<column> (FFT Smoothed)".
//
// The cutoff is a hard brick wall, so ringing at sharp edges (Gibbs
// phenomenon) is expected.
func (p *Processor) LowPassFilter(column string, cutoffIndex int) error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}
	data, err := frame.Column(column)
	if err != nil {
		return err
	}
	if cutoffIndex < 0 {
		return errors.New(errors.CodeInvalidArgument,
			"cutoff index must be non-negative, got %d", cutoffIndex)
	}

	n := len(data)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, data)
	zeroed := 0
	for i := cutoffIndex; i < len(coeffs); i++ {
		coeffs[i] = 0
		zeroed++
	}

	smoothed := fft.Sequence(nil, coeffs)
	// The gonum transform pair is unnormalized.
	for i := range smoothed {
		smoothed[i] /= float64(n)
	}

	p.logger.Debug("low-pass filtered column",
		slog.String("column", column),
		slog.Int("bins_zeroed", zeroed),
		slog.Int("bins_total", len(coeffs)))
	return frame.AddColumn(column+" (FFT Smoothed)", smoothed)
}
