package optics

import (
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// Defining SI constants (2019 redefinition), used for unit conversion.
const (
	planckConstant   = 6.62607015e-34 // J·s
	speedOfLight     = 299792458.0    // m/s
	elementaryCharge = 1.602176634e-19 // C
)

// intensityPrefix is the naming convention for per-frame spectra. Prefix
// matching is exact and case-sensitive; existing derived data depends on it.
const intensityPrefix = "Intensity"

// Processor applies optical derivations to a single-table spectral record.
type Processor struct {
	rec    *dataset.Record
	logger *slog.Logger
}

// New creates a processor over the given record. A nil logger falls back to
// slog.Default.
func New(rec *dataset.Record, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{rec: rec, logger: logger}
}

// AverageSignal averages all intensity columns row-wise into a new
// "Average Intensity" column. The divisor is, in order of preference: the
// explicit frameCount when positive, the num_frames metadata entry, or the
// number of matched intensity columns. The last assumes one intensity column
// per captured frame.
func (p *Processor) AverageSignal(frameCount float64) error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}

	var matched []string
	for _, name := range frame.Columns() {
		if strings.HasPrefix(name, intensityPrefix) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return errors.MissingColumn(frame.Name(), intensityPrefix+"*")
	}

	divisor := frameCount
	if divisor <= 0 {
		if v, ok := p.rec.MetadataFloat("num_frames"); ok {
			divisor = v
		} else {
			divisor = float64(len(matched))
		}
	}

	sum := make([]float64, frame.NumRows())
	for _, name := range matched {
		col, err := frame.Column(name)
		if err != nil {
			return err
		}
		for i, v := range col {
			sum[i] += v
		}
	}
	for i := range sum {
		sum[i] /= divisor
	}

	p.logger.Debug("averaged intensity columns",
		slog.Int("columns", len(matched)),
		slog.Float64("divisor", divisor))
	return frame.AddColumn("Average Intensity", sum)
}

// EnergyFromWavelength converts the "Wavelength" column (nm) to photon energy
// in eV via E = h·c/(λ·e), written to a new "Energy" column.
func (p *Processor) EnergyFromWavelength() error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}
	wavelength, err := frame.Column("Wavelength")
	if err != nil {
		return err
	}

	energy := make([]float64, len(wavelength))
	for i, nm := range wavelength {
		energy[i] = planckConstant * speedOfLight / (nm * 1e-9 * elementaryCharge)
	}
	return frame.AddColumn("Energy", energy)
}

// Gradient writes the discrete numerical gradient of the named column to
// "Grad <column>": central differences in the interior, one-sided differences
// at the boundaries, unit sample spacing.
func (p *Processor) Gradient(column string) error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}
	data, err := frame.Column(column)
	if err != nil {
		return err
	}
	n := len(data)
	if n < 2 {
		return errors.New(errors.CodeInvalidArgument,
			"gradient of %q needs at least 2 rows, have %d", column, n)
	}

	grad := make([]float64, n)
	grad[0] = data[1] - data[0]
	grad[n-1] = data[n-1] - data[n-2]
	for i := 1; i < n-1; i++ {
		grad[i] = (data[i+1] - data[i-1]) / 2
	}
	return frame.AddColumn("Grad "+column, grad)
}

// DifferentialReflectance computes signal/(signal+background) against the
// "Intensity" column of a separately loaded background record, aligned by row
// position, and writes it to "dR/R <column>". When subtractMean is set the
// arithmetic mean of the result is removed.
func (p *Processor) DifferentialReflectance(column string, background *dataset.Record, subtractMean bool) error {
	frame, err := p.rec.Only()
	if err != nil {
		return err
	}
	signal, err := frame.Column(column)
	if err != nil {
		return err
	}

	bgFrame, err := background.Only()
	if err != nil {
		return err
	}
	bg, err := bgFrame.Column(intensityPrefix)
	if err != nil {
		return err
	}
	if len(bg) != len(signal) {
		return errors.New(errors.CodeInvalidArgument,
			"background has %d rows, signal %q has %d", len(bg), column, len(signal))
	}

	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] / (signal[i] + bg[i])
	}
	if subtractMean {
		mean := stat.Mean(out, nil)
		for i := range out {
			out[i] -= mean
		}
	}
	return frame.AddColumn("dR/R "+column, out)
}
