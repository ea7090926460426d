package transport

import (
	"log/slog"
	"math"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// temperatureChannel is the dilution-fridge thermometer channel recorded by
// the acquisition setup.
const temperatureChannel = "lakeshore_372_ch09_temperature"

// Processor applies transport derivations to a multi-table sweep record.
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

// Factor is an optional multiplicative correction (amplifier gain, current
// amplifier sensitivity) resolved either from a direct value or from a
// metadata key. The zero Factor means no correction.
type Factor struct {
	value float64
	key   string
	set   bool
}

// Fixed supplies the factor directly.
func Fixed(v float64) Factor {
	return Factor{value: v, set: true}
}

// FromMetadata resolves the factor from the record's metadata at apply time.
func FromMetadata(key string) Factor {
	return Factor{key: key, set: true}
}

// resolve returns the divisor, or ok=false for the zero Factor. A named
// metadata key that is absent is a precondition violation.
func (f Factor) resolve(rec *dataset.Record) (float64, bool, error) {
	if !f.set {
		return 0, false, nil
	}
	if f.key == "" {
		return f.value, true, nil
	}
	v, ok := rec.MetadataFloat(f.key)
	if !ok {
		return 0, false, errors.New(errors.CodeInvalidArgument,
			"metadata key %q required but not present", f.key)
	}
	return v, true, nil
}

// CleanTemperatureSweep returns a boolean mask isolating the monotonic branch
// of a resistance-vs-temperature curve. Dilution-fridge thermometry is
// hysteretic near equilibrium; for a cooling sweep a point is kept when it
// lies strictly below the running minimum of all prior points (symmetrically,
// above the running maximum when warming). Points before startTime on the
// table's time axis are masked out.
//
// The mask aligns with the table's rows; callers filter with it, they do not
// treat it as an analysis result.
func (p *Processor) CleanTemperatureSweep(expName string, startTime float64, warming bool) ([]bool, error) {
	frame, err := p.rec.Table(expName)
	if err != nil {
		return nil, err
	}
	temps, err := frame.Column(temperatureChannel)
	if err != nil {
		return nil, err
	}
	times := frame.Index()

	mask := make([]bool, len(temps))
	runMin := math.Inf(1)
	runMax := math.Inf(-1)
	for i, v := range temps {
		if times[i] < startTime {
			continue
		}
		if warming {
			mask[i] = v > runMax
		} else {
			mask[i] = v < runMin
		}
		runMin = math.Min(runMin, v)
		runMax = math.Max(runMax, v)
	}
	return mask, nil
}

// AppendResistance computes V/I for the named experiment and writes it to
// resultName. Optional gain and sensitivity factors divide the result.
func (p *Processor) AppendResistance(expName, resultName, voltageCol, currentCol string, gain, sensitivity Factor) error {
	frame, err := p.rec.Table(expName)
	if err != nil {
		return err
	}
	voltage, err := frame.Column(voltageCol)
	if err != nil {
		return err
	}
	current, err := frame.Column(currentCol)
	if err != nil {
		return err
	}

	resistance := make([]float64, len(voltage))
	for i := range voltage {
		resistance[i] = voltage[i] / current[i]
	}
	if err := p.applyFactors(resistance, gain, sensitivity); err != nil {
		return err
	}
	return frame.AddColumn(resultName, resistance)
}

// BField selects the magnetic field for the MCA computation: either a fixed
// value or the name of a swept-field column.
type BField struct {
	value  float64
	column string
	fixed  bool
}

// FixedField selects a fixed field value in Tesla.
func FixedField(v float64) BField {
	return BField{value: v, fixed: true}
}

// SweptField selects a swept-field column by name.
func SweptField(column string) BField {
	return BField{column: column}
}

// AppendMCACoefficient computes the magnetochiral-anisotropy coefficient
//
//	γ = R_2f / (R_f · B · I)
//
// and writes it to resultName. R_2f is the non-reciprocal signal at twice the
// drive frequency, R_f the sheet resistance at the drive frequency, B the
// magnetic field (fixed or swept), I the source-drain current. Optional gain
// and sensitivity factors divide the result further.
func (p *Processor) AppendMCACoefficient(expName, resultName, r2fCol, rfCol string, b BField, currentCol string, gain, sensitivity Factor) error {
	frame, err := p.rec.Table(expName)
	if err != nil {
		return err
	}
	r2f, err := frame.Column(r2fCol)
	if err != nil {
		return err
	}
	rf, err := frame.Column(rfCol)
	if err != nil {
		return err
	}
	current, err := frame.Column(currentCol)
	if err != nil {
		return err
	}

	var field []float64
	if !b.fixed {
		if field, err = frame.Column(b.column); err != nil {
			return err
		}
	}

	mca := make([]float64, len(r2f))
	for i := range mca {
		mca[i] = r2f[i] / rf[i] / current[i]
		if b.fixed {
			mca[i] /= b.value
		} else {
			mca[i] /= field[i]
		}
	}
	if err := p.applyFactors(mca, gain, sensitivity); err != nil {
		return err
	}
	return frame.AddColumn(resultName, mca)
}

// AppendSymmetrized writes the symmetric and antisymmetric parts of a
// resistance signal under row-order reversal to "<col>_symm" and
// "<col>_antisymm". The table's row order is assumed to correspond to a
// field-symmetric sweep (−B to +B, or a forward/backward pair).
func (p *Processor) AppendSymmetrized(expName, resistanceCol string) error {
	frame, err := p.rec.Table(expName)
	if err != nil {
		return err
	}
	resistance, err := frame.Column(resistanceCol)
	if err != nil {
		return err
	}

	n := len(resistance)
	symm := make([]float64, n)
	antisymm := make([]float64, n)
	for i := range resistance {
		rev := resistance[n-1-i]
		symm[i] = (resistance[i] + rev) / 2
		antisymm[i] = (resistance[i] - rev) / 2
	}
	if err := frame.AddColumn(resistanceCol+"_symm", symm); err != nil {
		return err
	}
	return frame.AddColumn(resistanceCol+"_antisymm", antisymm)
}

// applyFactors divides the series in place by each resolved factor.
func (p *Processor) applyFactors(series []float64, factors ...Factor) error {
	for _, f := range factors {
		divisor, ok, err := f.resolve(p.rec)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for i := range series {
			series[i] /= divisor
		}
	}
	return nil
}
