package transport

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// SweepType identifies the instrument/quantity combination encoded in
// experiment names.
type SweepType int

const (
	SweepKeithleyVoltage SweepType = iota
	SweepDynaCoolField
	SweepDynaCoolTemp
	SweepKeithleyCurrent
	SweepAMI430Field
)

// token is the quantity token the acquisition software writes into the
// experiment name, unit is the suffix written after the terminal sweep value.
func (s SweepType) token() (string, error) {
	switch s {
	case SweepKeithleyVoltage:
		return "voltage", nil
	case SweepDynaCoolField, SweepAMI430Field:
		return "field", nil
	case SweepDynaCoolTemp:
		return "temp", nil
	case SweepKeithleyCurrent:
		return "current", nil
	}
	return "", errors.New(errors.CodeInvalidSweepType, "unrecognized sweep type %d", int(s))
}

func (s SweepType) unit() (string, error) {
	switch s {
	case SweepKeithleyVoltage:
		return "V", nil
	case SweepDynaCoolField, SweepAMI430Field:
		return "T", nil
	case SweepDynaCoolTemp:
		return "K", nil
	case SweepKeithleyCurrent:
		return "A", nil
	}
	return "", errors.New(errors.CodeInvalidSweepType, "unrecognized sweep type %d", int(s))
}

// Direction is the sweep direction token in the experiment name.
type Direction int

const (
	DirectionNone Direction = iota // direction not encoded
	DirectionUp
	DirectionDown
)

func (d Direction) suffix() (string, error) {
	switch d {
	case DirectionNone:
		return "", nil
	case DirectionUp:
		return "_up", nil
	case DirectionDown:
		return "_down", nil
	}
	return "", errors.New(errors.CodeInvalidDirection, "unrecognized sweep direction %d", int(d))
}

// SweepAxis names one parameter axis of a 2-D sweep as recorded in the
// experiments table: which instrument swept which quantity, in which
// direction.
type SweepAxis struct {
	Instrument string
	Type       SweepType
	Direction  Direction
}

// pattern builds the experiment-name prefix the acquisition software uses for
// this axis, e.g. "dynacool_field_sweep_up".
func (a SweepAxis) pattern() (string, error) {
	token, err := a.Type.token()
	if err != nil {
		return "", err
	}
	dirn, err := a.Direction.suffix()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_sweep%s", a.Instrument, token, dirn), nil
}

// initPattern names the distinguished initialization experiment for this
// axis, which records the sweep's starting value.
func (a SweepAxis) initPattern() (string, error) {
	token, err := a.Type.token()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_init", a.Instrument, token), nil
}

// SweepGrid is a reconstructed 2-D parameter grid: the outer parameter values
// (initialization value first), the inner parameter axis, and the experiment
// ids of the inner sweeps in outer order.
type SweepGrid struct {
	Outer    []float64
	Inner    []float64
	InnerIDs []int
}

// Extract2DSweep reconstructs a 2-D parameter grid from a family of 1-D
// sweeps recorded as separate experiments. The outer parameter's terminal
// values are parsed out of the matching experiment names, the outer
// initialization value is prepended from the distinguished init experiment,
// and the inner axis is read from the first inner sweep's result table index.
//
// Experiment names are free text written by the acquisition software; values
// are recovered by locating the sweep unit suffix and the "to " phrase before
// it. Names that do not follow the convention simply fail to match.
func (p *Processor) Extract2DSweep(outer, inner SweepAxis) (*SweepGrid, error) {
	outerPattern, err := outer.pattern()
	if err != nil {
		return nil, err
	}
	outerInit, err := outer.initPattern()
	if err != nil {
		return nil, err
	}
	outerUnit, err := outer.Type.unit()
	if err != nil {
		return nil, err
	}
	innerPattern, err := inner.pattern()
	if err != nil {
		return nil, err
	}

	experiments, err := p.rec.Table("experiments")
	if err != nil {
		return nil, err
	}
	names, err := experiments.StringColumn("name")
	if err != nil {
		return nil, err
	}
	expIDs, err := experiments.Column("exp_id")
	if err != nil {
		return nil, err
	}

	grid := &SweepGrid{}
	for i, name := range names {
		switch {
		case strings.HasPrefix(name, outerInit):
			v, err := parseTerminalValue(name, outerUnit)
			if err != nil {
				return nil, err
			}
			// Init value leads the outer axis.
			grid.Outer = append([]float64{v}, grid.Outer...)
		case strings.HasPrefix(name, outerPattern):
			v, err := parseTerminalValue(name, outerUnit)
			if err != nil {
				return nil, err
			}
			grid.Outer = append(grid.Outer, v)
		case strings.HasPrefix(name, innerPattern):
			grid.InnerIDs = append(grid.InnerIDs, int(expIDs[i]))
		}
	}

	if len(grid.Outer) == 0 {
		return nil, errors.MissingExperiment(outerPattern)
	}
	if len(grid.InnerIDs) == 0 {
		return nil, errors.MissingExperiment(innerPattern)
	}

	first, err := p.rec.Table(resultTableName(grid.InnerIDs[0]))
	if err != nil {
		return nil, err
	}
	grid.Inner = first.Index()

	p.logger.Debug("reconstructed 2d sweep grid",
		slog.String("outer", outerPattern),
		slog.String("inner", innerPattern),
		slog.Int("outer_points", len(grid.Outer)),
		slog.Int("inner_points", len(grid.Inner)))
	return grid, nil
}

// Extract2DArray reads the named quantity from each inner sweep's result
// table and stacks the transposed series into one array indexed by
// (sweep position, inner index).
func (p *Processor) Extract2DArray(quantity string, sweepIDs []int) ([][]float64, error) {
	out := make([][]float64, 0, len(sweepIDs))
	for _, id := range sweepIDs {
		frame, err := p.rec.Table(resultTableName(id))
		if err != nil {
			return nil, err
		}
		col, err := frame.Column(quantity)
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(col))
		copy(row, col)
		out = append(out, row)
	}
	return out, nil
}

func resultTableName(expID int) string {
	return fmt.Sprintf("results-%d-1", expID)
}

// parseTerminalValue recovers the sweep's terminal value from free text like
// "dynacool_field_sweep_up to 2.0 T": the number sits between the last "to "
// phrase and the unit suffix.
func parseTerminalValue(name, unit string) (float64, error) {
	idx := strings.LastIndex(name, "to ")
	if idx < 0 {
		return 0, errors.New(errors.CodeMissingExperiment,
			"experiment name %q does not record a sweep target", name)
	}
	tail := name[idx+len("to "):]
	tail = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tail), unit))
	v, err := strconv.ParseFloat(tail, 64)
	if err != nil {
		return 0, errors.Wrap(errors.CodeMissingExperiment, err,
			"cannot parse sweep target from %q", name)
	}
	return v, nil
}
