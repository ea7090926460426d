// Package transport derives quantities from multi-table sweep records:
// resistance from lock-in voltage and current channels, the magnetochiral
// anisotropy coefficient, field-symmetrized and antisymmetrized signals,
// hysteresis masks for dilution-fridge temperature sweeps, and 2-D parameter
// grids reconstructed from families of 1-D sweep experiments.
//
// Tables are addressed by experiment name. Operations append new derived
// columns in place; bookkeeping tables (experiments, runs) are read-only.
//
// The 2-D sweep reconstruction parses instrument sweep values out of
// free-text experiment names by unit-substring search. That format is an
// acquisition-side convention, not a contract, and unanticipated log text
// will surface as MISSING_EXPERIMENT rather than a parse diagnostic.
package transport
