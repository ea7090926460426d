// Package optics derives quantities from single-table spectral records:
// frame-averaged intensity, photon energy from wavelength, ideal low-pass
// filtering, sum-of-cosines window smoothing, numerical gradients, and
// differential reflectance against a background record.
//
// Every operation appends a new named column to the record's table; existing
// columns are never modified. Derived-column names follow the fixed naming
// convention ("Average Intensity", "Energy", "<col> (FFT Smoothed)", ...)
// that downstream notebooks and plots depend on.
package optics
