// Package plotstyle supplies the lab's shared plot styling: a default
// parameter map in matplotlib rcParams vocabulary, YAML-file overrides, and
// the axis-label strings used across transport and optics figures. Consumers
// are external plotting tools; nothing here draws.
package plotstyle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Axis-label strings shared across figures.
const (
	LabelFieldX        = "μ₀H (T)"
	LabelBiasCurrentX  = "I_DC (μA)"
	LabelWavelengthX   = "λ (nm)"
	LabelPhotonEnergyX = "E (eV)"
)

// Params maps style parameter names to values.
type Params map[string]any

// Default returns the lab's house style.
func Default() Params {
	return Params{
		"axes.labelsize":        14,
		"axes.titlesize":        16,
		"axes.titleweight":      2,
		"axes.labelpad":         10,
		"axes.prop_cycle":       []string{"red", "orange", "gold", "green", "blue", "indigo", "violet"},
		"lines.linewidth":       0.8,
		"legend.fontsize":       8,
		"legend.fancybox":       false,
		"legend.shadow":         false,
		"legend.title_fontsize": 14,
		"savefig.dpi":           1200,
		"savefig.transparent":   true,
		"savefig.format":        "png",
		"savefig.bbox":          "tight",
		"figure.dpi":            225,
		"figure.figsize":        []float64{6, 4},
		"xtick.labelsize":       12,
		"ytick.labelsize":       12,
	}
}

// Load returns the default style with overrides applied from a YAML file of
// flat parameter keys. An empty path returns the defaults unchanged.
func Load(path string) (Params, error) {
	params := Default()
	if path == "" {
		return params, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style file %s: %w", path, err)
	}
	overrides := map[string]any{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parsing style file %s: %w", path, err)
	}
	for k, v := range overrides {
		params[k] = v
	}
	return params, nil
}
