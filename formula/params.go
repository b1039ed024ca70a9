package formula

import (
	"math"
	"slices"

	"github.com/gogpu/fractal"
)

// Common parameter names.
const (
	ParamSmooth     = "smooth"
	ParamCReal      = "c_real"
	ParamCImag      = "c_imag"
	ParamPower      = "power"
	ParamPReal      = "p_real"
	ParamPImag      = "p_imag"
	ParamTolerance  = "tolerance"
	ParamRelaxation = "relaxation"
	ParamTrap       = "trap"
	ParamTrapSize   = "trap_size"
	ParamEscape     = "escape_radius"
)

// params is the parameter storage embedded by every kind.
// Kinds read values by index on the hot path and by name elsewhere.
type params struct {
	list []fractal.Param
}

func newParams(list ...fractal.Param) params {
	for i := range list {
		list[i].Value = list[i].Default
	}
	return params{list: list}
}

// Params implements fractal.Kind.
func (p *params) Params() []fractal.Param {
	return slices.Clone(p.list)
}

// Param implements fractal.Kind.
func (p *params) Param(name string) (float64, bool) {
	for _, q := range p.list {
		if q.Name == name {
			return q.Value, true
		}
	}
	return 0, false
}

// SetParam implements fractal.Kind.
func (p *params) SetParam(name string, v float64) {
	if math.IsNaN(v) {
		return
	}
	for i := range p.list {
		if p.list[i].Name == name {
			p.list[i].Value = p.list[i].Clamp(v)
			return
		}
	}
}

func (p *params) clone() params {
	return params{list: slices.Clone(p.list)}
}

func (p *params) at(i int) float64 {
	return p.list[i].Value
}

func (p *params) set(i int, v float64) {
	if !math.IsNaN(v) {
		p.list[i].Value = p.list[i].Clamp(v)
	}
}

// Parameter descriptors shared by several kinds.

func smoothParam() fractal.Param {
	return fractal.Param{Name: ParamSmooth, Default: 0, Min: 0, Max: 1, Integer: true}
}

func toleranceParam() fractal.Param {
	return fractal.Param{Name: ParamTolerance, Default: 1e-6, Min: 1e-9, Max: 1e-2}
}

func complexParams(re, im string, defRe, defIm float64) (fractal.Param, fractal.Param) {
	return fractal.Param{Name: re, Default: defRe, Min: -2, Max: 2},
		fractal.Param{Name: im, Default: defIm, Min: -2, Max: 2}
}
