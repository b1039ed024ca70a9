package fractal

import (
	"fmt"
	"math"

	"github.com/gogpu/fractal/internal/registry"
)

// Kind is one fractal formula together with its current parameter values.
//
// ComputePixel must be a pure function of its arguments and the receiver's
// parameters: the engine calls it concurrently from many workers on a
// snapshot obtained with Clone, so implementations must not mutate any
// state while computing.
//
// Escape-time kinds return a value in [0, maxIter], where maxIter means the
// orbit stayed bounded; the value may be fractional when smooth coloring is
// enabled. Root-convergence kinds encode the reached root in the value and
// return maxIter or more when the orbit did not converge.
type Kind interface {
	// Key returns the registry key of the kind.
	Key() string

	// Name returns the display name.
	Name() string

	// DefaultBounds returns the region of the plane shown on first use.
	DefaultBounds() Bounds

	// Params describes all parameters with their current values.
	Params() []Param

	// Param returns the current value of a named parameter.
	Param(name string) (float64, bool)

	// SetParam updates a parameter, clamping it to the documented range.
	// Unknown names and NaN values are ignored.
	SetParam(name string, value float64)

	// ComputePixel iterates the formula for the plane point (x, y).
	ComputePixel(x, y float64, maxIter int) float64

	// Clone returns an independent copy carrying the same parameters.
	Clone() Kind
}

// ComplexParameterized is implemented by kinds driven by a single complex
// constant, such as the Julia family.
type ComplexParameterized interface {
	ComplexParam() complex128
	SetComplexParam(c complex128)
}

// PowerParameterized is implemented by kinds with an integer exponent.
type PowerParameterized interface {
	Power() int
	SetPower(n int)
}

// Param describes a numeric parameter of a Kind.
type Param struct {
	Name    string
	Value   float64
	Default float64
	Min     float64
	Max     float64

	// Integer reports that the value is rounded to a whole number.
	Integer bool
}

// Clamp returns v limited to [p.Min, p.Max], rounded for integer parameters.
func (p Param) Clamp(v float64) float64 {
	if p.Integer {
		v = math.Round(v)
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// ApplyParams sets every value of params on k. Unknown names are ignored
// and out of range values are clamped by the kind.
func ApplyParams(k Kind, params map[string]float64) {
	for name, v := range params {
		k.SetParam(name, v)
	}
}

// Snapshot returns the current parameters of k as a flat name to value map.
func Snapshot(k Kind) map[string]float64 {
	params := k.Params()
	m := make(map[string]float64, len(params))
	for _, p := range params {
		m[p.Name] = p.Value
	}
	return m
}

// RegistryEntry is a key and display name pair returned by registry listings.
type RegistryEntry = registry.Entry

// KindRegistry maps case-insensitive keys to fractal kind constructors.
// Build one at startup (see formula.NewRegistry) and pass it to whoever
// needs lookups.
type KindRegistry struct {
	r *registry.Registry[Kind]
}

// NewKindRegistry creates an empty registry.
func NewKindRegistry() *KindRegistry {
	return &KindRegistry{r: registry.New[Kind]()}
}

// Register adds a constructor under key with a display name.
func (kr *KindRegistry) Register(key, name string, ctor func() Kind) {
	kr.r.Register(key, name, ctor)
}

// Create returns a new kind with default parameters.
// An unknown key yields an error wrapping ErrUnknownKind.
func (kr *KindRegistry) Create(key string) (Kind, error) {
	k, err := kr.r.Create(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, key)
	}
	return k, nil
}

// List returns the registered kinds sorted by key.
func (kr *KindRegistry) List() []RegistryEntry {
	return kr.r.List()
}

// Contains reports whether key is registered.
func (kr *KindRegistry) Contains(key string) bool {
	return kr.r.IsRegistered(key)
}
