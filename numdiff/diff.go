package numdiff

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

const defaultTol = 1e-4

type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use the second order accuracy central difference.
	Central
)

// ErrGradMismatch is returned by Check when the analytic gradient is
// further than Tol from its finite difference estimate.
var ErrGradMismatch = errors.New("numdiff: gradient does not match finite differences")

// Func evaluates a scalar function at x.
type Func func(x []float64) (float64, error)

// GradFunc evaluates the analytic gradient of a Func at x.
type GradFunc func(x []float64) ([]float64, error)

// GradSpec estimates the gradient of a scalar function by finite differences
// and checks analytic gradients against the estimate.
//
// A GradSpec keeps its step buffer between calls,
// so separate specs need to be created for each goroutine.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
type GradSpec struct {
	// Finite difference method to use.
	Method Method
	// Relative step size used to compute absolute step size.
	// The default absolute step size is computed as h = eps * sign(x0) * max(1, abs(x0)),
	// where eps is √ε for Forward and ∛ε for Central.
	// Otherwise, absolute step size is computed as h = RelStep * sign(x0) * abs(x0) when RelStep is provided.
	RelStep float64
	// Absolute step size to use. The RelStep is used when AbsStep is not provide.
	// For Central method the sign of AbsStep is ignored.
	AbsStep float64
	// Largest ‖g - gᶠᵈ‖₂ accepted by Check. Zero selects 1e-4.
	Tol float64

	absStep []float64
}

func (gs *GradSpec) check(x0, grad []float64) (err error) {
	switch {
	case len(x0) == 0:
		err = errors.New("numdiff: zero dimensional input")
	case gs.Method != Forward && gs.Method != Central:
		err = errors.New("numdiff: unknown method")
	case len(grad) != len(x0):
		err = fmt.Errorf("numdiff: gradient has %d elements, point has %d", len(grad), len(x0))
	case gs.Tol < 0 || math.IsNaN(gs.Tol):
		err = errors.New("numdiff: tolerance must not less than 0")
	}
	if len(gs.absStep) != len(x0) {
		gs.absStep = make([]float64, len(x0))
	}
	return
}

// Gradient stores the finite difference estimate of ∇f(x0) in grad.
// x0 is not modified.
func (gs *GradSpec) Gradient(f Func, x0, grad []float64) error {

	if f == nil {
		return errors.New("numdiff: function is required")
	}
	if err := gs.check(x0, grad); err != nil {
		return err
	}

	gs.absoluteStep(x0)
	x := slices.Repeat(x0, 1)

	if gs.Method == Central {
		return gs.approxCentral(f, x, grad)
	}
	return gs.approxForward(f, x, grad)
}

// Check compares the analytic gradient g(x0) with the finite difference
// estimate of ∇f(x0) and returns the euclidean distance between them.
// The error wraps ErrGradMismatch when the distance is greater than Tol.
func (gs *GradSpec) Check(f Func, g GradFunc, x0 []float64) (float64, error) {

	if g == nil {
		return math.NaN(), errors.New("numdiff: gradient function is required")
	}

	approx := make([]float64, len(x0))
	if err := gs.Gradient(f, x0, approx); err != nil {
		return math.NaN(), err
	}

	exact, err := g(slices.Repeat(x0, 1))
	if err != nil {
		return math.NaN(), fmt.Errorf("numdiff: gradient evaluation failed: %w", err)
	}
	if len(exact) != len(x0) {
		return math.NaN(), fmt.Errorf("numdiff: gradient has %d elements, point has %d", len(exact), len(x0))
	}

	tol := gs.Tol
	if tol == 0 {
		tol = defaultTol
	}

	dist := floats.Distance(approx, exact, 2)
	if !(dist <= tol) {
		return dist, fmt.Errorf("%w: error %g exceeds tolerance %g", ErrGradMismatch, dist, tol)
	}
	return dist, nil
}

func (gs *GradSpec) absoluteStep(x0 []float64) {
	h := gs.absStep
	if len(h) != len(x0) {
		panic("bound check error")
	}

	var eps float64
	switch gs.Method {
	case Forward:
		eps = sqrtEps
	case Central:
		eps = cubeEps
	default:
		panic("unknown method")
	}

	abs := gs.AbsStep
	rel := gs.RelStep
	if abs == 0 && rel == 0 {
		for i, v := range x0 {
			h[i] = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
		}
	} else {
		for i, v := range x0 {
			s := abs
			if s == 0 {
				s = math.Copysign(rel, v) * math.Abs(v)
			}
			if d := (v + s) - v; d == 0 {
				s = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
			}
			h[i] = s
		}
	}

	if gs.Method == Central {
		for i, v := range h {
			h[i] = math.Abs(v)
		}
	}
}

// approxForward computes gᵢ = (f(x + hᵢeᵢ) - f(x)) / hᵢ.
func (gs *GradSpec) approxForward(f Func, x, grad []float64) error {

	h := gs.absStep
	if len(h) != len(x) || len(grad) != len(x) {
		panic("bound check error")
	}

	f0, err := f(x)
	if err != nil {
		return fmt.Errorf("numdiff: function evaluation failed: %w", err)
	}
	for i, s := range h {
		t := x[i]
		x[i] = t + s
		fx, err := f(x)
		x[i] = t
		if err != nil {
			return fmt.Errorf("numdiff: function evaluation failed at coordinate %d: %w", i, err)
		}
		grad[i] = (fx - f0) / s
	}
	return nil
}

// approxCentral computes gᵢ = (f(x + hᵢeᵢ) - f(x - hᵢeᵢ)) / 2hᵢ.
func (gs *GradSpec) approxCentral(f Func, x, grad []float64) error {

	h := gs.absStep
	if len(h) != len(x) || len(grad) != len(x) {
		panic("bound check error")
	}

	for i, s := range h {
		t := x[i]
		x[i] = t - s
		f1, err := f(x)
		if err != nil {
			x[i] = t
			return fmt.Errorf("numdiff: function evaluation failed at coordinate %d: %w", i, err)
		}
		x[i] = t + s
		f2, err := f(x)
		x[i] = t
		if err != nil {
			return fmt.Errorf("numdiff: function evaluation failed at coordinate %d: %w", i, err)
		}
		grad[i] = (f2 - f1) / (2 * s)
	}
	return nil
}
