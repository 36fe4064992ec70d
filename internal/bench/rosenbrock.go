// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

// GeneralizedRosenbrock evaluates
//
//	f(x) = Σᵢ₌₀ⁿ⁻² [(xᵢ - 1)² + 100(xᵢ₊₁ - xᵢ²)²] + (xₙ₋₁ - 1)² + 100xₙ₋₁⁴
//
// The trailing term couples the last coordinate to an implicit xₙ = 0.
// x must have at least two elements.
func GeneralizedRosenbrock(x []float64) (v float64) {
	n := len(x)
	if n < 2 {
		panic("dimension of the problem must be at least 2")
	}
	for i := 0; i < n-1; i++ {
		a, b := x[i]-1, x[i+1]-x[i]*x[i]
		v += a*a + 100*b*b
	}
	last := x[n-1]
	v += (last-1)*(last-1) + 100*last*last*last*last
	return
}

// GeneralizedRosenbrockGrad stores the gradient of GeneralizedRosenbrock at x in grad.
func GeneralizedRosenbrockGrad(grad, x []float64) {
	n := len(x)
	if n < 2 {
		panic("dimension of the problem must be at least 2")
	}
	if len(grad) != n {
		panic("incorrect size of the gradient")
	}

	for i := 1; i < n-1; i++ {
		grad[i] = 2*(x[i]-1) - 400*(x[i+1]-x[i]*x[i])*x[i] + 200*(x[i]-x[i-1]*x[i-1])
	}

	grad[0] = 2*(x[0]-1) - 400*(x[1]-x[0]*x[0])*x[0]

	i := n - 1
	grad[i] = 2*(x[i]-1) + 400*x[i]*x[i]*x[i] + 200*(x[i]-x[i-1]*x[i-1])
}
