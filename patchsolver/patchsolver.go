// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patchsolver implements PatchSolver and the block-Jacobi
// Smoother contract of §4.7: applying L_patch^{-1} locally, either via a
// small matrix-free Krylov iteration (CG or BiCGStab, KrylovSolver) or
// via the star stencil's per-patch eigendecomposition, which
// FFTBlockJacobiSmoother computes and caches itself.
package patchsolver

import (
	"math"

	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/parray"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/vector"
	"github.com/cpmech/patchgmg/view"
)

// Smoother is the contract of §4.7: a cheap approximate per-patch
// inverse applied as a block-Jacobi sweep.
type Smoother interface {
	// Smooth ghost-fills u, then for each patch solves L_patch
	// u_patch = f_patch using the current boundary ghosts. Monotone
	// error reduction is not required.
	Smooth(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector)
	// Apply is Smooth with the ghosts (and so the boundary data) zeroed
	// first.
	Apply(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector)
	// Clone returns a deep, independent copy of the smoother.
	Clone() Smoother
}

// Method selects which small Krylov iteration KrylovSolver runs per
// patch.
type Method int

const (
	CG Method = iota
	BiCGStab
)

// KrylovSolver is the BiCGStab/CG patch solver of §4.7: it wraps a
// patch-local Operator and runs a small matrix-free Krylov iteration
// against a single-patch right-hand side built via AddGhostToRHS.
type KrylovSolver struct {
	Op               patchop.Operator
	Method           Method
	MaxIt            int
	Tol              float64
	ContinueOnBreakdown bool
}

// NewKrylov returns a KrylovSolver wrapping op.
func NewKrylov(op patchop.Operator, method Method, maxIt int, tol float64, continueOnBreakdown bool) *KrylovSolver {
	return &KrylovSolver{Op: op, Method: method, MaxIt: maxIt, Tol: tol, ContinueOnBreakdown: continueOnBreakdown}
}

// Smooth ghost-fills u, then solves each patch in place.
func (s *KrylovSolver) Smooth(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector) {
	filler.FillGhost(dom, u)
	for i, pinfo := range dom.GetPatchInfoVector() {
		s.solvePatch(dom, pinfo, u.GetPatchView(i), f.GetPatchView(i))
	}
}

// Apply zeroes u's ghosts (and so its boundary data) before smoothing.
func (s *KrylovSolver) Apply(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector) {
	u.SetWithGhost(0)
	s.Smooth(filler, dom, f, u)
}

// Clone returns a KrylovSolver wrapping a clone of the underlying
// operator, with the same method/tolerance/breakdown policy.
func (s *KrylovSolver) Clone() Smoother {
	return &KrylovSolver{
		Op:               s.Op.Clone(),
		Method:           s.Method,
		MaxIt:            s.MaxIt,
		Tol:              s.Tol,
		ContinueOnBreakdown: s.ContinueOnBreakdown,
	}
}

// solvePatch folds u's current ghost ring into a copy of f via
// AddGhostToRHS (the caller's f is left unchanged), then solves the
// resulting zero-boundary problem matrix-free, writing the result back
// into u's interior.
func (s *KrylovSolver) solvePatch(dom *domain.Domain, pinfo *patchinfo.Info, u, f *view.View) {
	f = view.New(append([]float64(nil), f.Data...), pinfo.Ns, f.NumGhostCells, f.NumComponents)
	s.Op.AddGhostToRHS(pinfo, u, f)

	rhs := flattenInterior(f)
	scratchU := parray.New(pinfo.Ns, dom.GetNumGhostCells(), u.NumComponents)
	scratchF := parray.New(pinfo.Ns, dom.GetNumGhostCells(), u.NumComponents)
	apply := func(x []float64) []float64 {
		unflattenInterior(scratchU.View, x)
		s.Op.ApplySinglePatch(pinfo, scratchU.View, scratchF.View)
		return flattenInterior(scratchF.View)
	}

	var x []float64
	var breakdown bool
	switch s.Method {
	case BiCGStab:
		x, breakdown = bicgstab(apply, rhs, s.Tol, s.MaxIt)
	default:
		x, breakdown = conjugateGradient(apply, rhs, s.Tol, s.MaxIt)
	}
	if breakdown && !s.ContinueOnBreakdown {
		panic(gmgerr.NewBreakdownError("patchsolver: breakdown solving patch %d", pinfo.ID))
	}

	unflattenInterior(u, x)
}

func flattenInterior(v *view.View) []float64 {
	out := make([]float64, 0, 64)
	v.LoopOverInteriorIndexes(func(coord []int) {
		for c := 0; c < v.NumComponents; c++ {
			out = append(out, v.At(coord, c))
		}
	})
	return out
}

func unflattenInterior(v *view.View, x []float64) {
	i := 0
	v.LoopOverInteriorIndexes(func(coord []int) {
		for c := 0; c < v.NumComponents; c++ {
			v.Set(coord, c, x[i])
			i++
		}
	})
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm2(a []float64) float64 { return math.Sqrt(dot(a, a)) }

// conjugateGradient solves A x = rhs matrix-free starting from x=0,
// assuming A (apply) is symmetric positive definite. Returns breakdown
// true if it hits a zero denominator or fails to converge within maxIt.
func conjugateGradient(apply func([]float64) []float64, rhs []float64, tol float64, maxIt int) (x []float64, breakdown bool) {
	n := len(rhs)
	x = make([]float64, n)
	bNorm := norm2(rhs)
	if bNorm == 0 {
		return x, false
	}
	r := append([]float64(nil), rhs...)
	p := append([]float64(nil), r...)
	rsOld := dot(r, r)

	for it := 0; it < maxIt; it++ {
		if math.Sqrt(rsOld) <= tol*bNorm {
			return x, false
		}
		Ap := apply(p)
		pAp := dot(p, Ap)
		if pAp == 0 {
			return x, true
		}
		alpha := rsOld / pAp
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * Ap[i]
		}
		rsNew := dot(r, r)
		if rsNew == 0 {
			return x, false
		}
		beta := rsNew / rsOld
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rsOld = rsNew
	}
	return x, math.Sqrt(rsOld) > tol*bNorm
}

// bicgstab solves A x = rhs matrix-free starting from x=0, via the
// unpreconditioned stabilized biconjugate gradient method. Returns
// breakdown true on a zero rho/omega denominator or non-convergence.
func bicgstab(apply func([]float64) []float64, rhs []float64, tol float64, maxIt int) (x []float64, breakdown bool) {
	n := len(rhs)
	x = make([]float64, n)
	bNorm := norm2(rhs)
	if bNorm == 0 {
		return x, false
	}
	r := append([]float64(nil), rhs...)
	rhat := append([]float64(nil), r...)
	rho, alpha, omega := 1.0, 1.0, 1.0
	v := make([]float64, n)
	p := make([]float64, n)

	for it := 0; it < maxIt; it++ {
		if norm2(r) <= tol*bNorm {
			return x, false
		}
		rhoNew := dot(rhat, r)
		if rhoNew == 0 {
			return x, true
		}
		if it == 0 {
			copy(p, r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		v = apply(p)
		rhatv := dot(rhat, v)
		if rhatv == 0 {
			return x, true
		}
		alpha = rhoNew / rhatv
		s := make([]float64, n)
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		if norm2(s) <= tol*bNorm {
			for i := range x {
				x[i] += alpha * p[i]
			}
			return x, false
		}
		t := apply(s)
		tt := dot(t, t)
		if tt == 0 {
			return x, true
		}
		omega = dot(t, s) / tt
		for i := range x {
			x[i] += alpha*p[i] + omega*s[i]
		}
		for i := range r {
			r[i] = s[i] - omega*t[i]
		}
		if omega == 0 {
			return x, true
		}
		rho = rhoNew
	}
	return x, norm2(r) > tol*bNorm
}
