// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patchsolver

import (
	"math"

	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/vector"
	"github.com/cpmech/patchgmg/view"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTBlockJacobiSmoother is the FFT block-Jacobi smoother of §4.7: for
// a separable, constant-coefficient discrete Laplacian (the star
// stencil's axis-by-axis structure) with homogeneous Dirichlet
// boundaries, the discrete sine transform diagonalizes the operator
// exactly. This precomputes, per patch, the per-axis DST-I plans and
// the resulting eigenvalue grid, then applies the exact patch-local
// inverse by transforming, dividing by the eigenvalues, and
// transforming back.
type FFTBlockJacobiSmoother struct {
	Op patchop.Operator

	eigenCache map[int]*patchEigen
}

type patchEigen struct {
	dst   []*fourier.DST
	denom []float64 // flattened, row-major over pinfo.Ns
	ns    []int
}

// NewFFTBlockJacobi returns an FFTBlockJacobiSmoother wrapping op (used
// only for AddGhostToRHS; the eigendecomposition itself assumes op is a
// second-order star-stencil Laplacian, per §4.6's concrete example).
func NewFFTBlockJacobi(op patchop.Operator) *FFTBlockJacobiSmoother {
	return &FFTBlockJacobiSmoother{Op: op, eigenCache: make(map[int]*patchEigen)}
}

// Smooth ghost-fills u, then solves each patch exactly via its
// precomputed eigendecomposition.
func (s *FFTBlockJacobiSmoother) Smooth(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector) {
	filler.FillGhost(dom, u)
	for i, pinfo := range dom.GetPatchInfoVector() {
		s.solvePatch(pinfo, u.GetPatchView(i), f.GetPatchView(i))
	}
}

// Apply zeroes u's ghosts before smoothing.
func (s *FFTBlockJacobiSmoother) Apply(filler *ghost.Filler, dom *domain.Domain, f, u *vector.Vector) {
	u.SetWithGhost(0)
	s.Smooth(filler, dom, f, u)
}

// Clone returns an FFTBlockJacobiSmoother wrapping a clone of the
// underlying operator, with its own empty eigendecomposition cache.
func (s *FFTBlockJacobiSmoother) Clone() Smoother {
	return &FFTBlockJacobiSmoother{Op: s.Op.Clone(), eigenCache: make(map[int]*patchEigen)}
}

// precompute returns (building and caching, if needed) the
// eigendecomposition of pinfo's discrete Laplacian: eigenvalues
// λ_k = (2/h^2)(1 − cos(kπ/(n+1))) per axis, k = 1..n, which are the
// homogeneous-Dirichlet eigenvalues of the three-point second
// difference the star stencil applies along that axis.
func (s *FFTBlockJacobiSmoother) precompute(pinfo *patchinfo.Info) *patchEigen {
	if e, ok := s.eigenCache[pinfo.ID]; ok {
		return e
	}
	D := pinfo.D
	dsts := make([]*fourier.DST, D)
	axisEig := make([][]float64, D)
	strides := make([]int, D)
	stride := 1
	for a := D - 1; a >= 0; a-- {
		strides[a] = stride
		stride *= pinfo.Ns[a]
		n := pinfo.Ns[a]
		dsts[a] = fourier.NewDST(n)
		h := pinfo.Spacings[a]
		eig := make([]float64, n)
		for k := 0; k < n; k++ {
			eig[k] = (2 / (h * h)) * (1 - math.Cos(float64(k+1)*math.Pi/float64(n+1)))
		}
		axisEig[a] = eig
	}
	total := stride
	denom := make([]float64, total)
	for i := 0; i < total; i++ {
		rem := i
		sum := 0.0
		for a := 0; a < D; a++ {
			k := rem / strides[a]
			rem -= k * strides[a]
			sum += axisEig[a][k]
		}
		denom[i] = sum
	}
	e := &patchEigen{dst: dsts, denom: denom, ns: append([]int(nil), pinfo.Ns...)}
	s.eigenCache[pinfo.ID] = e
	return e
}

// solvePatch folds u's ghost ring into a copy of f via AddGhostToRHS
// (the caller's f is left unchanged), then solves the resulting
// homogeneous-Dirichlet problem exactly via separable DST in that copy,
// writing the result back into u's interior.
func (s *FFTBlockJacobiSmoother) solvePatch(pinfo *patchinfo.Info, u, f *view.View) {
	f = view.New(append([]float64(nil), f.Data...), pinfo.Ns, f.NumGhostCells, f.NumComponents)
	s.Op.AddGhostToRHS(pinfo, u, f)
	e := s.precompute(pinfo)
	D := pinfo.D

	for c := 0; c < f.NumComponents; c++ {
		for a := 0; a < D; a++ {
			transformAxis(f, a, e.dst[a], c, 1)
		}
		divideByEigen(f, e, c)
		for a := 0; a < D; a++ {
			// gonum's DST-I is unnormalized: applying it twice
			// multiplies by 2(n+1); fold 1/(2(n+1)) into the inverse pass.
			scale := 1.0 / float64(2*(pinfo.Ns[a]+1))
			transformAxis(f, a, e.dst[a], c, scale)
		}
	}

	f.LoopOverInteriorIndexes(func(coord []int) {
		for c := 0; c < f.NumComponents; c++ {
			u.Set(coord, c, f.At(coord, c))
		}
	})
}

// transformAxis applies dst along axis to every 1-D line of v's
// interior box for component c, scaling the transformed line by scale.
func transformAxis(v *view.View, axis int, dst *fourier.DST, c int, scale float64) {
	D := v.D
	var freeAxes []int
	for a := 0; a < D; a++ {
		if a != axis {
			freeAxes = append(freeAxes, a)
		}
	}
	n := v.End[axis] - v.Start[axis] + 1
	line := make([]float64, n)
	forEachBox(v, freeAxes, func(free []int) {
		coord := make([]int, D)
		for j, a := range freeAxes {
			coord[a] = free[j]
		}
		for i := 0; i < n; i++ {
			coord[axis] = v.Start[axis] + i
			line[i] = v.At(coord, c)
		}
		out := dst.Transform(nil, line)
		for i := 0; i < n; i++ {
			coord[axis] = v.Start[axis] + i
			v.Set(coord, c, scale*out[i])
		}
	})
}

// divideByEigen divides every interior cell of component c by the
// matching entry of e's precomputed eigenvalue grid.
func divideByEigen(v *view.View, e *patchEigen, c int) {
	D := len(e.ns)
	strides := make([]int, D)
	stride := 1
	for a := D - 1; a >= 0; a-- {
		strides[a] = stride
		stride *= e.ns[a]
	}
	v.LoopOverInteriorIndexes(func(coord []int) {
		idx := 0
		for a := 0; a < D; a++ {
			idx += (coord[a] - v.Start[a]) * strides[a]
		}
		if e.denom[idx] == 0 {
			v.Set(coord, c, 0)
			return
		}
		v.Set(coord, c, v.At(coord, c)/e.denom[idx])
	})
}

// forEachBox calls fn once per coordinate of v's interior box
// restricted to axes.
func forEachBox(v *view.View, axes []int, fn func(coord []int)) {
	n := len(axes)
	if n == 0 {
		fn(nil)
		return
	}
	lo := make([]int, n)
	hi := make([]int, n)
	for i, a := range axes {
		lo[i] = v.Start[a]
		hi[i] = v.End[a]
	}
	coord := append([]int(nil), lo...)
	for {
		fn(append([]int(nil), coord...))
		i := n - 1
		for i >= 0 {
			coord[i]++
			if coord[i] <= hi[i] {
				break
			}
			coord[i] = lo[i]
			i--
		}
		if i < 0 {
			return
		}
	}
}
