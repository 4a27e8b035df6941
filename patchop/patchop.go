// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patchop implements PatchOperator (§4.6): the abstract
// per-patch discrete operator contract, plus a concrete second-order
// central-difference star stencil, grounded on ThunderEgg's
// Poisson::StarPatchOperator.
package patchop

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/vector"
	"github.com/cpmech/patchgmg/view"
)

// Operator is the abstract per-patch discrete operator contract of
// §4.6.
type Operator interface {
	// ApplySinglePatch applies L to u on one patch, writing f. Must not
	// write to ghost cells. u's ghost ring is assumed to already be
	// filled.
	ApplySinglePatch(pinfo *patchinfo.Info, u, f *view.View)
	// AddGhostToRHS modifies f at cells adjacent to the patch boundary
	// by adding the stencil's reach into the ghost ring, reducing a
	// problem with nonzero boundary data to one with zero boundary.
	AddGhostToRHS(pinfo *patchinfo.Info, u, f *view.View)
	// Clone returns a deep, independent copy of the operator.
	Clone() Operator
}

// Apply is the default apply(u_vec, f_vec) composition of §4.6:
// fillGhost(u), zero f (including ghosts), then ApplySinglePatch per
// patch.
func Apply(op Operator, filler *ghost.Filler, dom *domain.Domain, u, f *vector.Vector) {
	filler.FillGhost(dom, u)
	f.SetWithGhost(0)
	for i, pinfo := range dom.GetPatchInfoVector() {
		op.ApplySinglePatch(pinfo, u.GetPatchView(i), f.GetPatchView(i))
	}
}

// StarOperator is the second-order central-difference star stencil of
// §4.6's concrete example: -Σ_axis (u[x+1]-2u[x]+u[x-1])/h_axis^2,
// matching the five-/seven-point discrete Laplacian ThunderEgg builds
// with StarPatchOperator.
type StarOperator struct{}

// NewStar returns a StarOperator.
func NewStar() *StarOperator { return &StarOperator{} }

// ApplySinglePatch applies the star stencil to u, writing f over the
// interior box only.
func (o *StarOperator) ApplySinglePatch(pinfo *patchinfo.Info, u, f *view.View) {
	D := pinfo.D
	f.LoopOverInteriorIndexes(func(coord []int) {
		for c := 0; c < u.NumComponents; c++ {
			val := 0.0
			for axis := 0; axis < D; axis++ {
				h := pinfo.Spacings[axis]
				minus := shift(coord, axis, -1)
				plus := shift(coord, axis, +1)
				val += (u.At(plus, c) - 2*u.At(coord, c) + u.At(minus, c)) / (h * h)
			}
			f.Set(coord, c, -val)
		}
	})
}

// AddGhostToRHS adds the stencil's off-patch reach into f at the cells
// adjacent to the boundary, per §4.6: for every boundary-adjacent
// interior cell, subtract the ghost contribution the stencil would
// otherwise have picked up from u's own ghost ring, leaving a
// zero-boundary problem for a patch solver to invert.
func (o *StarOperator) AddGhostToRHS(pinfo *patchinfo.Info, u, f *view.View) {
	D := pinfo.D
	f.LoopOverInteriorIndexes(func(coord []int) {
		for axis := 0; axis < D; axis++ {
			h := pinfo.Spacings[axis]
			if coord[axis] == f.Start[axis] {
				ghostCoord := shift(coord, axis, -1)
				for c := 0; c < u.NumComponents; c++ {
					f.Set(coord, c, f.At(coord, c)+u.At(ghostCoord, c)/(h*h))
				}
			}
			if coord[axis] == f.End[axis] {
				ghostCoord := shift(coord, axis, +1)
				for c := 0; c < u.NumComponents; c++ {
					f.Set(coord, c, f.At(coord, c)+u.At(ghostCoord, c)/(h*h))
				}
			}
		}
	})
}

// Clone returns a deep copy of o. StarOperator carries no mutable
// state, so this is a fresh value.
func (o *StarOperator) Clone() Operator { return &StarOperator{} }

func shift(coord []int, axis, delta int) []int {
	out := append([]int(nil), coord...)
	out[axis] += delta
	return out
}
