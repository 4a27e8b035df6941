// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector implements Vector<D> (§4.4): the collection of
// PatchArrays sharing a Domain, with pointwise arithmetic and reductions
// computed via github.com/cpmech/gosl/la over this rank's patches only;
// the reductions do not combine values across ranks.
package vector

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/parray"
	"github.com/cpmech/patchgmg/view"
)

// Vector owns one parray.PatchArray per local patch of a Domain.
type Vector struct {
	dom           *domain.Domain
	numComponents int
	patches       []*parray.PatchArray
}

// New allocates a zero Vector over every local patch of dom, with
// numComponents trailing components per cell.
func New(dom *domain.Domain, numComponents int) *Vector {
	patches := make([]*parray.PatchArray, dom.GetNumLocalPatches())
	for i, p := range dom.GetPatchInfoVector() {
		patches[i] = parray.New(p.Ns, dom.GetNumGhostCells(), numComponents)
	}
	return &Vector{dom: dom, numComponents: numComponents, patches: patches}
}

// GetCommunicator returns the Vector's Domain's communicator. Panics
// with a RuntimeError on a default-constructed (zero) Vector.
func (v *Vector) GetCommunicator() *comm.Communicator {
	v.mustValid()
	return v.dom.GetCommunicator()
}

// GetNumLocalPatches returns the number of PatchArrays owned by this
// Vector, or zero for a default-constructed Vector.
func (v *Vector) GetNumLocalPatches() int {
	if v.dom == nil {
		return 0
	}
	return v.dom.GetNumLocalPatches()
}

// GetNumComponents returns the number of trailing components per cell.
func (v *Vector) GetNumComponents() int { return v.numComponents }

// GetNumLocalCells returns the total interior cell count across every
// local patch, or zero for a default-constructed Vector.
func (v *Vector) GetNumLocalCells() int {
	if v.dom == nil {
		return 0
	}
	return v.dom.GetNumLocalCells()
}

// GetNumGhostCells returns the ghost width shared by every patch, or
// zero for a default-constructed Vector.
func (v *Vector) GetNumGhostCells() int {
	if v.dom == nil {
		return 0
	}
	return v.dom.GetNumGhostCells()
}

func (v *Vector) mustValid() {
	if v.dom == nil {
		panic(gmgerr.NewRuntimeError("vector: operation on a default-constructed (zero) Vector"))
	}
}

// GetPatchView returns the View over the local patch at localPatchIndex,
// spanning every component.
func (v *Vector) GetPatchView(localPatchIndex int) *view.View {
	v.mustValid()
	if localPatchIndex < 0 || localPatchIndex >= len(v.patches) {
		panic(gmgerr.NewRuntimeError("vector: local patch index %d out of range [0,%d)", localPatchIndex, len(v.patches)))
	}
	return v.patches[localPatchIndex].View
}

// GetComponentView returns the View over one component of the local
// patch at localPatchIndex.
func (v *Vector) GetComponentView(component, localPatchIndex int) *view.View {
	full := v.GetPatchView(localPatchIndex)
	if component < 0 || component >= v.numComponents {
		panic(gmgerr.NewRuntimeError("vector: component %d out of range [0,%d)", component, v.numComponents))
	}
	return &view.View{
		Data:          full.Data[component*full.Strides[full.D]:],
		D:             full.D,
		NumComponents: 1,
		Strides:       full.Strides,
		GhostStart:    full.GhostStart,
		GhostEnd:      full.GhostEnd,
		Start:         full.Start,
		End:           full.End,
		NumGhostCells: full.NumGhostCells,
	}
}

// GetZeroClone returns a new Vector with the same shape as v and every
// entry set to zero.
func (v *Vector) GetZeroClone() *Vector {
	v.mustValid()
	return New(v.dom, v.numComponents)
}

// each calls fn once per local patch's raw buffer pair, for pointwise
// operations shared by Set/Copy/Add/Scale/etc.
func (v *Vector) each(other *Vector, fn func(a, b []float64)) {
	v.mustValid()
	for i, p := range v.patches {
		var ob []float64
		if other != nil {
			ob = other.patches[i].View.Data
		}
		fn(p.View.Data, ob)
	}
}

// Set overwrites every interior cell (not ghost padding) of every local
// patch with val.
func (v *Vector) Set(val float64) {
	v.mustValid()
	for i := range v.patches {
		v.GetPatchView(i).LoopOverInteriorIndexes(func(coord []int) {
			for c := 0; c < v.numComponents; c++ {
				v.patches[i].View.Set(coord, c, val)
			}
		})
	}
}

// SetWithGhost overwrites every cell, including ghost padding, of every
// local patch with val.
func (v *Vector) SetWithGhost(val float64) {
	v.mustValid()
	for _, p := range v.patches {
		p.Fill(val)
	}
}

// Copy overwrites v's data (interior and ghost) with other's.
func (v *Vector) Copy(other *Vector) {
	v.each(other, func(a, b []float64) { copy(a, b) })
}

// Add performs v += other over every entry, interior and ghost alike.
func (v *Vector) Add(other *Vector) {
	v.each(other, func(a, b []float64) {
		for i := range a {
			a[i] += b[i]
		}
	})
}

// AddScaled performs v += alpha*other over every entry.
func (v *Vector) AddScaled(alpha float64, other *Vector) {
	v.each(other, func(a, b []float64) {
		for i := range a {
			a[i] += alpha * b[i]
		}
	})
}

// Scale performs v *= alpha over every entry.
func (v *Vector) Scale(alpha float64) {
	v.each(nil, func(a, _ []float64) {
		for i := range a {
			a[i] *= alpha
		}
	})
}

// ScaleThenAdd performs v = alpha*v + other over every entry.
func (v *Vector) ScaleThenAdd(alpha float64, other *Vector) {
	v.each(other, func(a, b []float64) {
		for i := range a {
			a[i] = alpha*a[i] + b[i]
		}
	})
}

// Shift adds delta to every entry.
func (v *Vector) Shift(delta float64) {
	v.each(nil, func(a, _ []float64) {
		for i := range a {
			a[i] += delta
		}
	})
}

// localInterior gathers every local patch's interior cells into one
// la.Vector, for use by the reduction helpers below.
func (v *Vector) localInterior() la.Vector {
	var out la.Vector
	for i := range v.patches {
		v.GetPatchView(i).LoopOverInteriorIndexes(func(coord []int) {
			for c := 0; c < v.numComponents; c++ {
				out = append(out, v.patches[i].View.At(coord, c))
			}
		})
	}
	return out
}

// TwoNorm returns the Euclidean norm, via la.VecNorm, of the interior
// cells of this rank's patches. Cells owned by other ranks are not
// included: no cross-rank reduction is performed, so the result is the
// global norm only on a single-rank Communicator.
func (v *Vector) TwoNorm() float64 {
	v.mustValid()
	return la.VecNorm(v.localInterior())
}

// InfNorm returns the maximum absolute value among the interior cells
// of this rank's patches; like TwoNorm, it does not reduce across ranks.
func (v *Vector) InfNorm() float64 {
	v.mustValid()
	local := v.localInterior()
	max := 0.0
	for _, x := range local {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}

// Dot returns the inner product of v and other's interior cells over
// this rank's patches; like TwoNorm, it does not reduce across ranks.
func (v *Vector) Dot(other *Vector) float64 {
	v.mustValid()
	a := v.localInterior()
	b := other.localInterior()
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
