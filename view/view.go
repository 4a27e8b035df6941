// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view implements View (§4.3): a strided D-dimensional window
// over a flat buffer, distinguishing the interior box from the padding
// ghost box around it. Every kernel in this module reads and writes
// patch data exclusively through a View; nothing here ever touches a
// raw slice directly once a patch's PatchArray is built.
package view

import "github.com/cpmech/patchgmg/gmgerr"

// View addresses a D-dimensional, possibly multi-component, slab of a
// flat float64 buffer. It never owns the buffer; see parray.PatchArray
// for the owning counterpart.
//
// Two nested boxes are tracked per axis: the ghost box
// [GhostStart,GhostEnd] and the interior box [Start,End], both
// inclusive, in the coordinate system of the underlying patch. Data is a
// borrowed slice; Strides maps a D-coordinate (plus, when NumComponents
// > 1, a trailing component index) to a linear offset into Data.
type View struct {
	Data []float64

	D             int
	NumComponents int

	Strides []int // length D, plus one extra trailing stride for components

	GhostStart []int // length D
	GhostEnd   []int // length D
	Start      []int // length D
	End        []int // length D

	NumGhostCells int
}

// New builds a View over data for a D-dimensional patch with ns[i]
// interior cells on axis i and the given uniform ghost width. Storage is
// row-major with components innermost: the component index varies
// fastest, then axis D-1, and so on down to axis 0.
func New(data []float64, ns []int, numGhostCells, numComponents int) *View {
	D := len(ns)
	strides := make([]int, D+1)
	strides[D] = 1
	stride := numComponents
	dims := make([]int, D)
	for i := range ns {
		dims[i] = ns[i] + 2*numGhostCells
	}
	for i := D - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}

	start := make([]int, D)
	end := make([]int, D)
	ghostStart := make([]int, D)
	ghostEnd := make([]int, D)
	for i := 0; i < D; i++ {
		start[i] = 0
		end[i] = ns[i] - 1
		ghostStart[i] = -numGhostCells
		ghostEnd[i] = ns[i] - 1 + numGhostCells
	}

	return &View{
		Data:          data,
		D:             D,
		NumComponents: numComponents,
		Strides:       strides,
		GhostStart:    ghostStart,
		GhostEnd:      ghostEnd,
		Start:         start,
		End:           end,
		NumGhostCells: numGhostCells,
	}
}

// offset computes the linear offset of coord (length D) plus component
// c into Data, panicking with a RuntimeError if coord falls outside the
// ghost box.
func (v *View) offset(coord []int, c int) int {
	if len(coord) != v.D {
		panic(gmgerr.NewRuntimeError("view: coordinate has %d entries, want %d", len(coord), v.D))
	}
	off := 0
	for i, x := range coord {
		if x < v.GhostStart[i] || x > v.GhostEnd[i] {
			panic(gmgerr.NewRuntimeError("view: coordinate %d on axis %d outside ghost box [%d,%d]", x, i, v.GhostStart[i], v.GhostEnd[i]))
		}
		off += (x - v.GhostStart[i]) * v.Strides[i]
	}
	if c < 0 || c >= v.NumComponents {
		panic(gmgerr.NewRuntimeError("view: component %d outside [0,%d)", c, v.NumComponents))
	}
	return off + c*v.Strides[v.D]
}

// At returns the value at coord (length D) and component c.
func (v *View) At(coord []int, c int) float64 {
	return v.Data[v.offset(coord, c)]
}

// Set stores val at coord (length D) and component c.
func (v *View) Set(coord []int, c int, val float64) {
	v.Data[v.offset(coord, c)] = val
}

// LoopOverInteriorIndexes calls fn once per coordinate in the interior
// box, in natural (row-major) order, per §4.3.
func (v *View) LoopOverInteriorIndexes(fn func(coord []int)) {
	loopBox(v.Start, v.End, fn)
}

// LoopOverAllIndexes calls fn once per coordinate in the ghost box,
// including the interior, in natural order.
func (v *View) LoopOverAllIndexes(fn func(coord []int)) {
	loopBox(v.GhostStart, v.GhostEnd, fn)
}

func loopBox(lo, hi []int, fn func(coord []int)) {
	D := len(lo)
	coord := make([]int, D)
	copy(coord, lo)
	for {
		fn(coord)
		axis := D - 1
		for axis >= 0 {
			coord[axis]++
			if coord[axis] <= hi[axis] {
				break
			}
			coord[axis] = lo[axis]
			axis--
		}
		if axis < 0 {
			return
		}
	}
}

// GetSliceOn returns a View of dimension D-faceDim addressing a slab at
// integer offset from face, per §3.2 invariant 9 / §4.3: offset all
// zero is the first interior slab adjacent to the face, offset all -1
// is the first ghost slab, and so on. offset has length faceDim (the
// face's own codimension count, i.e. the number of axes fixed by the
// face).
//
// faceAxes names, for each fixed axis of the face (in the order
// matching offset), the axis index into this View's coordinates, and
// faceUpper whether that axis is fixed at its upper (true) or lower
// (false) bound. freeAxes lists the remaining axes, in the order the
// returned slice's axes should be laid out.
func (v *View) GetSliceOn(faceAxes []int, faceUpper []bool, offset []int, freeAxes []int) *View {
	if len(faceAxes) != len(offset) {
		panic(gmgerr.NewRuntimeError("view: GetSliceOn offset has %d entries, want %d", len(offset), len(faceAxes)))
	}
	for _, o := range offset {
		if o > 0 || -o > v.NumGhostCells {
			panic(gmgerr.NewRuntimeError("view: GetSliceOn offset %d outside [-%d,0]", o, v.NumGhostCells))
		}
	}

	base := 0
	for k, axis := range faceAxes {
		x := v.Start[axis] + offset[k]
		if faceUpper[k] {
			x = v.End[axis] - offset[k]
		}
		base += (x - v.GhostStart[axis]) * v.Strides[axis]
	}

	sub := len(freeAxes)
	strides := make([]int, sub+1)
	start := make([]int, sub)
	end := make([]int, sub)
	ghostStart := make([]int, sub)
	ghostEnd := make([]int, sub)
	for j, axis := range freeAxes {
		strides[j] = v.Strides[axis]
		start[j] = v.Start[axis]
		end[j] = v.End[axis]
		ghostStart[j] = v.GhostStart[axis]
		ghostEnd[j] = v.GhostEnd[axis]
	}
	strides[sub] = v.Strides[v.D]

	return &View{
		Data:          v.Data[base:],
		D:             sub,
		NumComponents: v.NumComponents,
		Strides:       strides,
		GhostStart:    ghostStart,
		GhostEnd:      ghostEnd,
		Start:         start,
		End:           end,
		NumGhostCells: v.NumGhostCells,
	}
}
