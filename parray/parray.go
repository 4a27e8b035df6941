// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parray implements PatchArray (§4.3/§3.2 invariant 5): the
// owned-buffer counterpart to view.View. A Vector allocates exactly one
// PatchArray per local patch.
package parray

import "github.com/cpmech/patchgmg/view"

// PatchArray owns a contiguous buffer shaped ns[0]×…×ns[D-1]×ncomponents
// plus a uniform ghost ring of width numGhostCells on every spatial
// axis, and exposes it through a view.View.
type PatchArray struct {
	buf  []float64
	View *view.View
}

// New allocates a zeroed PatchArray for a patch with the given interior
// cell counts, ghost width, and number of trailing components.
func New(ns []int, numGhostCells, numComponents int) *PatchArray {
	n := numComponents
	for _, ni := range ns {
		n *= ni + 2*numGhostCells
	}
	buf := make([]float64, n)
	return &PatchArray{
		buf:  buf,
		View: view.New(buf, ns, numGhostCells, numComponents),
	}
}

// Clone returns a PatchArray with the same shape as o and an
// independent copy of its data.
func (o *PatchArray) Clone() *PatchArray {
	ns := make([]int, o.View.D)
	for i := range ns {
		ns[i] = o.View.End[i] - o.View.Start[i] + 1
	}
	c := New(ns, o.View.NumGhostCells, o.View.NumComponents)
	copy(c.buf, o.buf)
	return c
}

// Fill sets every entry, including ghost padding, to val.
func (o *PatchArray) Fill(val float64) {
	for i := range o.buf {
		o.buf[i] = val
	}
}
