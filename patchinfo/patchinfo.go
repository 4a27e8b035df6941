// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patchinfo holds PatchInfo, the per-patch metadata record (§4.2
// of the spec): identity, refinement-tree links, geometry, and one
// neighbor descriptor slot per face of every codimension 0..D-1. A
// PatchInfo carries no cell values; it is pure topology.
package patchinfo

import (
	"github.com/cpmech/patchgmg/face"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/nbr"
	"github.com/cpmech/patchgmg/orthant"
)

// Info is the per-patch metadata record described in §3.1/§4.2.
type Info struct {
	D int // spatial dimension, 2 or 3

	ID          int
	LocalIndex  int
	GlobalIndex int

	RefineLevel int

	ParentID     int // -1 if this patch has no parent
	ParentRank   int
	OrthOnParent orthant.Orthant

	ChildIDs   []int // length 2^D; -1 where no child
	ChildRanks []int // length 2^D

	Rank int

	Ns       []int     // number of cells per axis, length D
	Starts   []float64 // origin, length D
	Spacings []float64 // cell spacing per axis, length D

	NumGhostCells int

	// nbrs holds, per face-slot (see slotOf), the neighbor descriptor
	// for that face. A missing entry means "no neighbor" (a physical
	// boundary).
	nbrs map[int]nbr.Info
}

// New returns a PatchInfo for a D-dimensional patch with no neighbors,
// no parent and no children set.
func New(D, id int) *Info {
	n := 1 << uint(D)
	childIDs := make([]int, n)
	childRanks := make([]int, n)
	for i := range childIDs {
		childIDs[i] = -1
	}
	return &Info{
		D:            D,
		ID:           id,
		ParentID:     -1,
		OrthOnParent: orthant.Null(),
		ChildIDs:     childIDs,
		ChildRanks:   childRanks,
		Ns:           make([]int, D),
		Starts:       make([]float64, D),
		Spacings:     make([]float64, D),
		nbrs:         make(map[int]nbr.Info),
	}
}

// slotOf returns the unique per-face slot index packing every face of
// every codimension 0..D-1 into a single flat array, per §4.2's "Slots
// for NbrInfo on every face of every dimension 0..D-1 are packed into
// one array of length Σ_{M<D} faces(D,M)".
func (o *Info) slotOf(f face.Face) int {
	if f.Dim() != o.D {
		panic(gmgerr.NewRuntimeError("patchinfo: face dimension %d does not match patch dimension %d", f.Dim(), o.D))
	}
	offset := 0
	for m := 0; m < f.FaceDim(); m++ {
		offset += face.NumberOf(o.D, m)
	}
	return offset + f.GetIndex()
}

// HasNbr reports whether a neighbor descriptor is set on face f.
func (o *Info) HasNbr(f face.Face) bool {
	_, ok := o.nbrs[o.slotOf(f)]
	return ok
}

// GetNbrType returns the neighbor kind on face f, or a RuntimeError if
// no neighbor is set there.
func (o *Info) GetNbrType(f face.Face) (nbr.Type, error) {
	info, ok := o.nbrs[o.slotOf(f)]
	if !ok {
		return 0, gmgerr.NewRuntimeError("patchinfo: patch %d has no neighbor on face %s", o.ID, f.Tag())
	}
	return info.Kind(), nil
}

// SetNbrInfo installs info as the neighbor descriptor on face f, taking
// ownership of it. Pass nil to clear a face back to "no neighbor"
// (physical boundary).
func (o *Info) SetNbrInfo(f face.Face, info *nbr.Info) {
	slot := o.slotOf(f)
	if info == nil {
		delete(o.nbrs, slot)
		return
	}
	o.nbrs[slot] = *info
}

// GetNormalNbrInfo returns the Normal descriptor on face f, failing with
// a RuntimeError if absent or of the wrong kind.
func (o *Info) GetNormalNbrInfo(f face.Face) (nbr.Info, error) {
	return o.getTyped(f, nbr.Normal)
}

// GetCoarseNbrInfo returns the Coarse descriptor on face f, failing with
// a RuntimeError if absent or of the wrong kind.
func (o *Info) GetCoarseNbrInfo(f face.Face) (nbr.Info, error) {
	return o.getTyped(f, nbr.Coarse)
}

// GetFineNbrInfo returns the Fine descriptor on face f, failing with a
// RuntimeError if absent or of the wrong kind.
func (o *Info) GetFineNbrInfo(f face.Face) (nbr.Info, error) {
	return o.getTyped(f, nbr.Fine)
}

func (o *Info) getTyped(f face.Face, want nbr.Type) (nbr.Info, error) {
	info, ok := o.nbrs[o.slotOf(f)]
	if !ok {
		return nbr.Info{}, gmgerr.NewRuntimeError("patchinfo: patch %d has no neighbor on face %s", o.ID, f.Tag())
	}
	if info.Kind() != want {
		return nbr.Info{}, gmgerr.NewRuntimeError("patchinfo: patch %d face %s is %s, not %s", o.ID, f.Tag(), info.Kind(), want)
	}
	return info, nil
}

// EachNbr calls fn with every (face, descriptor) pair set on this
// patch, across every codimension 0..D-1, in slot order.
func (o *Info) EachNbr(fn func(f face.Face, info nbr.Info)) {
	for m := 0; m < o.D; m++ {
		for _, f := range face.GetValues(o.D, m) {
			if info, ok := o.nbrs[o.slotOf(f)]; ok {
				fn(f, info)
			}
		}
	}
}

// HasCoarseParent reports whether this patch has a parent one level
// coarser than itself.
func (o *Info) HasCoarseParent() bool {
	return o.ParentID != -1
}

// Clone returns a deep copy of o, including independent neighbor
// descriptor clones.
func (o *Info) Clone() *Info {
	c := *o
	c.ChildIDs = append([]int(nil), o.ChildIDs...)
	c.ChildRanks = append([]int(nil), o.ChildRanks...)
	c.Ns = append([]int(nil), o.Ns...)
	c.Starts = append([]float64(nil), o.Starts...)
	c.Spacings = append([]float64(nil), o.Spacings...)
	c.nbrs = make(map[int]nbr.Info, len(o.nbrs))
	for k, v := range o.nbrs {
		c.nbrs[k] = v.Clone()
	}
	return &c
}

// Less orders patches by id, for use in sorted containers (e.g. a
// Domain's patch list, which must be stable across identical runs).
func (o *Info) Less(other *Info) bool {
	return o.ID < other.ID
}

// NumCells returns the total number of interior cells in this patch
// (the product of Ns).
func (o *Info) NumCells() int {
	n := 1
	for _, ni := range o.Ns {
		n *= ni
	}
	return n
}
