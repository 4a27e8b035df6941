// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orthant implements Orthant<D>: one of the 2^D octants/quadrants
// of a D-dimensional hypercube, used to locate a fine patch relative to
// its coarse parent or the fine half of a coarse-fine interface relative
// to a side.
package orthant

import (
	"fmt"

	"github.com/cpmech/patchgmg/face"
	"github.com/cpmech/patchgmg/gmgerr"
)

// Orthant identifies one of 2^D corners of a D-dimensional hypercube by
// a bit mask over its D axes (bit i set means "upper half on axis i").
// D == 0 represents the degenerate "null" orthant.
type Orthant struct {
	D   int
	idx int
}

// Null returns the canonical inhabitant of the degenerate D=0 case.
func Null() Orthant { return Orthant{D: 0, idx: 0} }

// New returns the orthant of dimension D with the given canonical index
// (0..2^D-1).
func New(D, idx int) Orthant {
	if D < 0 || D > 3 {
		panic(gmgerr.NewRuntimeError("orthant: D must be in [0,3]; got %d", D))
	}
	if idx < 0 || idx >= (1<<uint(D)) {
		panic(gmgerr.NewRuntimeError("orthant: idx must be in [0,%d); got %d", 1<<uint(D), idx))
	}
	return Orthant{D: D, idx: idx}
}

// NumberOf returns 2^D, the number of orthants of a D-dimensional
// hypercube.
func NumberOf(D int) int { return 1 << uint(D) }

// GetValues returns all orthants of a D-dimensional hypercube in
// ascending index order.
func GetValues(D int) []Orthant {
	out := make([]Orthant, NumberOf(D))
	for i := range out {
		out[i] = Orthant{D: D, idx: i}
	}
	return out
}

// GetIndex returns the canonical 0..2^D-1 index of this orthant.
func (o Orthant) GetIndex() int { return o.idx }

// IsNull reports whether this is the degenerate D=0 orthant.
func (o Orthant) IsNull() bool { return o.D == 0 }

// IsLowerOnAxis reports whether this orthant occupies the lower half of
// axis.
func (o Orthant) IsLowerOnAxis(axis int) bool {
	o.checkAxis(axis)
	return (o.idx>>uint(axis))&1 == 0
}

// GetNbrOnSide returns the orthant adjacent to o across side, within the
// same parent (flips the lower/upper bit on side's axis). side must be a
// side (codimension 1) of a D-dimensional hypercube.
func (o Orthant) GetNbrOnSide(side face.Face) Orthant {
	if side.Dim() != o.D || side.FaceDim() != o.D-1 {
		panic(gmgerr.NewRuntimeError("GetNbrOnSide: side must be a side of the same dimension D=%d", o.D))
	}
	axis := side.GetAxisIndex()
	return Orthant{D: o.D, idx: o.idx ^ (1 << uint(axis))}
}

// GetInteriorSides returns the D sides of this orthant that face the
// center of its parent (and are thus shared with sibling orthants).
func (o Orthant) GetInteriorSides() []face.Face {
	out := make([]face.Face, o.D)
	for axis := 0; axis < o.D; axis++ {
		// interior side faces toward the parent's center: if this
		// orthant is on the lower half, the interior side is the
		// upper side of that axis, and vice versa.
		out[axis] = face.NewSide(o.D, axis, o.IsLowerOnAxis(axis))
	}
	return out
}

// GetExteriorSides returns the D sides of this orthant that face the
// outside of its parent.
func (o Orthant) GetExteriorSides() []face.Face {
	out := make([]face.Face, o.D)
	for axis := 0; axis < o.D; axis++ {
		out[axis] = face.NewSide(o.D, axis, !o.IsLowerOnAxis(axis))
	}
	return out
}

// CollapseOnAxis drops axis from o, producing the (D-1)-dimensional
// orthant obtained by projecting out that axis. Used to derive the
// orthant of a fine patch on a coarse face from its full orthant on the
// coarse parent.
func (o Orthant) CollapseOnAxis(axis int) Orthant {
	o.checkAxis(axis)
	lowMask := (1 << uint(axis)) - 1
	low := o.idx & lowMask
	high := (o.idx >> uint(axis+1)) << uint(axis)
	return Orthant{D: o.D - 1, idx: low | high}
}

// Tag returns the canonical string tag for this orthant: the same
// abbreviations as face.Face corner tags ("SW", "BNE", …), with the
// special case "LOWER"/"UPPER" for D=1.
func (o Orthant) Tag() string {
	if o.D == 0 {
		return "NULL"
	}
	if o.D == 1 {
		if o.IsLowerOnAxis(0) {
			return "LOWER"
		}
		return "UPPER"
	}
	lowerAbbrev := [3]string{"W", "S", "B"}
	upperAbbrev := [3]string{"E", "N", "T"}
	tag := ""
	for axis := o.D - 1; axis >= 0; axis-- {
		if o.IsLowerOnAxis(axis) {
			tag += lowerAbbrev[axis]
		} else {
			tag += upperAbbrev[axis]
		}
	}
	return tag
}

func (o Orthant) String() string {
	return fmt.Sprintf("Orthant<%d>(%s)", o.D, o.Tag())
}

func (o Orthant) checkAxis(axis int) {
	if axis < 0 || axis >= o.D {
		panic(gmgerr.NewRuntimeError("orthant: axis must be in [0,%d); got %d", o.D, axis))
	}
}
