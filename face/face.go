// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package face implements the face algebra of a D-dimensional hypercube:
// sides (codimension 1), edges (codimension 2, only meaningful for D=3)
// and corners (codimension D). A Face is addressed by the dimension D of
// the patch it belongs to and the dimension M of the face itself; unlike
// the C++ original, D and M are ordinary runtime fields rather than
// compile-time template parameters (see DESIGN.md for the rationale),
// but every operation still panics via gmgerr on a combination that is
// not geometrically meaningful (M<0, M>=D, D not in {1,2,3}).
package face

import (
	"fmt"
	"sort"

	"github.com/cpmech/patchgmg/gmgerr"
)

// Face is an M-dimensional sub-feature of a D-dimensional hypercube: a
// side when M == D-1, an edge when M == 1 and D == 3, a corner when
// M == 0.
type Face struct {
	D, M       int
	fixedAxes  []int  // axes held constant on this face, ascending
	upperFlags []bool // parallel to fixedAxes; true == upper/"+" side
	idx        int
}

var axisLowerFull = [3]string{"WEST", "SOUTH", "BOTTOM"}
var axisUpperFull = [3]string{"EAST", "NORTH", "TOP"}
var axisLowerAbbrev = [3]string{"W", "S", "B"}
var axisUpperAbbrev = [3]string{"E", "N", "T"}

// NumberOf returns 2^(D-M)*C(D,M), the number of M-dimensional faces of
// a D-dimensional hypercube.
func NumberOf(D, M int) int {
	validateDM(D, M)
	return (1 << uint(D-M)) * binomial(D, M)
}

// GetValues returns all M-dimensional faces of a D-dimensional hypercube
// in canonical order (the order used for getIndex()).
func GetValues(D, M int) []Face {
	validateDM(D, M)
	numFixed := D - M
	var faces []Face
	idx := 0
	for _, axes := range combinations(D, numFixed) {
		for pattern := 0; pattern < (1 << uint(numFixed)); pattern++ {
			upper := make([]bool, numFixed)
			for i := 0; i < numFixed; i++ {
				upper[i] = (pattern>>uint(i))&1 == 1
			}
			faces = append(faces, Face{
				D: D, M: M,
				fixedAxes:  append([]int(nil), axes...),
				upperFlags: upper,
				idx:        idx,
			})
			idx++
		}
	}
	return faces
}

// GetValuesOnSide returns the sub-faces of codimension D-M that lie on
// the given side (i.e. whose fixed-axis set contains side's axis with
// the matching lower/upper flag).
func GetValuesOnSide(D, M int, side Face) []Face {
	if side.M != D-1 {
		panic(gmgerr.NewRuntimeError("GetValuesOnSide: side argument must have M=D-1, got D=%d M=%d", side.D, side.M))
	}
	axis := side.fixedAxes[0]
	upper := side.upperFlags[0]
	var out []Face
	for _, f := range GetValues(D, M) {
		for i, a := range f.fixedAxes {
			if a == axis && f.upperFlags[i] == upper {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// NewSide returns the side of a D-dimensional hypercube normal to axis,
// on the lower (upper=false) or upper (upper=true) end.
func NewSide(D, axis int, upper bool) Face {
	for _, f := range GetValues(D, D-1) {
		if f.fixedAxes[0] == axis && f.upperFlags[0] == upper {
			return f
		}
	}
	panic(gmgerr.NewRuntimeError("NewSide: no such side for D=%d axis=%d", D, axis))
}

// GetIndex returns the canonical 0..NumberOf(D,M)-1 index of this face.
func (f Face) GetIndex() int { return f.idx }

// Dim returns D, the dimension of the hypercube this face belongs to.
func (f Face) Dim() int { return f.D }

// FaceDim returns M, the dimension of this face itself.
func (f Face) FaceDim() int { return f.M }

// Opposite returns the reflection of f through the hypercube's center:
// every fixed axis has its lower/upper flag inverted.
func (f Face) Opposite() Face {
	upper := make([]bool, len(f.upperFlags))
	for i, u := range f.upperFlags {
		upper[i] = !u
	}
	return f.findSelf(f.fixedAxes, upper)
}

// GetAxisIndex returns the axis this side is normal to. Valid only when
// M == D-1 (a side); panics otherwise.
func (f Face) GetAxisIndex() int {
	if f.M != f.D-1 {
		panic(gmgerr.NewRuntimeError("GetAxisIndex: face is not a side (D=%d M=%d)", f.D, f.M))
	}
	return f.fixedAxes[0]
}

// IsLowerOnAxis reports whether this side is on the lower end of its
// normal axis. Valid only when M == D-1.
func (f Face) IsLowerOnAxis() bool {
	if f.M != f.D-1 {
		panic(gmgerr.NewRuntimeError("IsLowerOnAxis: face is not a side (D=%d M=%d)", f.D, f.M))
	}
	return !f.upperFlags[0]
}

// FixedAxes returns the axes held constant on this face and whether each
// is pinned to its upper end, both in ascending-axis order. Callers must
// not mutate the returned slices.
func (f Face) FixedAxes() (axes []int, upper []bool) {
	return f.fixedAxes, f.upperFlags
}

// Tag returns the canonical string tag for this face, as used on the
// wire (§6 of the spec): full words for sides ("WEST", "NORTH", …) and
// letter abbreviations built high-axis-first for edges/corners ("BSW",
// "SW", …).
func (f Face) Tag() string {
	if len(f.fixedAxes) == 1 {
		axis := f.fixedAxes[0]
		if f.upperFlags[0] {
			return axisUpperFull[axis]
		}
		return axisLowerFull[axis]
	}
	tag := ""
	for axis := f.D - 1; axis >= 0; axis-- {
		for i, a := range f.fixedAxes {
			if a == axis {
				if f.upperFlags[i] {
					tag += axisUpperAbbrev[axis]
				} else {
					tag += axisLowerAbbrev[axis]
				}
			}
		}
	}
	return tag
}

// String implements fmt.Stringer for debug output.
func (f Face) String() string {
	return fmt.Sprintf("Face<%d,%d>(%s)", f.D, f.M, f.Tag())
}

func (f Face) findSelf(axes []int, upper []bool) Face {
	for _, g := range GetValues(f.D, f.M) {
		if sameFixed(g.fixedAxes, g.upperFlags, axes, upper) {
			return g
		}
	}
	panic(gmgerr.NewRuntimeError("face: no matching canonical face for D=%d M=%d", f.D, f.M))
}

func sameFixed(a1 []int, u1 []bool, a2 []int, u2 []bool) bool {
	if len(a1) != len(a2) {
		return false
	}
	for i := range a1 {
		if a1[i] != a2[i] || u1[i] != u2[i] {
			return false
		}
	}
	return true
}

func validateDM(D, M int) {
	if D < 1 || D > 3 {
		panic(gmgerr.NewRuntimeError("face: D must be 1, 2 or 3; got %d", D))
	}
	if M < 0 || M >= D {
		panic(gmgerr.NewRuntimeError("face: M must be in [0,%d); got %d", D, M))
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	num, den := 1, 1
	for i := 0; i < k; i++ {
		num *= n - i
		den *= i + 1
	}
	return num / den
}

// combinations returns all k-element subsets of {0,...,n-1} in
// ascending lexicographic order.
func combinations(n, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		c := append([]int(nil), idx...)
		out = append(out, c)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	sort.Slice(out, func(i, j int) bool {
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}
