// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ghost implements GhostFiller (§4.5): bringing every local
// patch's ghost ring up to date with its neighbors' interior data,
// dispatching per face on neighbor kind (normal/coarse/fine) and
// interpolating across refinement boundaries where the two sides
// differ in resolution.
package ghost

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/face"
	"github.com/cpmech/patchgmg/nbr"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/vector"
	"github.com/cpmech/patchgmg/view"
)

// Type selects which codimensions of the patch boundary get ghost-filled,
// per §4.5: sides only, sides plus 3-D edges, or sides plus edges plus
// corners. In 2-D there is no codimension strictly between a side
// (M=1) and a corner (M=0), so Edges behaves like Faces there; only
// Corners reaches the M=0 level.
type Type int

const (
	Faces Type = iota
	Edges
	Corners
)

// Filler is the MPI-backed GhostFiller of §4.5. It currently resolves
// every neighbor locally (same rank); a neighbor whose patch is not
// found in the local Domain is left unfilled, which is the documented
// stub for the non-blocking cross-rank wire protocol (§4.5 steps 1,2,4).
type Filler struct {
	Type Type
}

// New returns a Filler that ghost-fills down to the given codimension.
func New(t Type) *Filler {
	return &Filler{Type: t}
}

// levelsFor returns the face codimensions (M values) this Filler visits
// for a D-dimensional patch, per the Type semantics documented above.
func levelsFor(t Type, D int) []int {
	levels := []int{D - 1}
	if t >= Edges && D == 3 {
		levels = append(levels, 1)
	}
	if t >= Corners {
		levels = append(levels, 0)
	}
	return levels
}

// FillGhost brings every local patch's ghost ring in dom's Domain up to
// date from v's interior data, per §4.5. Idempotent with respect to
// repeated calls on an unchanged interior.
func (o *Filler) FillGhost(dom *domain.Domain, v *vector.Vector) {
	D := dom.D
	levels := levelsFor(o.Type, D)

	for i, pinfo := range dom.GetPatchInfoVector() {
		selfView := v.GetPatchView(i)
		for _, m := range levels {
			for _, f := range face.GetValues(D, m) {
				if !pinfo.HasNbr(f) {
					continue
				}
				kind, err := pinfo.GetNbrType(f)
				if err != nil {
					panic(err)
				}
				switch kind {
				case nbr.Normal:
					o.fillNormal(dom, v, pinfo, selfView, f)
				case nbr.Coarse:
					o.fillFromCoarse(dom, v, pinfo, selfView, f)
					o.fillLocalGhostsForCoarseNbr(pinfo, selfView, f)
				case nbr.Fine:
					o.fillFromFine(dom, v, pinfo, selfView, f)
					o.fillLocalGhostsForFineNbr(selfView, f)
				}
			}
		}
	}
}

// complement returns the axes of a D-dimensional patch not in fixed, in
// ascending order.
func complement(D int, fixed []int) []int {
	is := make([]bool, D)
	for _, a := range fixed {
		is[a] = true
	}
	var out []int
	for a := 0; a < D; a++ {
		if !is[a] {
			out = append(out, a)
		}
	}
	return out
}

// localNbrView resolves the neighbor patch named by id within dom,
// returning its View and PatchInfo, or ok=false if it is not owned by
// this rank (an off-rank ghost, left to the wire protocol).
func localNbrView(dom *domain.Domain, v *vector.Vector, id int) (*view.View, *patchinfo.Info, bool) {
	idx, ok := dom.LocalIndexOf(id)
	if !ok {
		return nil, nil, false
	}
	return v.GetPatchView(idx), dom.GetPatchInfo(idx), true
}

// fillNormal copies the neighbor's interior rows into self's ghost rows
// across face f, for every codimension (side, edge or corner) alike:
// the ghost cell at depth k beyond the boundary along each of f's fixed
// axes mirrors the neighbor's k-th interior cell along the same axes,
// with every free axis coordinate held identical (same resolution on
// both sides of a Normal interface).
func (o *Filler) fillNormal(dom *domain.Domain, v *vector.Vector, pinfo *patchinfo.Info, self *view.View, f face.Face) {
	info, err := pinfo.GetNormalNbrInfo(f)
	if err != nil {
		panic(err)
	}
	id, _, _ := info.GetNormalNbrInfo()
	nbrView, _, ok := localNbrView(dom, v, id)
	if !ok {
		return
	}

	fixedAxes, upper := f.FixedAxes()
	freeAxes := complement(self.D, fixedAxes)
	numGhostCells := self.NumGhostCells

	forEachGhostDepthCombo(fixedAxes, numGhostCells, func(depths []int) {
		selfFixed := make([]int, len(fixedAxes))
		nbrFixed := make([]int, len(fixedAxes))
		for j, axis := range fixedAxes {
			k := depths[j]
			if upper[j] {
				selfFixed[j] = self.End[axis] + k
				nbrFixed[j] = nbrView.Start[axis] + (k - 1)
			} else {
				selfFixed[j] = self.Start[axis] - k
				nbrFixed[j] = nbrView.End[axis] - (k - 1)
			}
		}
		forEachFreeBox(self, freeAxes, func(free []int) {
			selfCoord := assemble(self.D, fixedAxes, selfFixed, freeAxes, free)
			nbrCoord := assemble(self.D, fixedAxes, nbrFixed, freeAxes, free)
			for c := 0; c < self.NumComponents; c++ {
				self.Set(selfCoord, c, nbrView.At(nbrCoord, c))
			}
		})
	})
}

// fillFromCoarse implements the coarse-to-fine side interpolation
// stencil of §4.5/§8: this patch is the fine side of the interface,
// and its first ghost row is filled by interpolating the coarse
// neighbor's interior. Implemented for sides (M=D-1); edge/corner
// interfaces of kind Coarse fall back to a direct copy of the matching
// coarse cell, since the spec gives stencil weights only for the side
// case (see DESIGN.md). This is only half of the conservative
// interpolation: fillLocalGhostsForCoarseNbr contributes the other
// half from the fine patch's own interior (§4.5 step 5); neither alone
// is correct.
func (o *Filler) fillFromCoarse(dom *domain.Domain, v *vector.Vector, pinfo *patchinfo.Info, self *view.View, f face.Face) {
	info, err := pinfo.GetCoarseNbrInfo(f)
	if err != nil {
		panic(err)
	}
	id, _, orthOnCoarse, _ := info.GetCoarseNbrInfo()
	coarseView, _, ok := localNbrView(dom, v, id)
	if !ok {
		return
	}

	if f.FaceDim() != self.D-1 {
		fillNormalLikeAcrossLevels(self, coarseView, f)
		return
	}

	axis := f.GetAxisIndex()
	upper := !f.IsLowerOnAxis()
	freeAxes := complement(self.D, []int{axis})

	// orthOnCoarse picks which half of the coarse face (along each free
	// axis) this fine patch covers, per §3.2 invariant 2.
	orthUpper := orthantUpperFlags(orthOnCoarse.GetIndex(), len(freeAxes))

	forEachFreeBox(self, freeAxes, func(free []int) {
		fineGhost := make([]int, self.D)
		if upper {
			fineGhost[axis] = self.End[axis] + 1
		} else {
			fineGhost[axis] = self.Start[axis] - 1
		}
		for j, a := range freeAxes {
			fineGhost[a] = free[j]
		}

		coarseCoord := make([]int, self.D)
		if upper {
			coarseCoord[axis] = coarseView.Start[axis]
		} else {
			coarseCoord[axis] = coarseView.End[axis]
		}
		for j, a := range freeAxes {
			half := coarseHalfIndex(free[j], orthUpper[j], coarseView.End[a]-coarseView.Start[a]+1)
			coarseCoord[a] = coarseView.Start[a] + half
		}

		for c := 0; c < self.NumComponents; c++ {
			self.Set(fineGhost, c, twoThirds*coarseView.At(coarseCoord, c))
		}
	})
}

// fillFromFine implements the fine-to-coarse side averaging stencil of
// §4.5/§8: this patch is the coarse side, and each of the 2^(D-1) fine
// neighbors contributes two-thirds of its boundary interior value into
// the single matching coarse ghost cell. fillLocalGhostsForFineNbr
// contributes the complementary -1/3 term from this patch's own
// interior (§4.5 step 5).
func (o *Filler) fillFromFine(dom *domain.Domain, v *vector.Vector, pinfo *patchinfo.Info, self *view.View, f face.Face) {
	info, err := pinfo.GetFineNbrInfo(f)
	if err != nil {
		panic(err)
	}
	ids := info.NbrIDs()

	if f.FaceDim() != self.D-1 {
		for _, id := range ids {
			fineView, _, ok := localNbrView(dom, v, id)
			if !ok {
				continue
			}
			fillNormalLikeAcrossLevels(self, fineView, f.Opposite())
		}
		return
	}

	axis := f.GetAxisIndex()
	upper := !f.IsLowerOnAxis()
	freeAxes := complement(self.D, []int{axis})

	// Reset the ghost row so the fine contributions below are summed
	// from zero on every call.
	ghostAxisCoord := self.Start[axis] - 1
	if upper {
		ghostAxisCoord = self.End[axis] + 1
	}
	forEachFreeBox(self, freeAxes, func(free []int) {
		g := assemble(self.D, []int{axis}, []int{ghostAxisCoord}, freeAxes, free)
		for c := 0; c < self.NumComponents; c++ {
			self.Set(g, c, 0)
		}
	})

	for childIdx, id := range ids {
		fineView, _, ok := localNbrView(dom, v, id)
		if !ok {
			continue
		}
		orthUpper := orthantUpperFlags(childIdx, len(freeAxes))

		coarseGhost := make([]int, self.D)
		if upper {
			coarseGhost[axis] = self.End[axis] + 1
		} else {
			coarseGhost[axis] = self.Start[axis] - 1
		}

		fineView.LoopOverInteriorIndexes(func(fineCoord []int) {
			onBoundary := true
			if upper {
				onBoundary = fineCoord[axis] == fineView.Start[axis]
			} else {
				onBoundary = fineCoord[axis] == fineView.End[axis]
			}
			if !onBoundary {
				return
			}
			coarseCoord := append([]int(nil), coarseGhost...)
			for j, a := range freeAxes {
				half := fineCoord[a] - fineView.Start[a]
				coarseCoord[a] = self.Start[a] + coarseHalfIndex(half, orthUpper[j], self.End[a]-self.Start[a]+1)
			}
			for c := 0; c < self.NumComponents; c++ {
				self.Set(coarseCoord, c, self.At(coarseCoord, c)+twoThirds*fineView.At(fineCoord, c))
			}
		})
	}
}

const twoThirds = 2.0 / 3.0
const oneThird = 1.0 / 3.0

// fillLocalGhostsForCoarseNbr implements the §4.5 step-5 local ghost
// correction for a Coarse-kind side interface, using only this patch's
// own interior slab: the boundary-adjacent interior row contributes
// +2/3 of its own value into the matching ghost cell and -1/3 into the
// once-removed ghost cell along each free (tangential) axis, per
// ThunderEgg's BiLinearGhostFiller::FillLocalGhostsForCoarseNbr. This
// is independent of fillFromCoarse's cross-patch contribution; the two
// together produce the conservative bi-linear interpolation §4.5
// documents, and neither alone is correct (see §8 scenario 3).
//
// Only defined for sides (M=D-1), matching the restriction already
// applied by fillFromCoarse. For D==3 (two free axes), the -1/3
// correction is applied independently along each free axis rather than
// split between them, generalizing ThunderEgg's 2-D-only stencil the
// same way fillFromCoarse already generalizes the coarse-index mapping
// per free axis (see DESIGN.md).
func (o *Filler) fillLocalGhostsForCoarseNbr(pinfo *patchinfo.Info, self *view.View, f face.Face) {
	if f.FaceDim() != self.D-1 {
		return
	}
	info, err := pinfo.GetCoarseNbrInfo(f)
	if err != nil {
		panic(err)
	}
	_, _, orthOnCoarse, _ := info.GetCoarseNbrInfo()

	axis := f.GetAxisIndex()
	upper := !f.IsLowerOnAxis()
	freeAxes := complement(self.D, []int{axis})
	orthUpper := orthantUpperFlags(orthOnCoarse.GetIndex(), len(freeAxes))

	ghostAxisCoord, boundaryAxisCoord := self.Start[axis]-1, self.Start[axis]
	if upper {
		ghostAxisCoord, boundaryAxisCoord = self.End[axis]+1, self.End[axis]
	}

	forEachFreeBox(self, freeAxes, func(free []int) {
		boundaryCoord := assemble(self.D, []int{axis}, []int{boundaryAxisCoord}, freeAxes, free)
		selfGhost := assemble(self.D, []int{axis}, []int{ghostAxisCoord}, freeAxes, free)

		for c := 0; c < self.NumComponents; c++ {
			self.Set(selfGhost, c, self.At(selfGhost, c)+twoThirds*self.At(boundaryCoord, c))
		}

		for j, a := range freeAxes {
			span := self.End[a] - self.Start[a] + 1
			offset := 0
			if orthUpper[j] {
				offset = span
			}
			localIdx := free[j] - self.Start[a]
			neighborFree := append([]int(nil), free...)
			if (localIdx+offset)%2 == 0 {
				neighborFree[j] = free[j] + 1
			} else {
				neighborFree[j] = free[j] - 1
			}
			if neighborFree[j] < self.Start[a] || neighborFree[j] > self.End[a] {
				continue
			}
			neighborGhost := assemble(self.D, []int{axis}, []int{ghostAxisCoord}, freeAxes, neighborFree)
			for c := 0; c < self.NumComponents; c++ {
				self.Set(neighborGhost, c, self.At(neighborGhost, c)-oneThird*self.At(boundaryCoord, c))
			}
		}
	})
}

// fillLocalGhostsForFineNbr implements the §4.5 step-5 local ghost
// correction for a Fine-kind side interface: each ghost cell gets -1/3
// of this patch's own matching boundary interior value, per
// ThunderEgg's BiLinearGhostFiller::FillLocalGhostsForFineNbr. Combined
// with fillFromFine's +2/3-per-fine-neighbor contribution, per §4.5
// step 5.
func (o *Filler) fillLocalGhostsForFineNbr(self *view.View, f face.Face) {
	if f.FaceDim() != self.D-1 {
		return
	}
	axis := f.GetAxisIndex()
	upper := !f.IsLowerOnAxis()
	freeAxes := complement(self.D, []int{axis})

	ghostAxisCoord, boundaryAxisCoord := self.Start[axis]-1, self.Start[axis]
	if upper {
		ghostAxisCoord, boundaryAxisCoord = self.End[axis]+1, self.End[axis]
	}

	forEachFreeBox(self, freeAxes, func(free []int) {
		boundaryCoord := assemble(self.D, []int{axis}, []int{boundaryAxisCoord}, freeAxes, free)
		selfGhost := assemble(self.D, []int{axis}, []int{ghostAxisCoord}, freeAxes, free)
		for c := 0; c < self.NumComponents; c++ {
			self.Set(selfGhost, c, self.At(selfGhost, c)-oneThird*self.At(boundaryCoord, c))
		}
	})
}

// fillNormalLikeAcrossLevels is the documented simplification for
// edge/corner interfaces of kind Coarse/Fine (see DESIGN.md): it
// overwrites each ghost cell with the other patch's boundary-layer cell
// at the same free-axis index rather than applying an interpolation
// stencil, since §4.5 only specifies stencil weights for the side case.
// When several fine neighbors share the interface, the last one
// processed supplies the values.
func fillNormalLikeAcrossLevels(self, other *view.View, f face.Face) {
	fixedAxes, upper := f.FixedAxes()
	freeAxes := complement(self.D, fixedAxes)
	forEachFreeBox(self, freeAxes, func(free []int) {
		selfFixed := make([]int, len(fixedAxes))
		otherFixed := make([]int, len(fixedAxes))
		for j, axis := range fixedAxes {
			if upper[j] {
				selfFixed[j] = self.End[axis] + 1
				otherFixed[j] = other.Start[axis]
			} else {
				selfFixed[j] = self.Start[axis] - 1
				otherFixed[j] = other.End[axis]
			}
		}
		selfCoord := assemble(self.D, fixedAxes, selfFixed, freeAxes, free)
		otherCoord := assemble(self.D, fixedAxes, otherFixed, freeAxes, free)
		for c := 0; c < self.NumComponents; c++ {
			self.Set(selfCoord, c, other.At(otherCoord, c))
		}
	})
}

// orthantUpperFlags decodes the low numFreeAxes bits of idx into
// per-axis lower(false)/upper(true) flags, matching orthant.Orthant's
// bit layout (see orthant.GetValues).
func orthantUpperFlags(idx, numFreeAxes int) []bool {
	out := make([]bool, numFreeAxes)
	for i := 0; i < numFreeAxes; i++ {
		out[i] = (idx>>uint(i))&1 == 1
	}
	return out
}

// coarseHalfIndex maps a fine free-axis offset into the coarse patch's
// matching index: two fine cells per coarse cell, offset into the upper
// half of the coarse face when orthUpper is set.
func coarseHalfIndex(fineFreeCoord int, orthUpper bool, coarseSpan int) int {
	half := fineFreeCoord / 2
	if orthUpper {
		half += coarseSpan / 2
	}
	if half >= coarseSpan {
		half = coarseSpan - 1
	}
	return half
}

// forEachGhostDepthCombo calls fn once per combination of ghost depths
// (1..numGhostCells) across the given fixed axes, covering every
// corner/edge/side ghost cell simultaneously ghosted on more than one
// axis.
func forEachGhostDepthCombo(fixedAxes []int, numGhostCells int, fn func(depths []int)) {
	n := len(fixedAxes)
	depths := make([]int, n)
	for i := range depths {
		depths[i] = 1
	}
	for {
		fn(append([]int(nil), depths...))
		i := n - 1
		for i >= 0 {
			depths[i]++
			if depths[i] <= numGhostCells {
				break
			}
			depths[i] = 1
			i--
		}
		if i < 0 {
			return
		}
	}
}

// forEachFreeBox calls fn once per coordinate of the interior box
// restricted to the given free axes (the axes not fixed by the face
// being processed).
func forEachFreeBox(v *view.View, freeAxes []int, fn func(free []int)) {
	n := len(freeAxes)
	if n == 0 {
		fn(nil)
		return
	}
	lo := make([]int, n)
	hi := make([]int, n)
	for i, a := range freeAxes {
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

// assemble merges fixed-axis coordinates and free-axis coordinates back
// into a full D-dimensional coordinate.
func assemble(D int, fixedAxes, fixedVals, freeAxes, freeVals []int) []int {
	out := make([]int, D)
	for j, a := range fixedAxes {
		out[a] = fixedVals[j]
	}
	for j, a := range freeAxes {
		out[a] = freeVals[j]
	}
	return out
}
