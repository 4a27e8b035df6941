// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/face"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/ilc"
	"github.com/cpmech/patchgmg/nbr"
	"github.com/cpmech/patchgmg/orthant"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/patchsolver"
	"github.com/cpmech/patchgmg/vector"
)

// threeLevelHierarchy builds finest (n cells/axis), mid (n/2) and
// coarsest (n/4) Domains, each a single square patch, chained by
// whole-patch (non-AMR) coarsening as onePatchPair does, and returns
// the finest Level of a fully linked three-level hierarchy.
func threeLevelHierarchy(n int) (finest *Level, finestDomain *domain.Domain) {
	mkPatch := func(id, ns int) *patchinfo.Info {
		p := patchinfo.New(2, id)
		p.Ns[0], p.Ns[1] = ns, ns
		p.Spacings[0], p.Spacings[1] = 1.0/float64(ns), 1.0/float64(ns)
		return p
	}

	coarsePatch := mkPatch(1, n/4)
	coarseDomain := domain.New(2, 2, comm.New(), []*patchinfo.Info{coarsePatch}, 1, 1)

	midPatch := mkPatch(2, n/2)
	midPatch.ParentID, midPatch.ParentRank, midPatch.OrthOnParent = 1, 0, orthant.New(2, 0)
	midDomain := domain.New(2, 1, comm.New(), []*patchinfo.Info{midPatch}, 1, 1)

	finePatch := mkPatch(3, n)
	finePatch.ParentID, finePatch.ParentRank, finePatch.OrthOnParent = 2, 0, orthant.New(2, 0)
	finestDomain = domain.New(2, 0, comm.New(), []*patchinfo.Info{finePatch}, 1, 1)

	filler := ghost.New(ghost.Faces)
	op := patchop.NewStar()
	smoother := patchsolver.NewKrylov(op, patchsolver.CG, 50, 1e-10, true)

	coarsestLevel := NewLevel(coarseDomain, filler, op, smoother)
	midLevel := NewLevel(midDomain, filler, op, smoother)
	ilcMid := ilc.New(midDomain, coarseDomain)
	midLevel.SetCoarser(coarsestLevel,
		NewMPIRestrictor(ilcMid, midDomain, coarseDomain, NewLinearRestrictor(false)),
		NewMPIInterpolator(ilcMid, midDomain, NewDirectInterpolator()))

	fineLevel := NewLevel(finestDomain, filler, op, smoother)
	ilcFine := ilc.New(finestDomain, midDomain)
	fineLevel.SetCoarser(midLevel,
		NewMPIRestrictor(ilcFine, finestDomain, midDomain, NewLinearRestrictor(false)),
		NewMPIInterpolator(ilcFine, finestDomain, NewDirectInterpolator()))

	return fineLevel, finestDomain
}

// quadtreeHierarchy builds a genuine two-level AMR hierarchy: the finest
// Domain holds four sibling patches (SW, SE, NW, NE) occupying the four
// orthants of a single coarse parent C, glued to each other by Normal
// neighbor descriptors on their shared interior faces (a real quadtree,
// unlike threeLevelHierarchy's whole-patch single-child coarsening), plus
// a fifth patch U at half their resolution bordering the east edge of
// SE/NE, linked to its own coarse parent C2. U's west face carries a
// genuine nbr.Fine descriptor (SE, NE as its two fine neighbors) and
// SE/NE each carry a nbr.Coarse descriptor back to U — the coarse/fine
// refinement-boundary ghost coupling that §2 calls the principal source
// of design complexity, and that ghost.FillGhost's coarse/fine branches
// (§4.5 step 5) must get right for a V-cycle here to converge.
func quadtreeHierarchy(ns int) (finest *Level, finestDomain *domain.Domain) {
	mkPatch := func(id, n int) *patchinfo.Info {
		p := patchinfo.New(2, id)
		p.Ns[0], p.Ns[1] = n, n
		p.Spacings[0], p.Spacings[1] = 1.0/float64(n), 1.0/float64(n)
		return p
	}

	c := mkPatch(1, ns)
	c2 := mkPatch(2, ns/2)
	coarseDomain := domain.New(2, 1, comm.New(), []*patchinfo.Info{c, c2}, 2, 1)

	sw := mkPatch(10, ns)
	sw.ParentID, sw.ParentRank, sw.OrthOnParent = 1, 0, orthant.New(2, 0)
	se := mkPatch(11, ns)
	se.ParentID, se.ParentRank, se.OrthOnParent = 1, 0, orthant.New(2, 1)
	nw := mkPatch(12, ns)
	nw.ParentID, nw.ParentRank, nw.OrthOnParent = 1, 0, orthant.New(2, 2)
	ne := mkPatch(13, ns)
	ne.ParentID, ne.ParentRank, ne.OrthOnParent = 1, 0, orthant.New(2, 3)
	u := mkPatch(14, ns/2)
	u.ParentID, u.ParentRank, u.OrthOnParent = 2, 0, orthant.New(2, 0)

	west := face.NewSide(2, 0, false)
	east := face.NewSide(2, 0, true)
	south := face.NewSide(2, 1, false)
	north := face.NewSide(2, 1, true)

	swEast := nbr.NewNormal(1, 11, 0)
	sw.SetNbrInfo(east, &swEast)
	seWest := nbr.NewNormal(1, 10, 0)
	se.SetNbrInfo(west, &seWest)
	nwEast := nbr.NewNormal(1, 13, 0)
	nw.SetNbrInfo(east, &nwEast)
	neWest := nbr.NewNormal(1, 12, 0)
	ne.SetNbrInfo(west, &neWest)
	swNorth := nbr.NewNormal(1, 12, 0)
	sw.SetNbrInfo(north, &swNorth)
	nwSouth := nbr.NewNormal(1, 10, 0)
	nw.SetNbrInfo(south, &nwSouth)
	seNorth := nbr.NewNormal(1, 13, 0)
	se.SetNbrInfo(north, &seNorth)
	neSouth := nbr.NewNormal(1, 11, 0)
	ne.SetNbrInfo(south, &neSouth)

	uFine := nbr.NewFine(1, []int{11, 13}, []int{0, 0})
	u.SetNbrInfo(west, &uFine)
	seCoarse := nbr.NewCoarse(1, 14, 0, orthant.New(1, 0))
	se.SetNbrInfo(east, &seCoarse)
	neCoarse := nbr.NewCoarse(1, 14, 0, orthant.New(1, 1))
	ne.SetNbrInfo(east, &neCoarse)

	finestDomain = domain.New(2, 0, comm.New(), []*patchinfo.Info{sw, se, nw, ne, u}, 5, 1)

	filler := ghost.New(ghost.Faces)
	op := patchop.NewStar()
	smoother := patchsolver.NewKrylov(op, patchsolver.CG, 50, 1e-10, true)

	coarsestLevel := NewLevel(coarseDomain, filler, op, smoother)
	fineLevel := NewLevel(finestDomain, filler, op, smoother)
	ilcComm := ilc.New(finestDomain, coarseDomain)
	fineLevel.SetCoarser(coarsestLevel,
		NewMPIRestrictor(ilcComm, finestDomain, coarseDomain, NewLinearRestrictor(false)),
		NewMPIInterpolator(ilcComm, finestDomain, NewDirectInterpolator()))

	return fineLevel, finestDomain
}

func residualInfNormOverAllPatches(level *Level, f, u *vector.Vector) float64 {
	r := residual(level, f, u)
	max := 0.0
	for i := 0; i < level.Domain.GetNumLocalPatches(); i++ {
		rv := r.GetPatchView(i)
		rv.LoopOverInteriorIndexes(func(coord []int) {
			if a := math.Abs(rv.At(coord, 0)); a > max {
				max = a
			}
		})
	}
	return max
}

func residualInfNorm(level *Level, f, u *vector.Vector) float64 {
	r := residual(level, f, u)
	max := 0.0
	rv := r.GetPatchView(0)
	rv.LoopOverInteriorIndexes(func(coord []int) {
		if a := math.Abs(rv.At(coord, 0)); a > max {
			max = a
		}
	})
	return max
}

func Test_vcycle01(tst *testing.T) {

	chk.PrintTitle("vcycle01: a V-cycle reduces the residual of a three-level Poisson problem")

	fineLevel, finestDomain := threeLevelHierarchy(16)

	f := vector.New(finestDomain, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, float64(coord[0]+2*coord[1]+1))
	})

	u := vector.New(finestDomain, 1)
	before := residualInfNorm(fineLevel, f, u)

	cycle := NewVCycle(2, 2, 20).NewCycle(fineLevel)
	cycle.Apply(f, u)

	after := residualInfNorm(fineLevel, f, u)
	if after >= before {
		tst.Errorf("expected the V-cycle to reduce the residual: before=%v after=%v", before, after)
	}
}

func Test_wcycle01(tst *testing.T) {

	chk.PrintTitle("wcycle01: a W-cycle reduces the residual of a three-level Poisson problem")

	fineLevel, finestDomain := threeLevelHierarchy(16)

	f := vector.New(finestDomain, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, float64((coord[0]-coord[1])*(coord[0]-coord[1])+1))
	})

	u := vector.New(finestDomain, 1)
	before := residualInfNorm(fineLevel, f, u)

	cycle := NewWCycle(2, 1, 2, 20).NewCycle(fineLevel)
	cycle.Apply(f, u)

	after := residualInfNorm(fineLevel, f, u)
	if after >= before {
		tst.Errorf("expected the W-cycle to reduce the residual: before=%v after=%v", before, after)
	}
}

func Test_fmgcycle01(tst *testing.T) {

	chk.PrintTitle("fmgcycle01: FMG's residual is within 1.5x of a single V-cycle's from a zero guess")

	fineLevel, finestDomain := threeLevelHierarchy(16)

	f := vector.New(finestDomain, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, float64(coord[0]+coord[1]+1))
	})

	uV := vector.New(finestDomain, 1)
	NewVCycle(2, 2, 20).NewCycle(fineLevel).Apply(f, uV)
	vResidual := residualInfNorm(fineLevel, f, uV)

	fineLevel2, finestDomain2 := threeLevelHierarchy(16)
	f2 := vector.New(finestDomain2, 1)
	fv2 := f2.GetPatchView(0)
	fv2.LoopOverInteriorIndexes(func(coord []int) {
		fv2.Set(coord, 0, float64(coord[0]+coord[1]+1))
	})
	uFMG := vector.New(finestDomain2, 1)
	NewFMGCycle(NewVCycle(2, 2, 20)).NewCycle(fineLevel2).Apply(f2, uFMG)
	fmgResidual := residualInfNorm(fineLevel2, f2, uFMG)

	if fmgResidual > vResidual*1.5 {
		tst.Errorf("expected FMG's residual (%v) to be competitive with a single V-cycle's (%v)", fmgResidual, vResidual)
	}
}

func Test_vcycle02(tst *testing.T) {

	chk.PrintTitle("vcycle02: a V-cycle reduces the residual across a real quadtree refinement boundary")

	fineLevel, finestDomain := quadtreeHierarchy(8)

	f := vector.New(finestDomain, 1)
	for i := 0; i < finestDomain.GetNumLocalPatches(); i++ {
		fv := f.GetPatchView(i)
		fv.LoopOverInteriorIndexes(func(coord []int) {
			fv.Set(coord, 0, float64(coord[0]+2*coord[1]+1))
		})
	}

	u := vector.New(finestDomain, 1)
	before := residualInfNormOverAllPatches(fineLevel, f, u)

	cycle := NewVCycle(2, 2, 20).NewCycle(fineLevel)
	cycle.Apply(f, u)

	after := residualInfNormOverAllPatches(fineLevel, f, u)
	if after >= before {
		tst.Errorf("expected the V-cycle to reduce the residual across the refinement boundary: before=%v after=%v", before, after)
	}
}
