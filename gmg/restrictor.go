// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmg implements Restrictor, Interpolator, Level and Cycle
// (§4.9/§4.10): the multigrid transfer operators and the V/W/FMG cycle
// schedules built on top of them.
package gmg

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ilc"
	"github.com/cpmech/patchgmg/vector"
)

// Restrictor is the fine→coarse transfer contract of §4.9: restrict
// returns a newly allocated coarse vector with values restricted from
// fine.
type Restrictor interface {
	Restrict(fineVec *vector.Vector) *vector.Vector
	Clone() Restrictor
}

// PatchRestrictor is the per-patch override point MPIRestrictor drives:
// restrictPatches(links, fine_vec, target) accumulates each fine patch
// named by links into its matching cell(s) of target, which is either
// the coarse_vec (local-parent links) or the staging ghost_vec
// (ghost-parent links).
type PatchRestrictor interface {
	RestrictPatches(links []ilc.ParentLink, fineDomain *domain.Domain, fineVec, target *vector.Vector)
	Clone() PatchRestrictor
}

// MPIRestrictor is the MPI-driven base class of §4.9: it wraps an
// InterLevelComm and drives the derived PatchRestrictor over both the
// local-parent and ghost-parent link lists, overlapping the ghost-parent
// send with the local-parent work exactly as the spec's
// MPIRestrictor.restrict procedure describes.
type MPIRestrictor struct {
	ILC          *ilc.Comm
	CoarseDomain *domain.Domain
	FineDomain   *domain.Domain
	Patches      PatchRestrictor
}

// NewMPIRestrictor builds an MPIRestrictor transferring from fineDomain
// to coarseDomain via comm, using patches as the concrete per-patch
// scheme.
func NewMPIRestrictor(comm *ilc.Comm, fineDomain, coarseDomain *domain.Domain, patches PatchRestrictor) *MPIRestrictor {
	return &MPIRestrictor{ILC: comm, CoarseDomain: coarseDomain, FineDomain: fineDomain, Patches: patches}
}

// Restrict implements §4.9's MPIRestrictor.restrict procedure.
func (o *MPIRestrictor) Restrict(fineVec *vector.Vector) *vector.Vector {
	ncomp := fineVec.GetNumComponents()
	ghostVec := o.ILC.GetNewGhostVector(ncomp)
	o.Patches.RestrictPatches(o.ILC.PatchesWithGhostParent(), o.FineDomain, fineVec, ghostVec)

	coarseVec := vector.New(o.CoarseDomain, ncomp)
	coarseVec.SetWithGhost(0)
	o.ILC.SendGhostPatchesStart(coarseVec, ghostVec)

	o.Patches.RestrictPatches(o.ILC.PatchesWithLocalParent(), o.FineDomain, fineVec, coarseVec)

	o.ILC.SendGhostPatchesFinish(coarseVec, ghostVec)
	return coarseVec
}

// Clone returns an MPIRestrictor over the same ILC/domains with a
// cloned PatchRestrictor.
func (o *MPIRestrictor) Clone() Restrictor {
	return &MPIRestrictor{ILC: o.ILC, CoarseDomain: o.CoarseDomain, FineDomain: o.FineDomain, Patches: o.Patches.Clone()}
}

// averageRestrictPatches is the shared 2^D-cell averaging kernel behind
// both LinearRestrictor and AvgRstr: every fine interior cell
// contributes weight = 2^-D of its value into the coarse cell its
// coordinate maps down to.
func averageRestrictPatches(links []ilc.ParentLink, fineDomain *domain.Domain, fineVec, target *vector.Vector) {
	D := fineDomain.D
	weight := 1.0
	for a := 0; a < D; a++ {
		weight /= 2
	}
	for _, link := range links {
		fi, ok := fineDomain.LocalIndexOf(link.Fine.ID)
		if !ok {
			continue
		}
		fineView := fineVec.GetPatchView(fi)
		targetView := target.GetPatchView(link.LocalIndex)
		orth := link.Fine.OrthOnParent

		fineView.LoopOverInteriorIndexes(func(coord []int) {
			coarseCoord := make([]int, D)
			for a := 0; a < D; a++ {
				local := coord[a] - fineView.Start[a]
				span := targetView.End[a] - targetView.Start[a] + 1
				coarseCoord[a] = targetView.Start[a] + coarseIndexForAxis(local, !orth.IsLowerOnAxis(a), span)
			}
			for c := 0; c < fineView.NumComponents; c++ {
				targetView.Set(coarseCoord, c, targetView.At(coarseCoord, c)+weight*fineView.At(coord, c))
			}
		})
	}
}

// LinearRestrictor is the concrete scheme of §4.9: averages the 2^D
// fine cells per coarse cell. ExtrapolateBoundaryGhosts is accepted for
// API completeness but left false by every caller in this module: the
// boundary-ghost linear extrapolation it names is a refinement on top
// of the core averaging stencil that none of this module's cycles
// exercise, so it is not implemented (see DESIGN.md).
type LinearRestrictor struct {
	ExtrapolateBoundaryGhosts bool
}

// NewLinearRestrictor returns a LinearRestrictor.
func NewLinearRestrictor(extrapolateBoundaryGhosts bool) *LinearRestrictor {
	return &LinearRestrictor{ExtrapolateBoundaryGhosts: extrapolateBoundaryGhosts}
}

// RestrictPatches averages every fine patch in links down into target.
func (o *LinearRestrictor) RestrictPatches(links []ilc.ParentLink, fineDomain *domain.Domain, fineVec, target *vector.Vector) {
	averageRestrictPatches(links, fineDomain, fineVec, target)
}

// Clone returns a copy of o.
func (o *LinearRestrictor) Clone() PatchRestrictor {
	return &LinearRestrictor{ExtrapolateBoundaryGhosts: o.ExtrapolateBoundaryGhosts}
}

// AvgRstr is the concrete scheme of §4.9 used where the fine parent is
// the same patch (no coarsening): it falls back to a direct copy for
// any link whose fine and coarse patch share the same cell counts, and
// averages otherwise.
type AvgRstr struct{}

// NewAvgRstr returns an AvgRstr.
func NewAvgRstr() *AvgRstr { return &AvgRstr{} }

// RestrictPatches copies same-resolution links and averages the rest.
func (o *AvgRstr) RestrictPatches(links []ilc.ParentLink, fineDomain *domain.Domain, fineVec, target *vector.Vector) {
	var toAverage []ilc.ParentLink
	for _, link := range links {
		fi, ok := fineDomain.LocalIndexOf(link.Fine.ID)
		if !ok {
			continue
		}
		fineView := fineVec.GetPatchView(fi)
		targetView := target.GetPatchView(link.LocalIndex)
		sameResolution := true
		for a := 0; a < fineDomain.D; a++ {
			if fineView.End[a]-fineView.Start[a] != targetView.End[a]-targetView.Start[a] {
				sameResolution = false
				break
			}
		}
		if !sameResolution {
			toAverage = append(toAverage, link)
			continue
		}
		fineView.LoopOverInteriorIndexes(func(coord []int) {
			targetCoord := make([]int, fineDomain.D)
			for a := 0; a < fineDomain.D; a++ {
				targetCoord[a] = targetView.Start[a] + (coord[a] - fineView.Start[a])
			}
			for c := 0; c < fineView.NumComponents; c++ {
				targetView.Set(targetCoord, c, targetView.At(targetCoord, c)+fineView.At(coord, c))
			}
		})
	}
	if len(toAverage) > 0 {
		averageRestrictPatches(toAverage, fineDomain, fineVec, target)
	}
}

// Clone returns a copy of o.
func (o *AvgRstr) Clone() PatchRestrictor { return &AvgRstr{} }
