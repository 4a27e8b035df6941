// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ilc"
	"github.com/cpmech/patchgmg/vector"
)

// Interpolator is the coarse→fine transfer contract of §4.9:
// interpolate adds interpolated coarse values into fine_vec without
// clearing it first, which is what lets a Cycle overlay a correction on
// the current iterate.
type Interpolator interface {
	Interpolate(coarseVec, fineVec *vector.Vector)
	Clone() Interpolator
}

// PatchInterpolator is the per-patch override point MPIInterpolator
// drives: interpolatePatches(links, source, fineVec) adds source's
// values (source is either coarse_vec for local-parent links or the
// staging ghost_vec for ghost-parent links) into each fine patch named
// by links.
type PatchInterpolator interface {
	InterpolatePatches(links []ilc.ParentLink, source *vector.Vector, fineDomain *domain.Domain, fineVec *vector.Vector)
	Clone() PatchInterpolator
}

// MPIInterpolator is the MPI-driven base class of §4.9, symmetric with
// MPIRestrictor: it fetches the coarse data it needs as a ghost-parent
// contribution while interpolating its own local-parent patches.
type MPIInterpolator struct {
	ILC        *ilc.Comm
	FineDomain *domain.Domain
	Patches    PatchInterpolator
}

// NewMPIInterpolator builds an MPIInterpolator interpolating onto
// fineDomain via comm, using patches as the concrete per-patch scheme.
func NewMPIInterpolator(comm *ilc.Comm, fineDomain *domain.Domain, patches PatchInterpolator) *MPIInterpolator {
	return &MPIInterpolator{ILC: comm, FineDomain: fineDomain, Patches: patches}
}

// Interpolate implements §4.9's symmetric MPIInterpolator.interpolate
// procedure.
func (o *MPIInterpolator) Interpolate(coarseVec, fineVec *vector.Vector) {
	ncomp := coarseVec.GetNumComponents()
	ghostVec := o.ILC.GetNewGhostVector(ncomp)
	o.ILC.GetGhostPatchesStart(coarseVec, ghostVec)

	o.Patches.InterpolatePatches(o.ILC.PatchesWithLocalParent(), coarseVec, o.FineDomain, fineVec)

	o.ILC.GetGhostPatchesFinish(coarseVec, ghostVec)
	o.Patches.InterpolatePatches(o.ILC.PatchesWithGhostParent(), ghostVec, o.FineDomain, fineVec)
}

// Clone returns an MPIInterpolator over the same ILC/domain with a
// cloned PatchInterpolator.
func (o *MPIInterpolator) Clone() Interpolator {
	return &MPIInterpolator{ILC: o.ILC, FineDomain: o.FineDomain, Patches: o.Patches.Clone()}
}

// DirectInterpolator is the concrete scheme of §4.9: for each fine
// patch whose parent is given, it adds
// coarse_parent[coord_mapped] into fine[coord], where coord_mapped
// halves each axis coordinate and offsets into the matching half of the
// parent chosen by the fine patch's orth_on_parent.
type DirectInterpolator struct{}

// NewDirectInterpolator returns a DirectInterpolator.
func NewDirectInterpolator() *DirectInterpolator { return &DirectInterpolator{} }

// InterpolatePatches adds source's values into every fine patch in
// links.
func (o *DirectInterpolator) InterpolatePatches(links []ilc.ParentLink, source *vector.Vector, fineDomain *domain.Domain, fineVec *vector.Vector) {
	D := fineDomain.D
	for _, link := range links {
		fi, ok := fineDomain.LocalIndexOf(link.Fine.ID)
		if !ok {
			continue
		}
		fineView := fineVec.GetPatchView(fi)
		sourceView := source.GetPatchView(link.LocalIndex)
		orth := link.Fine.OrthOnParent

		fineView.LoopOverInteriorIndexes(func(coord []int) {
			sourceCoord := make([]int, D)
			for a := 0; a < D; a++ {
				local := coord[a] - fineView.Start[a]
				span := sourceView.End[a] - sourceView.Start[a] + 1
				sourceCoord[a] = sourceView.Start[a] + coarseIndexForAxis(local, !orth.IsLowerOnAxis(a), span)
			}
			for c := 0; c < fineView.NumComponents; c++ {
				fineView.Set(coord, c, fineView.At(coord, c)+sourceView.At(sourceCoord, c))
			}
		})
	}
}

// Clone returns a copy of o.
func (o *DirectInterpolator) Clone() PatchInterpolator { return &DirectInterpolator{} }
