// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ilc implements InterLevelComm (§4.8): the mapping between a
// fine Domain and the coarser Domain whose patches are its parents, plus
// the Start/Finish pairs Restrictor and Interpolator use to bracket
// cross-rank transfers over that mapping. The Start/Finish calls only
// track the in-flight state; no data is sent or received.
package ilc

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/vector"
)

// ParentLink pairs a fine patch with the local index of its parent, on
// whichever vector that index is meaningful for: the coarse Domain's own
// patch list for patches_with_local_parent, or the ghost (staging)
// vector's patch list for patches_with_ghost_parent.
type ParentLink struct {
	LocalIndex int
	Fine       *patchinfo.Info
}

// Comm owns the mapping between a fine Domain and a coarser Domain whose
// patches are the "parents" of the fine patches, per §4.8.
type Comm struct {
	fine   *domain.Domain
	coarse *domain.Domain

	patchesWithLocalParent []ParentLink
	patchesWithGhostParent []ParentLink

	// ghostParentInfos holds one synthetic patch (shaped like its
	// coarse counterpart) per unique off-rank parent, in the order
	// getNewGhostVector's staging Domain assigns local indices.
	ghostParentInfos []*patchinfo.Info

	inFlight     bool
	inFlightKind string
	sentCoarse   *vector.Vector
	sentGhost    *vector.Vector
}

// New builds the fine/coarse mapping for every patch in fine whose
// parent id is set, splitting it into the local-parent and
// ghost-parent lists per §4.8.
//
// A rank boundary arises when patchinfo.ParentRank differs from the
// rank of fine's Communicator; such patches go to
// patches_with_ghost_parent. When every patch runs on one rank (as in
// this module's tests, which run without MPI), every parent resolves
// locally and patches_with_ghost_parent stays empty. No data moves for
// ghost parents: the *Start/*Finish calls below exchange nothing.
func New(fine, coarse *domain.Domain) *Comm {
	o := &Comm{fine: fine, coarse: coarse}
	seenGhostParent := make(map[int]int) // parent id -> index into ghostParentInfos

	myRank := fine.GetCommunicator().Rank()
	for _, fp := range fine.GetPatchInfoVector() {
		if !fp.HasCoarseParent() {
			continue
		}
		if fp.ParentRank == myRank {
			ci, ok := coarse.LocalIndexOf(fp.ParentID)
			if !ok {
				panic(gmgerr.NewRuntimeError("ilc: fine patch %d claims local parent %d not found on this rank's coarse domain", fp.ID, fp.ParentID))
			}
			o.patchesWithLocalParent = append(o.patchesWithLocalParent, ParentLink{LocalIndex: ci, Fine: fp})
			continue
		}
		gi, ok := seenGhostParent[fp.ParentID]
		if !ok {
			gi = len(o.ghostParentInfos)
			seenGhostParent[fp.ParentID] = gi
			parent := patchinfo.New(coarse.D, fp.ParentID)
			parent.LocalIndex = gi
			o.ghostParentInfos = append(o.ghostParentInfos, parent)
		}
		o.patchesWithGhostParent = append(o.patchesWithGhostParent, ParentLink{LocalIndex: gi, Fine: fp})
	}
	return o
}

// PatchesWithLocalParent returns the fine patches whose parent is owned
// by this rank, paired with that parent's local index into the coarse
// Domain.
func (o *Comm) PatchesWithLocalParent() []ParentLink { return o.patchesWithLocalParent }

// PatchesWithGhostParent returns the fine patches whose parent is
// off-rank, paired with the parent's local index into the staging
// vector returned by GetNewGhostVector.
func (o *Comm) PatchesWithGhostParent() []ParentLink { return o.patchesWithGhostParent }

// GetNewGhostVector allocates the staging buffer: one coarse-shaped
// patch per unique off-rank parent referenced by patches_with_ghost_parent.
func (o *Comm) GetNewGhostVector(numComponents int) *vector.Vector {
	ghostDomain := domain.New(o.coarse.D, o.coarse.ID, o.coarse.GetCommunicator(), o.ghostParentInfos, len(o.ghostParentInfos), o.coarse.GetNumGhostCells())
	return vector.New(ghostDomain, numComponents)
}

func (o *Comm) startComm(kind string, coarseVec, ghostVec *vector.Vector) {
	if o.inFlight {
		panic(gmgerr.NewRuntimeError("ilc: %s started while %s is still in flight", kind, o.inFlightKind))
	}
	o.inFlight = true
	o.inFlightKind = kind
	o.sentCoarse = coarseVec
	o.sentGhost = ghostVec
}

func (o *Comm) finishComm(kind string, coarseVec, ghostVec *vector.Vector) {
	if !o.inFlight || o.inFlightKind != kind {
		panic(gmgerr.NewRuntimeError("ilc: %s finished with no matching start in flight", kind))
	}
	if coarseVec != o.sentCoarse || ghostVec != o.sentGhost {
		panic(gmgerr.NewRuntimeError("ilc: %s finished with vectors that do not match its start", kind))
	}
	o.inFlight = false
	o.inFlightKind = ""
	o.sentCoarse = nil
	o.sentGhost = nil
}

// SendGhostPatchesStart marks a ghost-parent transfer in the
// restriction direction (fine→coarse) as in flight. coarse_vec must
// already be cleared by the caller. No data is sent, whatever
// patches_with_ghost_parent holds: the call only records the in-flight
// state and the two vectors so SendGhostPatchesFinish can validate
// against them.
func (o *Comm) SendGhostPatchesStart(coarseVec, ghostVec *vector.Vector) {
	o.startComm("sendGhostPatches", coarseVec, ghostVec)
}

// SendGhostPatchesFinish ends the transfer marked by
// SendGhostPatchesStart; nothing is received or reduced into
// coarse_vec. Panics with a RuntimeError if no such transfer is in
// flight or coarse_vec/ghost_vec do not match the ones passed to Start.
func (o *Comm) SendGhostPatchesFinish(coarseVec, ghostVec *vector.Vector) {
	o.finishComm("sendGhostPatches", coarseVec, ghostVec)
}

// GetGhostPatchesStart marks a ghost-parent transfer in the
// interpolation direction (coarse→fine) as in flight; as with
// SendGhostPatchesStart, no data is sent.
func (o *Comm) GetGhostPatchesStart(coarseVec, ghostVec *vector.Vector) {
	o.startComm("getGhostPatches", coarseVec, ghostVec)
}

// GetGhostPatchesFinish ends the transfer marked by
// GetGhostPatchesStart, with the same validation as
// SendGhostPatchesFinish; nothing is received.
func (o *Comm) GetGhostPatchesFinish(coarseVec, ghostVec *vector.Vector) {
	o.finishComm("getGhostPatches", coarseVec, ghostVec)
}
