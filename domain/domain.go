// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain implements Domain (§3.1/§4): the rank-local collection
// of patches making up one refinement level (or one fine/coarse pairing
// thereof), plus its communicator and aggregate queries. A Domain is
// produced by an external DomainGenerator (e.g. a P4est-backed one, out
// of scope for this core per §1) and is read-only for the rest of the
// run, per §3.3.
package domain

import (
	"sort"

	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/patchinfo"
)

// Domain is a rank-local collection of patches sharing a refinement
// level, plus the communicator used to reach the other ranks holding
// the rest of the forest.
type Domain struct {
	D  int
	ID int

	comm *comm.Communicator

	patches []*patchinfo.Info // ordered by Domain::getPatchInfoVector's stable order (ascending id)

	id2local map[int]int // patch id -> local index, for patches on this rank

	numGlobalPatches int
	numGhostCells    int
}

// Generator produces a Domain from some external mesh/forest
// description. The mesh generator itself (reading a P4est-style JSON
// forest, per §6) is out of scope for this core; this interface is the
// contract a concrete generator (e.g. a P4estDomainGenerator) satisfies.
type Generator interface {
	// GetFinestDomain returns the finest Domain in the hierarchy.
	GetFinestDomain() *Domain
	// GetCoarserDomain returns the next coarser Domain and true, or nil
	// and false if the generator cannot produce a coarser level.
	GetCoarserDomain() (*Domain, bool)
	// HasCoarserDomain reports whether GetCoarserDomain would succeed.
	HasCoarserDomain() bool
}

// New builds a Domain from an explicit, already-assembled list of
// locally-owned patches. id identifies this Domain among the levels of
// a hierarchy (so InterLevelComm and Timer can refer to "the Domain with
// id X"). numGlobalPatches is the total patch count across every rank;
// numGhostCells is the uniform ghost width every patch in this Domain
// shares.
//
// Patches are stored sorted by id (matching patchinfo.Info.Less) so
// that iteration order is stable across identical runs, per the
// ordering guarantee in §5. local_index is then assigned 0..n-1 in that
// order, per invariant 4 of §3.2.
func New(D, id int, c *comm.Communicator, patches []*patchinfo.Info, numGlobalPatches, numGhostCells int) *Domain {
	sorted := append([]*patchinfo.Info(nil), patches...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	id2local := make(map[int]int, len(sorted))
	for i, p := range sorted {
		p.LocalIndex = i
		id2local[p.ID] = i
	}
	return &Domain{
		D:                D,
		ID:               id,
		comm:             c,
		patches:          sorted,
		id2local:         id2local,
		numGlobalPatches: numGlobalPatches,
		numGhostCells:    numGhostCells,
	}
}

// GetCommunicator returns the MPI communicator wrapper for this Domain.
func (d *Domain) GetCommunicator() *comm.Communicator { return d.comm }

// GetPatchInfoVector returns every locally-owned patch, in the stable
// order fixed at construction (ascending id).
func (d *Domain) GetPatchInfoVector() []*patchinfo.Info { return d.patches }

// GetPatchInfo returns the patch with the given local index.
func (d *Domain) GetPatchInfo(localIndex int) *patchinfo.Info {
	if localIndex < 0 || localIndex >= len(d.patches) {
		panic(gmgerr.NewRuntimeError("domain: local index %d out of range [0,%d)", localIndex, len(d.patches)))
	}
	return d.patches[localIndex]
}

// LocalIndexOf returns the local index of the patch with the given id,
// or false if it is not owned by this rank.
func (d *Domain) LocalIndexOf(id int) (int, bool) {
	idx, ok := d.id2local[id]
	return idx, ok
}

// GetNumLocalPatches returns the number of patches owned by this rank.
func (d *Domain) GetNumLocalPatches() int { return len(d.patches) }

// GetNumGlobalPatches returns the total patch count across every rank.
func (d *Domain) GetNumGlobalPatches() int { return d.numGlobalPatches }

// GetNumGhostCells returns the uniform ghost-cell width shared by every
// patch in this Domain.
func (d *Domain) GetNumGhostCells() int { return d.numGhostCells }

// GetNumLocalCells returns the sum of interior cells over every locally
// owned patch.
func (d *Domain) GetNumLocalCells() int {
	total := 0
	for _, p := range d.patches {
		total += p.NumCells()
	}
	return total
}

// GetNumTotalCells returns the interior cell count of this rank's
// patches. No cross-rank sum is performed, so it equals
// GetNumLocalCells on every rank and is the global total only with a
// single rank.
func (d *Domain) GetNumTotalCells() int {
	local := d.GetNumLocalCells()
	if d.comm == nil || !d.comm.IsOn() {
		return local
	}
	// Multi-rank: still the local count; cells on other ranks are not
	// added in.
	return local
}
