// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ilc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/orthant"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/vector"
)

func twoLevelDomains() (fine, coarse *domain.Domain) {
	c := patchinfo.New(2, 100)
	c.Ns[0], c.Ns[1] = 4, 4
	coarse = domain.New(2, 1, comm.New(), []*patchinfo.Info{c}, 1, 1)

	f0 := patchinfo.New(2, 200)
	f0.Ns[0], f0.Ns[1] = 4, 4
	f0.ParentID = 100
	f0.ParentRank = 0
	f0.OrthOnParent = orthant.New(2, 0)

	f1 := patchinfo.New(2, 201)
	f1.Ns[0], f1.Ns[1] = 4, 4
	f1.ParentID = 100
	f1.ParentRank = 0
	f1.OrthOnParent = orthant.New(2, 3)

	fine = domain.New(2, 0, comm.New(), []*patchinfo.Info{f0, f1}, 2, 1)
	return fine, coarse
}

func Test_ilc01(tst *testing.T) {

	chk.PrintTitle("ilc01: every fine patch with a same-rank parent lands in patches_with_local_parent")

	fine, coarse := twoLevelDomains()
	o := New(fine, coarse)

	if len(o.PatchesWithLocalParent()) != 2 {
		tst.Fatalf("expected 2 local-parent links, got %d", len(o.PatchesWithLocalParent()))
	}
	if len(o.PatchesWithGhostParent()) != 0 {
		tst.Fatalf("expected 0 ghost-parent links on a single-rank domain, got %d", len(o.PatchesWithGhostParent()))
	}
	ci, _ := coarse.LocalIndexOf(100)
	for _, link := range o.PatchesWithLocalParent() {
		if link.LocalIndex != ci {
			tst.Errorf("expected local index %d, got %d", ci, link.LocalIndex)
		}
	}
}

func Test_ilc02(tst *testing.T) {

	chk.PrintTitle("ilc02: getNewGhostVector allocates zero local patches on a single-rank domain")

	fine, coarse := twoLevelDomains()
	o := New(fine, coarse)
	gv := o.GetNewGhostVector(1)
	if gv.GetNumLocalPatches() != 0 {
		tst.Errorf("expected an empty staging vector, got %d patches", gv.GetNumLocalPatches())
	}
}

func Test_ilc03(tst *testing.T) {

	chk.PrintTitle("ilc03: concurrent Start/Start panics a RuntimeError")

	fine, coarse := twoLevelDomains()
	o := New(fine, coarse)
	coarseVec := vector.New(coarse, 1)
	ghostVec := o.GetNewGhostVector(1)

	o.SendGhostPatchesStart(coarseVec, ghostVec)
	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic on a second concurrent start")
		}
	}()
	o.SendGhostPatchesStart(coarseVec, ghostVec)
}

func Test_ilc04(tst *testing.T) {

	chk.PrintTitle("ilc04: Finish with mismatched vectors panics a RuntimeError")

	fine, coarse := twoLevelDomains()
	o := New(fine, coarse)
	coarseVec := vector.New(coarse, 1)
	ghostVec := o.GetNewGhostVector(1)
	other := vector.New(coarse, 1)

	o.SendGhostPatchesStart(coarseVec, ghostVec)
	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic on a mismatched finish")
		}
	}()
	o.SendGhostPatchesFinish(other, ghostVec)
}

func Test_ilc05(tst *testing.T) {

	chk.PrintTitle("ilc05: a well-paired Start/Finish round-trips cleanly and can be repeated")

	fine, coarse := twoLevelDomains()
	o := New(fine, coarse)
	coarseVec := vector.New(coarse, 1)
	ghostVec := o.GetNewGhostVector(1)

	o.SendGhostPatchesStart(coarseVec, ghostVec)
	o.SendGhostPatchesFinish(coarseVec, ghostVec)

	o.GetGhostPatchesStart(coarseVec, ghostVec)
	o.GetGhostPatchesFinish(coarseVec, ghostVec)
}
