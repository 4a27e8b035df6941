// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patchinfo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/face"
	"github.com/cpmech/patchgmg/nbr"
	"github.com/cpmech/patchgmg/orthant"
)

func Test_patchinfo01(tst *testing.T) {

	chk.PrintTitle("patchinfo01: set/get a normal neighbor on one face")

	p := New(2, 10)
	west := face.NewSide(2, 0, false)
	if p.HasNbr(west) {
		tst.Errorf("fresh patch should have no neighbors")
	}
	n := nbr.NewNormal(1, 9, 0)
	p.SetNbrInfo(west, &n)
	if !p.HasNbr(west) {
		tst.Errorf("expected neighbor to be set")
	}
	kind, err := p.GetNbrType(west)
	if err != nil || kind != nbr.Normal {
		tst.Errorf("expected NORMAL, got %v err=%v", kind, err)
	}
	got, err := p.GetNormalNbrInfo(west)
	if err != nil {
		tst.Fatalf("GetNormalNbrInfo failed: %v", err)
	}
	id, rank, _ := got.GetNormalNbrInfo()
	if id != 9 || rank != 0 {
		tst.Errorf("unexpected neighbor id/rank: %d/%d", id, rank)
	}
}

func Test_patchinfo02(tst *testing.T) {

	chk.PrintTitle("patchinfo02: wrong-kind and absent accessors fail")

	p := New(2, 1)
	west := face.NewSide(2, 0, false)
	if _, err := p.GetCoarseNbrInfo(west); err == nil {
		tst.Errorf("expected error on absent neighbor")
	}
	n := nbr.NewNormal(1, 2, 0)
	p.SetNbrInfo(west, &n)
	if _, err := p.GetCoarseNbrInfo(west); err == nil {
		tst.Errorf("expected error accessing coarse info on a normal descriptor")
	}
}

func Test_patchinfo03(tst *testing.T) {

	chk.PrintTitle("patchinfo03: clear a neighbor via SetNbrInfo(nil)")

	p := New(2, 1)
	west := face.NewSide(2, 0, false)
	n := nbr.NewNormal(1, 2, 0)
	p.SetNbrInfo(west, &n)
	p.SetNbrInfo(west, nil)
	if p.HasNbr(west) {
		tst.Errorf("expected neighbor to be cleared")
	}
}

func Test_patchinfo04(tst *testing.T) {

	chk.PrintTitle("patchinfo04: clone is independent and preserves neighbors")

	p := New(2, 1)
	west := face.NewSide(2, 0, false)
	n := nbr.NewCoarse(1, 5, 1, orthant.New(1, 0))
	p.SetNbrInfo(west, &n)

	c := p.Clone()
	c.SetNbrInfo(west, nil)
	if !p.HasNbr(west) {
		tst.Errorf("clearing the clone's neighbor must not affect the original")
	}
	if c.HasNbr(west) {
		tst.Errorf("clone should have had its neighbor cleared")
	}
}

func Test_patchinfo05(tst *testing.T) {

	chk.PrintTitle("patchinfo05: HasCoarseParent and EachNbr iteration")

	p := New(2, 1)
	if p.HasCoarseParent() {
		tst.Errorf("fresh patch should have no parent")
	}
	p.ParentID = 0
	if !p.HasCoarseParent() {
		tst.Errorf("expected HasCoarseParent true once ParentID is set")
	}

	west := face.NewSide(2, 0, false)
	south := face.NewSide(2, 1, false)
	n1 := nbr.NewNormal(1, 2, 0)
	n2 := nbr.NewNormal(1, 3, 0)
	p.SetNbrInfo(west, &n1)
	p.SetNbrInfo(south, &n2)

	count := 0
	p.EachNbr(func(f face.Face, info nbr.Info) { count++ })
	chk.IntAssert(count, 2)
}
