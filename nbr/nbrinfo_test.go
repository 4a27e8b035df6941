// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/orthant"
)

func Test_nbrinfo01(tst *testing.T) {

	chk.PrintTitle("nbrinfo01: normal descriptor round-trips")

	n := NewNormal(1, 42, 3)
	buf := n.Serialize()
	chk.IntAssert(len(buf), SerializedSize(Normal, 1))
	back, err := Deserialize(Normal, 1, buf)
	if err != nil {
		tst.Fatalf("deserialize failed: %v", err)
	}
	id, rank, err := back.GetNormalNbrInfo()
	if err != nil || id != 42 || rank != 3 {
		tst.Errorf("round-trip mismatch: id=%d rank=%d err=%v", id, rank, err)
	}
}

func Test_nbrinfo02(tst *testing.T) {

	chk.PrintTitle("nbrinfo02: coarse descriptor round-trips with orthant")

	orth := orthant.New(1, 1)
	c := NewCoarse(1, 7, 2, orth)
	buf := c.Serialize()
	back, err := Deserialize(Coarse, 1, buf)
	if err != nil {
		tst.Fatalf("deserialize failed: %v", err)
	}
	id, rank, o2, err := back.GetCoarseNbrInfo()
	if err != nil || id != 7 || rank != 2 || o2.GetIndex() != orth.GetIndex() {
		tst.Errorf("round-trip mismatch: id=%d rank=%d orth=%v err=%v", id, rank, o2, err)
	}
}

func Test_nbrinfo03(tst *testing.T) {

	chk.PrintTitle("nbrinfo03: fine descriptor round-trips 2^m neighbors")

	f := NewFine(1, []int{10, 11}, []int{0, 1})
	buf := f.Serialize()
	back, err := Deserialize(Fine, 1, buf)
	if err != nil {
		tst.Fatalf("deserialize failed: %v", err)
	}
	ids, ranks, err := back.GetFineNbrInfo()
	if err != nil {
		tst.Fatalf("GetFineNbrInfo failed: %v", err)
	}
	if ids[0] != 10 || ids[1] != 11 || ranks[0] != 0 || ranks[1] != 1 {
		tst.Errorf("round-trip mismatch: ids=%v ranks=%v", ids, ranks)
	}
}

func Test_nbrinfo04(tst *testing.T) {

	chk.PrintTitle("nbrinfo04: wrong-kind accessor is a RuntimeError")

	n := NewNormal(1, 1, 0)
	if _, _, _, err := n.GetCoarseNbrInfo(); err == nil {
		tst.Errorf("expected error accessing coarse info on a normal descriptor")
	}
	if _, _, err := n.GetFineNbrInfo(); err == nil {
		tst.Errorf("expected error accessing fine info on a normal descriptor")
	}
}
