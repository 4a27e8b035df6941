// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_face01(tst *testing.T) {

	chk.PrintTitle("face01: sides of a 2-D hypercube")

	sides := GetValues(2, 1)
	chk.IntAssert(len(sides), 4)
	chk.IntAssert(NumberOf(2, 1), 4)

	tags := make([]string, len(sides))
	for i, s := range sides {
		tags[i] = s.Tag()
	}
	if tags[0] != "WEST" || tags[1] != "EAST" || tags[2] != "SOUTH" || tags[3] != "NORTH" {
		tst.Errorf("unexpected side tags: %v", tags)
	}
}

func Test_face02(tst *testing.T) {

	chk.PrintTitle("face02: corners of a 2-D hypercube")

	corners := GetValues(2, 0)
	chk.IntAssert(len(corners), 4)

	tags := make([]string, len(corners))
	for i, c := range corners {
		tags[i] = c.Tag()
	}
	if tags[0] != "SW" || tags[1] != "SE" || tags[2] != "NW" || tags[3] != "NE" {
		tst.Errorf("unexpected corner tags: %v", tags)
	}
}

func Test_face03(tst *testing.T) {

	chk.PrintTitle("face03: corners of a 3-D hypercube")

	corners := GetValues(3, 0)
	chk.IntAssert(len(corners), 8)

	want := []string{"BSW", "BSE", "BNW", "BNE", "TSW", "TSE", "TNW", "TNE"}
	for i, c := range corners {
		if c.Tag() != want[i] {
			tst.Errorf("corner %d: got %q want %q", i, c.Tag(), want[i])
		}
	}
}

func Test_face04(tst *testing.T) {

	chk.PrintTitle("face04: opposite is an involution")

	for _, D := range []int{1, 2, 3} {
		for M := 0; M < D; M++ {
			for _, f := range GetValues(D, M) {
				if f.Opposite().Opposite().GetIndex() != f.GetIndex() {
					tst.Errorf("opposite not an involution for %v", f)
				}
				if f.Opposite().GetIndex() == f.GetIndex() {
					tst.Errorf("opposite should differ from self for %v", f)
				}
			}
		}
	}
}

func Test_face05(tst *testing.T) {

	chk.PrintTitle("face05: sides axis/lower-upper accessors")

	west := NewSide(2, 0, false)
	east := NewSide(2, 0, true)
	if west.GetAxisIndex() != 0 || !west.IsLowerOnAxis() {
		tst.Errorf("west side misclassified")
	}
	if east.GetAxisIndex() != 0 || east.IsLowerOnAxis() {
		tst.Errorf("east side misclassified")
	}
	if west.Opposite().GetIndex() != east.GetIndex() {
		tst.Errorf("west/east should be opposites")
	}
}

func Test_face06(tst *testing.T) {

	chk.PrintTitle("face06: getValuesOnSide for 3-D edges/corners")

	west := NewSide(3, 0, false)
	edgesOnWest := GetValuesOnSide(3, 1, west)
	chk.IntAssert(len(edgesOnWest), 4)
	cornersOnWest := GetValuesOnSide(3, 0, west)
	chk.IntAssert(len(cornersOnWest), 4)
	for _, c := range cornersOnWest {
		axes, upper := c.FixedAxes()
		found := false
		for i, a := range axes {
			if a == 0 && !upper[i] {
				found = true
			}
		}
		if !found {
			tst.Errorf("corner %v should be fixed-lower on axis 0", c)
		}
	}
}
