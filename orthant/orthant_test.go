// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orthant

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/face"
)

func Test_orthant01(tst *testing.T) {

	chk.PrintTitle("orthant01: 2-D orthants tag and axis bits")

	os := GetValues(2)
	chk.IntAssert(len(os), 4)
	want := []string{"SW", "SE", "NW", "NE"}
	for i, o := range os {
		if o.Tag() != want[i] {
			tst.Errorf("orthant %d: got %q want %q", i, o.Tag(), want[i])
		}
	}
	sw := os[0]
	if !sw.IsLowerOnAxis(0) || !sw.IsLowerOnAxis(1) {
		tst.Errorf("SW should be lower on both axes")
	}
}

func Test_orthant02(tst *testing.T) {

	chk.PrintTitle("orthant02: GetNbrOnSide flips only the side's axis")

	sw := New(2, 0) // SW
	east := face.NewSide(2, 0, true)
	nbr := sw.GetNbrOnSide(east)
	if nbr.Tag() != "SE" {
		tst.Errorf("expected SE, got %s", nbr.Tag())
	}
	north := face.NewSide(2, 1, true)
	nbr2 := sw.GetNbrOnSide(north)
	if nbr2.Tag() != "NW" {
		tst.Errorf("expected NW, got %s", nbr2.Tag())
	}
}

func Test_orthant03(tst *testing.T) {

	chk.PrintTitle("orthant03: interior/exterior sides partition the D sides")

	sw := New(2, 0)
	interior := sw.GetInteriorSides()
	exterior := sw.GetExteriorSides()
	chk.IntAssert(len(interior), 2)
	chk.IntAssert(len(exterior), 2)
	for i := range interior {
		if interior[i].GetIndex() == exterior[i].GetIndex() {
			tst.Errorf("interior and exterior sides must differ on axis %d", i)
		}
	}
}

func Test_orthant04(tst *testing.T) {

	chk.PrintTitle("orthant04: collapseOnAxis drops one axis")

	for _, o := range GetValues(3) {
		c0 := o.CollapseOnAxis(0)
		chk.IntAssert(c0.D, 2)
		c1 := o.CollapseOnAxis(1)
		if c1.D != 2 {
			tst.Errorf("collapse should reduce D by one")
		}
	}
	// BSW collapsed on axis 2 (z) should give SW in 2-D.
	bsw := New(3, 0)
	collapsed := bsw.CollapseOnAxis(2)
	if collapsed.Tag() != "SW" {
		tst.Errorf("expected SW, got %s", collapsed.Tag())
	}
}
