// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parray

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_parray01(tst *testing.T) {

	chk.PrintTitle("parray01: fresh PatchArray is zeroed and View-addressable")

	p := New([]int{3, 3}, 1, 1)
	p.View.LoopOverAllIndexes(func(coord []int) {
		if p.View.At(coord, 0) != 0 {
			tst.Errorf("expected zero at %v", coord)
		}
	})
}

func Test_parray02(tst *testing.T) {

	chk.PrintTitle("parray02: Clone is independent of the original")

	p := New([]int{2, 2}, 1, 1)
	p.View.Set([]int{0, 0}, 0, 5)

	c := p.Clone()
	c.View.Set([]int{0, 0}, 0, 9)

	chk.Scalar(tst, "original unaffected", 1e-15, p.View.At([]int{0, 0}, 0), 5)
	chk.Scalar(tst, "clone updated", 1e-15, c.View.At([]int{0, 0}, 0), 9)
}

func Test_parray03(tst *testing.T) {

	chk.PrintTitle("parray03: Fill sets interior and ghost alike")

	p := New([]int{2, 2}, 1, 1)
	p.Fill(3)
	p.View.LoopOverAllIndexes(func(coord []int) {
		if p.View.At(coord, 0) != 3 {
			tst.Errorf("expected 3 at %v", coord)
		}
	})
}
