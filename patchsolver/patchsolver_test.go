// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patchsolver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/vector"
	"github.com/cpmech/patchgmg/view"
)

func unitSquareDomain(n int) (*domain.Domain, *patchinfo.Info) {
	p := patchinfo.New(2, 1)
	p.Ns[0], p.Ns[1] = n, n
	p.Spacings[0], p.Spacings[1] = 1.0/float64(n), 1.0/float64(n)
	d := domain.New(2, 0, comm.New(), []*patchinfo.Info{p}, 1, 1)
	return d, p
}

func residualNorm(tst *testing.T, dom *domain.Domain, op patchop.Operator, filler *ghost.Filler, f, u *vector.Vector) float64 {
	r := u.GetZeroClone()
	patchop.Apply(op, filler, dom, u, r)
	max := 0.0
	rv := r.GetPatchView(0)
	fv := f.GetPatchView(0)
	rv.LoopOverInteriorIndexes(func(coord []int) {
		diff := math.Abs(fv.At(coord, 0) - rv.At(coord, 0))
		if diff > max {
			max = diff
		}
	})
	return max
}

func Test_krylov01(tst *testing.T) {

	chk.PrintTitle("krylov01: CG drives the patch residual below tolerance")

	d, _ := unitSquareDomain(6)
	filler := ghost.New(ghost.Faces)
	op := patchop.NewStar()

	f := vector.New(d, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, float64(coord[0]+2*coord[1]+1))
	})

	u := vector.New(d, 1)
	s := NewKrylov(op, CG, 500, 1e-10, false)
	s.Apply(filler, d, f, u)

	res := residualNorm(tst, d, op, filler, f, u)
	if res > 1e-6 {
		tst.Errorf("residual too large: %v", res)
	}
}

func Test_krylov02(tst *testing.T) {

	chk.PrintTitle("krylov02: BiCGStab drives the patch residual below tolerance")

	d, _ := unitSquareDomain(5)
	filler := ghost.New(ghost.Faces)
	op := patchop.NewStar()

	f := vector.New(d, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, float64((coord[0]-coord[1])*(coord[0]-coord[1])+1))
	})

	u := vector.New(d, 1)
	s := NewKrylov(op, BiCGStab, 500, 1e-10, false)
	s.Apply(filler, d, f, u)

	res := residualNorm(tst, d, op, filler, f, u)
	if res > 1e-6 {
		tst.Errorf("residual too large: %v", res)
	}
}

// zeroOperator always writes f=0, so the very first CG/BiCGStab step
// hits a zero denominator against any nonzero rhs: a deterministic way
// to exercise the breakdown path.
type zeroOperator struct{}

func (zeroOperator) ApplySinglePatch(pinfo *patchinfo.Info, u, f *view.View) {
	f.LoopOverInteriorIndexes(func(coord []int) {
		for c := 0; c < f.NumComponents; c++ {
			f.Set(coord, c, 0)
		}
	})
}
func (zeroOperator) AddGhostToRHS(pinfo *patchinfo.Info, u, f *view.View) {}
func (zeroOperator) Clone() patchop.Operator                             { return zeroOperator{} }

func Test_krylov03(tst *testing.T) {

	chk.PrintTitle("krylov03: breakdown panics a BreakdownError unless continue_on_breakdown is set")

	d, _ := unitSquareDomain(3)
	filler := ghost.New(ghost.Faces)

	f := vector.New(d, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, 1)
	})
	u := vector.New(d, 1)

	s := NewKrylov(zeroOperator{}, CG, 10, 1e-10, false)
	defer func() {
		r := recover()
		if r == nil {
			tst.Fatalf("expected a panic on breakdown")
		}
		if _, ok := r.(error); !ok {
			tst.Fatalf("expected an error panic, got %T", r)
		}
	}()
	s.Apply(filler, d, f, u)
}

func Test_krylov04(tst *testing.T) {

	chk.PrintTitle("krylov04: continue_on_breakdown suppresses the panic")

	d, _ := unitSquareDomain(3)
	filler := ghost.New(ghost.Faces)

	f := vector.New(d, 1)
	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		fv.Set(coord, 0, 1)
	})
	u := vector.New(d, 1)

	s := NewKrylov(zeroOperator{}, CG, 10, 1e-10, true)
	s.Apply(filler, d, f, u) // must not panic
}
