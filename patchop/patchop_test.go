// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patchop

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchgmg/comm"
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/patchinfo"
	"github.com/cpmech/patchgmg/vector"
)

func unitSquareDomain(n int) (*domain.Domain, *patchinfo.Info) {
	p := patchinfo.New(2, 1)
	p.Ns[0], p.Ns[1] = n, n
	p.Spacings[0], p.Spacings[1] = 1.0/float64(n), 1.0/float64(n)
	d := domain.New(2, 0, comm.New(), []*patchinfo.Info{p}, 1, 1)
	return d, p
}

func Test_star01(tst *testing.T) {

	chk.PrintTitle("star01: a quadratic u(x,y)=x^2+y^2 gives the constant -4 under the star stencil (the negated Laplacian)")

	d, p := unitSquareDomain(8)
	u := vector.New(d, 1)
	f := vector.New(d, 1)

	h := p.Spacings[0]
	uv := u.GetPatchView(0)
	uv.LoopOverAllIndexes(func(coord []int) {
		x := (float64(coord[0]) + 0.5) * h
		y := (float64(coord[1]) + 0.5) * h
		uv.Set(coord, 0, x*x+y*y)
	})

	op := NewStar()
	filler := ghost.New(ghost.Faces)
	Apply(op, filler, d, u, f)

	fv := f.GetPatchView(0)
	fv.LoopOverInteriorIndexes(func(coord []int) {
		chk.Scalar(tst, "laplacian", 1e-9, fv.At(coord, 0), -4)
	})
}

func Test_star02(tst *testing.T) {

	chk.PrintTitle("star02: AddGhostToRHS removes exactly the boundary ghost contribution")

	d, p := unitSquareDomain(4)
	u := vector.New(d, 1)
	f := vector.New(d, 1)
	u.SetWithGhost(0)
	uv := u.GetPatchView(0)
	uv.Set([]int{-1, 0}, 0, 7) // west ghost of the corner cell

	op := NewStar()
	op.AddGhostToRHS(p, uv, f.GetPatchView(0))

	h := p.Spacings[0]
	chk.Scalar(tst, "rhs correction", 1e-12, f.GetPatchView(0).At([]int{0, 0}, 0), 7/(h*h))
}
