// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/vector"
)

// Visitor is what a concrete Cycle (VCycle, WCycle, FMGCycle) provides:
// the recursive descent/ascent over the Level hierarchy.
type Visitor interface {
	Visit(level *Level, f, u *vector.Vector)
}

// Cycle is the base of §4.10: apply zeroes u (including ghosts) then
// visits the finest Level, per the concrete Visitor's schedule.
type Cycle struct {
	Finest  *Level
	visitor Visitor
}

// Apply runs one cycle: u.SetWithGhost(0); visit(finest, f, u).
func (c *Cycle) Apply(f, u *vector.Vector) {
	u.SetWithGhost(0)
	c.visitor.Visit(c.Finest, f, u)
}

// residual forms r = f - L(level) u via level's Operator, ghost-filling
// u first.
func residual(level *Level, f, u *vector.Vector) *vector.Vector {
	lu := f.GetZeroClone()
	patchop.Apply(level.Op, level.Filler, level.Domain, u, lu)
	r := f.GetZeroClone()
	r.Copy(f)
	r.AddScaled(-1, lu)
	return r
}

// restrictResidual is the shared "coarser_f = restrict(level, f, u)"
// helper of §4.10: form the residual, then restrict it to the next
// coarser Level's Domain.
func restrictResidual(level *Level, f, u *vector.Vector) *vector.Vector {
	r := residual(level, f, u)
	return level.mustRestrictor().Restrict(r)
}

// VCycle is the concrete V-cycle of §4.10.
type VCycle struct {
	NumPreSweeps    int
	NumPostSweeps   int
	NumCoarseSweeps int
}

// NewVCycle returns a VCycle with the given sweep counts.
func NewVCycle(numPreSweeps, numPostSweeps, numCoarseSweeps int) *VCycle {
	return &VCycle{NumPreSweeps: numPreSweeps, NumPostSweeps: numPostSweeps, NumCoarseSweeps: numCoarseSweeps}
}

// NewCycle builds a Cycle rooted at finest, driven by this VCycle's
// Visit schedule.
func (o *VCycle) NewCycle(finest *Level) *Cycle {
	return &Cycle{Finest: finest, visitor: o}
}

// Visit implements §4.10's VCycle.visit.
func (o *VCycle) Visit(level *Level, f, u *vector.Vector) {
	if level.Coarsest() {
		for i := 0; i < o.NumCoarseSweeps; i++ {
			level.Smoother.Smooth(level.Filler, level.Domain, f, u)
		}
		return
	}
	for i := 0; i < o.NumPreSweeps; i++ {
		level.Smoother.Smooth(level.Filler, level.Domain, f, u)
	}
	coarserF := restrictResidual(level, f, u)
	coarserU := coarserF.GetZeroClone()
	o.Visit(level.mustCoarser(), coarserF, coarserU)
	level.mustInterpolator().Interpolate(coarserU, u)
	for i := 0; i < o.NumPostSweeps; i++ {
		level.Smoother.Smooth(level.Filler, level.Domain, f, u)
	}
}

// WCycle is the concrete W-cycle of §4.10: identical to VCycle except
// it recurses twice, with an intervening NumMidSweeps smoothing pass on
// the original level, before post-smoothing.
type WCycle struct {
	NumPreSweeps    int
	NumMidSweeps    int
	NumPostSweeps   int
	NumCoarseSweeps int
}

// NewWCycle returns a WCycle with the given sweep counts.
func NewWCycle(numPreSweeps, numMidSweeps, numPostSweeps, numCoarseSweeps int) *WCycle {
	return &WCycle{NumPreSweeps: numPreSweeps, NumMidSweeps: numMidSweeps, NumPostSweeps: numPostSweeps, NumCoarseSweeps: numCoarseSweeps}
}

// NewCycle builds a Cycle rooted at finest, driven by this WCycle's
// Visit schedule.
func (o *WCycle) NewCycle(finest *Level) *Cycle {
	return &Cycle{Finest: finest, visitor: o}
}

// Visit implements §4.10's WCycle.visit.
func (o *WCycle) Visit(level *Level, f, u *vector.Vector) {
	if level.Coarsest() {
		for i := 0; i < o.NumCoarseSweeps; i++ {
			level.Smoother.Smooth(level.Filler, level.Domain, f, u)
		}
		return
	}
	for i := 0; i < o.NumPreSweeps; i++ {
		level.Smoother.Smooth(level.Filler, level.Domain, f, u)
	}

	coarserF1 := restrictResidual(level, f, u)
	coarserU1 := coarserF1.GetZeroClone()
	o.Visit(level.mustCoarser(), coarserF1, coarserU1)
	level.mustInterpolator().Interpolate(coarserU1, u)

	for i := 0; i < o.NumMidSweeps; i++ {
		level.Smoother.Smooth(level.Filler, level.Domain, f, u)
	}

	coarserF2 := restrictResidual(level, f, u)
	coarserU2 := coarserF2.GetZeroClone()
	o.Visit(level.mustCoarser(), coarserF2, coarserU2)
	level.mustInterpolator().Interpolate(coarserU2, u)

	for i := 0; i < o.NumPostSweeps; i++ {
		level.Smoother.Smooth(level.Filler, level.Domain, f, u)
	}
}

// FMGCycle is the concrete full-multigrid scheme of §4.10: it builds a
// nested-iteration initial guess by restricting f down to the coarsest
// level and interpolating back up one level at a time (one V-cycle at
// every level of that ladder, the coarsest and the finest included),
// then runs one further V-cycle
// from the finest level down to coarsest and back as the final
// correction pass.
type FMGCycle struct {
	V *VCycle
}

// NewFMGCycle returns an FMGCycle driven by v's sweep schedule at every
// level of both the nested-iteration ladder and the final V-cycle.
func NewFMGCycle(v *VCycle) *FMGCycle {
	return &FMGCycle{V: v}
}

// NewCycle builds a Cycle rooted at finest, driven by this FMGCycle's
// Visit schedule.
func (o *FMGCycle) NewCycle(finest *Level) *Cycle {
	return &Cycle{Finest: finest, visitor: o}
}

// Visit implements §4.10's FMGCycle.visit.
func (o *FMGCycle) Visit(level *Level, f, u *vector.Vector) {
	guess := o.ladder(level, f)
	u.Copy(guess)
	o.V.Visit(level, f, u)
}

// ladder restricts f down to the coarsest level, solves there, then
// interpolates the result back up one level at a time, running one
// V-cycle at each level on the way up (level itself included) to refine
// the prolongated guess.
func (o *FMGCycle) ladder(level *Level, f *vector.Vector) *vector.Vector {
	if level.Coarsest() {
		u := f.GetZeroClone()
		o.V.Visit(level, f, u)
		return u
	}
	coarserF := level.mustRestrictor().Restrict(f)
	coarserU := o.ladder(level.mustCoarser(), coarserF)
	u := f.GetZeroClone()
	level.mustInterpolator().Interpolate(coarserU, u)
	o.V.Visit(level, f, u)
	return u
}
