// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"github.com/cpmech/patchgmg/domain"
	"github.com/cpmech/patchgmg/ghost"
	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/patchop"
	"github.com/cpmech/patchgmg/patchsolver"
)

// Level is one rung of the multigrid hierarchy (§4.10): it holds clones
// (never references) of its Operator, Smoother, Restrictor and
// Interpolator, plus an optional link to the next coarser Level. A
// Level's Domain is read-only and owned externally, per §3.3.
type Level struct {
	Domain   *domain.Domain
	Filler   *ghost.Filler
	Op       patchop.Operator
	Smoother patchsolver.Smoother

	restrictor   Restrictor   // nil at the coarsest level
	interpolator Interpolator // from the coarser level into this one; nil at the coarsest level
	coarser      *Level       // nil at the coarsest level
	hasFiner     bool         // set once a finer Level links to this one
}

// NewLevel builds a Level over dom, cloning op and smoother so the
// Level owns independent copies.
func NewLevel(dom *domain.Domain, filler *ghost.Filler, op patchop.Operator, smoother patchsolver.Smoother) *Level {
	return &Level{
		Domain:   dom,
		Filler:   filler,
		Op:       op.Clone(),
		Smoother: smoother.Clone(),
	}
}

// SetCoarser links l to its next coarser Level, cloning restrictor and
// interpolator so l owns independent copies. Levels are linked
// coarsest-to-finest as a hierarchy is built, per §3.3.
func (l *Level) SetCoarser(coarser *Level, restrictor Restrictor, interpolator Interpolator) {
	l.coarser = coarser
	coarser.hasFiner = true
	l.restrictor = restrictor.Clone()
	l.interpolator = interpolator.Clone()
}

// Finest reports whether no finer Level has been linked to l via
// SetCoarser.
func (l *Level) Finest() bool { return !l.hasFiner }

// Coarsest reports whether l has no coarser link.
func (l *Level) Coarsest() bool { return l.coarser == nil }

// GetCoarser returns the next coarser Level, or a RuntimeError if l is
// the coarsest level.
func (l *Level) GetCoarser() (*Level, error) {
	if l.coarser == nil {
		return nil, gmgerr.NewRuntimeError("This level does not have a coarser level")
	}
	return l.coarser, nil
}

// GetRestrictor returns l's Restrictor (to the next coarser level), or
// a RuntimeError if l is the coarsest level.
func (l *Level) GetRestrictor() (Restrictor, error) {
	if l.restrictor == nil {
		return nil, gmgerr.NewRuntimeError("This level does not have a restrictor")
	}
	return l.restrictor, nil
}

// GetInterpolator returns l's Interpolator (from the next coarser level
// into l), or a RuntimeError if l is the coarsest level.
func (l *Level) GetInterpolator() (Interpolator, error) {
	if l.interpolator == nil {
		return nil, gmgerr.NewRuntimeError("This level does not have an interpolator")
	}
	return l.interpolator, nil
}

// mustCoarser, mustRestrictor and mustInterpolator panic with the
// underlying RuntimeError instead of returning it, for the cycle
// visitors below where an absent piece is always a programmer error.
func (l *Level) mustCoarser() *Level {
	c, err := l.GetCoarser()
	if err != nil {
		panic(err)
	}
	return c
}

func (l *Level) mustRestrictor() Restrictor {
	r, err := l.GetRestrictor()
	if err != nil {
		panic(err)
	}
	return r
}

func (l *Level) mustInterpolator() Interpolator {
	i, err := l.GetInterpolator()
	if err != nil {
		panic(err)
	}
	return i
}
