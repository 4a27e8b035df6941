// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmgerr defines the error kinds raised by the patchgmg core.
//
// There are exactly two kinds: RuntimeError for invariant violations
// (missing neighbors, wrong-kind accessors, malformed timer nesting, …)
// and BreakdownError for iterative patch-solver breakdowns. Both wrap
// a formatted message the way github.com/cpmech/gosl/chk.Err does.
package gmgerr

import "fmt"

// RuntimeError is raised whenever a caller violates an invariant of the
// core: a missing or wrong-kind neighbor descriptor, an unset Level
// piece, an out-of-bounds view index, mismatched InterLevelComm
// start/finish vectors, and similar programmer errors.
type RuntimeError struct {
	msg string
}

// NewRuntimeError formats msg with args the way chk.Err does and
// returns it wrapped as a *RuntimeError.
func NewRuntimeError(msg string, args ...interface{}) *RuntimeError {
	return &RuntimeError{msg: fmt.Sprintf(msg, args...)}
}

func (e *RuntimeError) Error() string {
	return e.msg
}

// BreakdownError is raised by a patch-local Krylov solver (BiCGStab, CG)
// when it detects a zero denominator (rho, omega) and
// continue_on_breakdown is false.
type BreakdownError struct {
	msg string
}

// NewBreakdownError formats msg with args and returns it wrapped as a
// *BreakdownError.
func NewBreakdownError(msg string, args ...interface{}) *BreakdownError {
	return &BreakdownError{msg: fmt.Sprintf(msg, args...)}
}

func (e *BreakdownError) Error() string {
	return e.msg
}

// IsBreakdown reports whether err is (or wraps) a *BreakdownError.
func IsBreakdown(err error) bool {
	_, ok := err.(*BreakdownError)
	return ok
}
