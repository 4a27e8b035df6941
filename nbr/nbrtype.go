// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nbr implements the per-face neighbor descriptors of §3.1/§4.1:
// Normal (same refinement level), Coarse (neighbor one level coarser)
// and Fine (2^M neighbors one level finer), modeled as a closed tagged
// union rather than an interface hierarchy, per DESIGN.md's guidance
// that the set of variants is fixed and known at compile time.
package nbr

import "github.com/cpmech/patchgmg/gmgerr"

// Type classifies how a patch is connected to its neighbor across a
// face.
type Type int

const (
	// Normal means the neighbor is at the same refinement level.
	Normal Type = iota
	// Coarse means the neighbor is one level coarser.
	Coarse
	// Fine means the neighbor(s) are one level finer.
	Fine
)

// String returns the JSON wire tag for t ("NORMAL", "COARSE", "FINE").
func (t Type) String() string {
	switch t {
	case Normal:
		return "NORMAL"
	case Coarse:
		return "COARSE"
	case Fine:
		return "FINE"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Type) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"NORMAL"`:
		*t = Normal
	case `"COARSE"`:
		*t = Coarse
	case `"FINE"`:
		*t = Fine
	default:
		return gmgerr.NewRuntimeError("nbr: invalid NbrType JSON value %s", string(data))
	}
	return nil
}
