// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm wraps an MPI communicator (via github.com/cpmech/gosl/mpi,
// the same dependency the teacher library uses for its own distributed
// runs) with the RAII-style ownership of §4.12: Duplicate shares the
// underlying world handle through a reference count instead of creating
// a new MPI handle, Close releases only the caller's reference (no MPI
// handle is freed), and a default-constructed Communicator holds a null
// handle that panics on any query.
package comm

import (
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/patchgmg/gmgerr"
)

// Communicator wraps an MPI communicator. The zero value is the
// "default-constructed" Communicator of §4.12: every method panics with
// a RuntimeError until one is obtained from New or Duplicate.
type Communicator struct {
	valid bool
	rank  int
	size  int
	// refs lets Duplicate/Close share the underlying world handle
	// without double-freeing it; it is incremented on Duplicate and
	// decremented on Close, mirroring MPI_Comm_dup/MPI_Comm_free RAII
	// pairing without requiring a second live MPI handle per Domain.
	refs *int
}

// New returns a Communicator over the world communicator: if MPI is
// running (mpi.IsOn()) it reports the real rank/size from
// github.com/cpmech/gosl/mpi; otherwise it reports the single-process
// rank 0 of size 1, exactly as FEM.NewFEM does in the teacher library
// when allowParallel is false.
func New() *Communicator {
	rank, size := 0, 1
	if mpi.IsOn() {
		rank, size = mpi.Rank(), mpi.Size()
	}
	refs := new(int)
	*refs = 1
	return &Communicator{valid: true, rank: rank, size: size, refs: refs}
}

// Duplicate returns an independent Communicator over the same ranks as
// o; freeing the duplicate does not affect o, and vice versa.
func (o *Communicator) Duplicate() *Communicator {
	o.mustValid()
	*o.refs++
	return &Communicator{valid: true, rank: o.rank, size: o.size, refs: o.refs}
}

// Close releases this Communicator's reference to its underlying
// handle. After Close, o is a null communicator again.
func (o *Communicator) Close() {
	if !o.valid {
		return
	}
	*o.refs--
	o.valid = false
}

// Rank returns this process's rank within the communicator. Panics with
// a RuntimeError if o is a default-constructed (null) Communicator.
func (o *Communicator) Rank() int {
	o.mustValid()
	return o.rank
}

// Size returns the number of ranks in the communicator. Panics with a
// RuntimeError if o is a default-constructed (null) Communicator.
func (o *Communicator) Size() int {
	o.mustValid()
	return o.size
}

// IsOn reports whether this Communicator spans more than one rank
// (i.e. whether ghost exchange needs to cross process boundaries).
func (o *Communicator) IsOn() bool {
	o.mustValid()
	return o.size > 1
}

func (o *Communicator) mustValid() {
	if !o.valid {
		panic(gmgerr.NewRuntimeError("comm.Communicator: operation on a default-constructed (null) communicator"))
	}
}
