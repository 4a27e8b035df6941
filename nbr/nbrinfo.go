// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nbr

import (
	"encoding/binary"

	"github.com/cpmech/patchgmg/gmgerr"
	"github.com/cpmech/patchgmg/orthant"
)

// Info is a per-face neighbor descriptor: exactly one of Normal, Coarse
// or Fine is populated, selected by Kind(). M is the dimension of the
// face this descriptor is attached to (so a Fine descriptor knows how
// many fine neighbors, 2^M, to expect).
type Info struct {
	kind Type
	m    int

	normalID, normalRank int

	coarseID, coarseRank int
	orthOnCoarse         orthant.Orthant

	fineIDs   []int
	fineRanks []int
}

// NewNormal builds a Normal descriptor: the neighbor across a face of
// dimension m is at the same refinement level.
func NewNormal(m, id, rank int) Info {
	return Info{kind: Normal, m: m, normalID: id, normalRank: rank}
}

// NewCoarse builds a Coarse descriptor: the neighbor is one level
// coarser, and orthOnCoarse identifies which of the 2^m sub-regions of
// the coarse face this patch covers.
func NewCoarse(m, id, rank int, orthOnCoarse orthant.Orthant) Info {
	if orthOnCoarse.GetIndex() >= (1 << uint(m)) {
		panic(gmgerr.NewRuntimeError("nbr.NewCoarse: orthOnCoarse index %d out of range for m=%d", orthOnCoarse.GetIndex(), m))
	}
	return Info{kind: Coarse, m: m, coarseID: id, coarseRank: rank, orthOnCoarse: orthOnCoarse}
}

// NewFine builds a Fine descriptor: there are 2^m neighbors one level
// finer, indexed by the same Orthant<m> ordering used on the coarse
// side's children.
func NewFine(m int, ids, ranks []int) Info {
	n := 1 << uint(m)
	if len(ids) != n || len(ranks) != n {
		panic(gmgerr.NewRuntimeError("nbr.NewFine: expected %d ids/ranks for m=%d, got %d/%d", n, m, len(ids), len(ranks)))
	}
	return Info{kind: Fine, m: m, fineIDs: append([]int(nil), ids...), fineRanks: append([]int(nil), ranks...)}
}

// Kind returns which variant is populated.
func (o Info) Kind() Type { return o.kind }

// FaceDim returns m, the dimension of the face this descriptor attaches
// to.
func (o Info) FaceDim() int { return o.m }

// GetNormalNbrInfo returns the neighbor's id and rank. Fails with a
// RuntimeError if o is not a Normal descriptor.
func (o Info) GetNormalNbrInfo() (id, rank int, err error) {
	if o.kind != Normal {
		return 0, 0, gmgerr.NewRuntimeError("GetNormalNbrInfo: descriptor is %s, not NORMAL", o.kind)
	}
	return o.normalID, o.normalRank, nil
}

// GetCoarseNbrInfo returns the coarse neighbor's id, rank and the
// orthant it occupies on the coarse side. Fails with a RuntimeError if o
// is not a Coarse descriptor.
func (o Info) GetCoarseNbrInfo() (id, rank int, orthOnCoarse orthant.Orthant, err error) {
	if o.kind != Coarse {
		return 0, 0, orthant.Orthant{}, gmgerr.NewRuntimeError("GetCoarseNbrInfo: descriptor is %s, not COARSE", o.kind)
	}
	return o.coarseID, o.coarseRank, o.orthOnCoarse, nil
}

// GetFineNbrInfo returns the 2^m fine neighbors' ids and ranks, indexed
// by Orthant<m>. Fails with a RuntimeError if o is not a Fine
// descriptor.
func (o Info) GetFineNbrInfo() (ids, ranks []int, err error) {
	if o.kind != Fine {
		return nil, nil, gmgerr.NewRuntimeError("GetFineNbrInfo: descriptor is %s, not FINE", o.kind)
	}
	return append([]int(nil), o.fineIDs...), append([]int(nil), o.fineRanks...), nil
}

// NbrIDs returns every neighbor id this descriptor refers to (one for
// Normal/Coarse, 2^m for Fine).
func (o Info) NbrIDs() []int {
	switch o.kind {
	case Normal:
		return []int{o.normalID}
	case Coarse:
		return []int{o.coarseID}
	case Fine:
		return append([]int(nil), o.fineIDs...)
	}
	return nil
}

// NbrRanks returns every neighbor rank this descriptor refers to.
func (o Info) NbrRanks() []int {
	switch o.kind {
	case Normal:
		return []int{o.normalRank}
	case Coarse:
		return []int{o.coarseRank}
	case Fine:
		return append([]int(nil), o.fineRanks...)
	}
	return nil
}

// Clone returns a deep copy of o.
func (o Info) Clone() Info {
	c := o
	c.fineIDs = append([]int(nil), o.fineIDs...)
	c.fineRanks = append([]int(nil), o.fineRanks...)
	return c
}

// Serialize encodes o using the fixed layout of §6: rank(s) then id(s)
// then, for Coarse, a single orthant byte.
//
//	Normal: i32 rank, i32 id
//	Coarse: i32 rank, i32 id, byte orthant
//	Fine:   [i32;2^m] ranks, [i32;2^m] ids
func (o Info) Serialize() []byte {
	switch o.kind {
	case Normal:
		buf := make([]byte, 8)
		putI32(buf[0:4], o.normalRank)
		putI32(buf[4:8], o.normalID)
		return buf
	case Coarse:
		buf := make([]byte, 9)
		putI32(buf[0:4], o.coarseRank)
		putI32(buf[4:8], o.coarseID)
		buf[8] = byte(o.orthOnCoarse.GetIndex())
		return buf
	case Fine:
		n := len(o.fineIDs)
		buf := make([]byte, 8*n)
		for i := 0; i < n; i++ {
			putI32(buf[4*i:4*i+4], o.fineRanks[i])
		}
		for i := 0; i < n; i++ {
			putI32(buf[4*n+4*i:4*n+4*i+4], o.fineIDs[i])
		}
		return buf
	}
	return nil
}

// Deserialize decodes a buffer produced by Serialize, given the
// expected kind and face dimension m.
func Deserialize(kind Type, m int, buf []byte) (Info, error) {
	switch kind {
	case Normal:
		if len(buf) != 8 {
			return Info{}, gmgerr.NewRuntimeError("nbr.Deserialize: NORMAL needs 8 bytes, got %d", len(buf))
		}
		rank := getI32(buf[0:4])
		id := getI32(buf[4:8])
		return NewNormal(m, id, rank), nil
	case Coarse:
		if len(buf) != 9 {
			return Info{}, gmgerr.NewRuntimeError("nbr.Deserialize: COARSE needs 9 bytes, got %d", len(buf))
		}
		rank := getI32(buf[0:4])
		id := getI32(buf[4:8])
		orth := orthant.New(m, int(buf[8]))
		return NewCoarse(m, id, rank, orth), nil
	case Fine:
		n := 1 << uint(m)
		if len(buf) != 8*n {
			return Info{}, gmgerr.NewRuntimeError("nbr.Deserialize: FINE needs %d bytes, got %d", 8*n, len(buf))
		}
		ranks := make([]int, n)
		ids := make([]int, n)
		for i := 0; i < n; i++ {
			ranks[i] = getI32(buf[4*i : 4*i+4])
		}
		for i := 0; i < n; i++ {
			ids[i] = getI32(buf[4*n+4*i : 4*n+4*i+4])
		}
		return NewFine(m, ids, ranks), nil
	}
	return Info{}, gmgerr.NewRuntimeError("nbr.Deserialize: unknown kind %v", kind)
}

// SerializedSize returns the number of bytes Serialize produces for a
// descriptor of the given kind and face dimension m.
func SerializedSize(kind Type, m int) int {
	switch kind {
	case Normal:
		return 8
	case Coarse:
		return 9
	case Fine:
		return 8 * (1 << uint(m))
	}
	return 0
}

func putI32(buf []byte, v int) {
	binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
}

func getI32(buf []byte) int {
	return int(int32(binary.LittleEndian.Uint32(buf)))
}
