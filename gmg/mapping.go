// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

// coarseIndexForAxis maps a fine patch's local interior index along one
// axis to its parent coarse patch's matching local interior index: two
// fine cells per coarse cell, shifted into the upper half of the parent
// when this fine patch occupies the upper orthant on that axis. This is
// the full-dimensional analogue of the single-face half-mapping
// ghost.Filler uses at a coarse/fine refinement boundary.
func coarseIndexForAxis(fineLocal int, upper bool, coarseSpan int) int {
	half := fineLocal / 2
	if upper {
		half += coarseSpan / 2
	}
	if half >= coarseSpan {
		half = coarseSpan - 1
	}
	return half
}
