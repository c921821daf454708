// sudoku - a Sudoku solving library and service.
// Copyright (C) 2024-2025 the ninefold authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package dbprep

import (
	"fmt"
	"testing"

	"github.com/ninefold/sudoku/puzzle"
)

func TestSamplePuzzles(t *testing.T) {
	if len(samplePuzzles) != 6 {
		t.Fatalf("There are %d sample puzzles, expected 6", len(samplePuzzles))
	}
	seen := make(map[string]string)
	for i, sample := range samplePuzzles {
		if want := fmt.Sprintf("%d-star", i+1); sample.name != want {
			t.Errorf("Sample %d is named %q, expected %q", i, sample.name, want)
		}
		board, err := puzzle.Parse(sample.encoding)
		if err != nil {
			t.Errorf("Sample %q doesn't parse: %v", sample.name, err)
			continue
		}
		if board.ID() != sampleIDs[i] {
			t.Errorf("Sample %q ID mismatch", sample.name)
		}
		if prior, dup := seen[board.ID()]; dup {
			t.Errorf("Samples %q and %q are the same puzzle", sample.name, prior)
		}
		seen[board.ID()] = sample.name
	}
}

func TestSamplePuzzlesHaveUniqueSolutions(t *testing.T) {
	for _, sample := range samplePuzzles {
		board, err := puzzle.Parse(sample.encoding)
		if err != nil {
			t.Fatalf("Sample %q doesn't parse: %v", sample.name, err)
		}
		if n := board.CountSolutions(2); n != 1 {
			t.Errorf("Sample %q has %d solutions (capped at 2)", sample.name, n)
		}
	}
}
