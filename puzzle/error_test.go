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

package puzzle

import (
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err      Error
		expected string
	}{
		{
			lengthError(80),
			"Malformed input: Length: Must be 81 cells, found 80",
		},
		{
			characterError('x', 40),
			`Malformed input: Character "x" at offset 40: Must be a digit 1-9, an empty-cell mark (. _ -), or whitespace`,
		},
		{
			conflictError(Cell{0, 5}, 5, "row"),
			"Invalid puzzle: Cell a6: Digit 5 already appears in its row",
		},
		{
			conflictError(Cell{3, 0}, 7, "column"),
			"Invalid puzzle: Cell d1: Digit 7 already appears in its column",
		},
		{
			rangeError(DigitAttribute, 10, 1, 9),
			"Invalid argument: Digit: Must be at most 9",
		},
		{
			rangeError(DigitAttribute, 0, 1, 9),
			"Invalid argument: Digit: Must be at least 1",
		},
		{
			Error{Scope: ArgumentScope, Attribute: CellAttribute,
				Condition: OccupiedCellCondition, Values: ErrorData{"e5", 5}},
			"Invalid argument: Cell e5: Already holds digit 5",
		},
		{
			Error{Scope: ArgumentScope, Attribute: CellAttribute,
				Condition: NotACandidateCondition, Values: ErrorData{"a1", 3}},
			"Invalid argument: Cell a1: Digit 3 conflicts with a row, column, or box neighbor",
		},
		{
			Error{Scope: InternalScope, Attribute: LocationAttribute,
				Condition: GeneralCondition, Values: ErrorData{"Solve", "impossible state"}},
			"Internal logic error: In puzzle.Solve: impossible state",
		},
		{
			Error{Message: "pre-canned"},
			"pre-canned",
		},
		{
			Error{},
			"Unknown error: Supplemental data is []",
		},
	}
	for i, tc := range cases {
		if got := tc.err.Error(); got != tc.expected {
			t.Errorf("case %d: message is %q, expected %q", i, got, tc.expected)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	malformed := error(lengthError(80))
	invalid := error(conflictError(Cell{0, 5}, 5, "row"))
	argument := error(rangeError(DigitAttribute, 10, 1, 9))

	if !IsMalformedInput(malformed) || IsInvalidPuzzle(malformed) {
		t.Errorf("Length error misclassified")
	}
	if !IsInvalidPuzzle(invalid) || IsMalformedInput(invalid) {
		t.Errorf("Conflict error misclassified")
	}
	if IsMalformedInput(argument) || IsInvalidPuzzle(argument) {
		t.Errorf("Argument error misclassified")
	}
	if IsMalformedInput(nil) || IsInvalidPuzzle(nil) {
		t.Errorf("Nil error misclassified")
	}
}

func TestErrorPredicatesWrapped(t *testing.T) {
	wrapped := fmt.Errorf("while loading puzzle: %w", lengthError(82))
	if !IsMalformedInput(wrapped) {
		t.Errorf("Wrapped length error not recognized as malformed input")
	}
	if IsInvalidPuzzle(wrapped) {
		t.Errorf("Wrapped length error misclassified as invalid puzzle")
	}
}
