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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

/*

Text form of puzzles

The canonical text form is 81 characters in reading order: the
digits 1-9 for filled cells and '.' for empty ones.  On input we
additionally accept '_' and '-' for empty cells and ignore all
whitespace, since published puzzles come formatted every which
way.

*/

// emptyGlyphs are the characters accepted as an empty cell on
// input.  The first one is used on output.
const emptyGlyphs = "._-"

// Parse builds a Board from the text form of a puzzle.  The input
// must contain exactly 81 cell characters after whitespace is
// dropped; anything else in the string is rejected with a
// malformed-input Error identifying the character and its offset,
// before any grid is built.  The assembled grid then goes through
// New, so a well-formed string whose digits break the row, column,
// or box rule still fails, with an invalid-puzzle Error.
func Parse(s string) (*Board, error) {
	values := make([]int, 0, CellCount)
	for i, ch := range s {
		switch {
		case unicode.IsSpace(ch):
			continue
		case ch >= '1' && ch <= '9':
			values = append(values, int(ch-'0'))
		case strings.ContainsRune(emptyGlyphs, ch):
			values = append(values, 0)
		default:
			return nil, characterError(ch, i)
		}
	}
	if len(values) != CellCount {
		return nil, lengthError(len(values))
	}
	return New(values)
}

// Encoding returns the canonical 81-character text form of the
// board: digits for filled cells, '.' for empty ones.
func (b *Board) Encoding() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for r := 0; r < SideLength; r++ {
		for c := 0; c < SideLength; c++ {
			if d := b.cells[r][c]; d != 0 {
				sb.WriteByte(byte('0' + d))
			} else {
				sb.WriteByte(emptyGlyphs[0])
			}
		}
	}
	return sb.String()
}

// ID returns a stable identifier for the board's current
// contents: the hex SHA-256 of its canonical encoding.  Two
// boards with the same cell values always share an ID, however
// their inputs were formatted.
func (b *Board) ID() string {
	sum := sha256.Sum256([]byte(b.Encoding()))
	return hex.EncodeToString(sum[:])
}

/*

Pretty-printed boards in strings.

*/

// String gives a bordered view of the board with the cells
// grouped into their 3x3 boxes, one character position per cell.
// Rows are lettered and columns numbered to match the Cell print
// form.  Formatting is for human eyes only; it has no effect on
// solving.
func (b *Board) String() (result string) {
	if b == nil {
		return
	}
	// header line with column numbers
	result += " "
	for c := 0; c < SideLength; c++ {
		if c%BoxSide == 0 {
			result += "|"
		} else {
			result += " "
		}
		result += fmt.Sprintf("%2d ", c+1)
	}
	result += "\n"
	// rows, with a separator above each band of boxes and at the bottom
	separator := " " + strings.Repeat("+---", SideLength) + "\n"
	for r, hdr := 0, 'a'; r < SideLength; r, hdr = r+1, hdr+1 {
		if r%BoxSide == 0 {
			result += separator
		}
		result += string(hdr)
		for c := 0; c < SideLength; c++ {
			if c%BoxSide == 0 {
				result += "|"
			} else {
				result += " "
			}
			if d := b.cells[r][c]; d != 0 {
				result += fmt.Sprintf(" %d ", d)
			} else {
				result += " _ "
			}
		}
		result += "\n"
	}
	result += separator
	return
}
