package puzzle

/*

Sudoku board representation

*/

import (
	"fmt"
	"math/bits"
)

// Board dimensions.  The model is fixed at the standard 9x9
// geometry with 3x3 boxes.
const (
	SideLength = 9
	BoxSide    = 3
	CellCount  = SideLength * SideLength
)

/*

Digit sets

*/

// A digitSet is a set of the digits 1 through 9, packed into the
// low nine bits of a uint16.  Digit d occupies bit d-1.  Using a
// fixed-size mask keeps membership, union, and complement at a
// handful of machine instructions and avoids any allocation
// during the solver's recursion.
type digitSet uint16

// allDigits has every digit present.
const allDigits digitSet = 1<<SideLength - 1

// singleton returns the set containing only digit d.
func singleton(d int) digitSet {
	return 1 << (d - 1)
}

// has reports whether digit d is in the set.
func (s digitSet) has(d int) bool {
	return s&singleton(d) != 0
}

// count returns the number of digits in the set.
func (s digitSet) count() int {
	return bits.OnesCount16(uint16(s))
}

// digits returns the members of the set in ascending order.
func (s digitSet) digits() []int {
	ds := make([]int, 0, s.count())
	for d := 1; d <= SideLength; d++ {
		if s.has(d) {
			ds = append(ds, d)
		}
	}
	return ds
}

/*

Cells

*/

// A Cell is one of the 81 board positions.  Rows and columns are
// 0-based internally; the print form uses the row letter and
// 1-based column number that solvers write, so Cell{0, 0} prints
// as "a1" and Cell{8, 8} as "i9".
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String gives the human form of a cell position.
func (c Cell) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.Row, c.Col+1)
}

// box returns the index of the cell's 3x3 box, numbered 0-8 in
// reading order.
func (c Cell) box() int {
	return (c.Row/BoxSide)*BoxSide + c.Col/BoxSide
}

/*

Boards

*/

// A Board holds the 9x9 grid of cell values together with three
// families of constraint sets: for each row, column, and box, the
// set of digits currently placed in it.  The sets are maintained
// on every mutation, never recomputed, so the legality of a digit
// for a cell is always a three-way union away.
//
// A Board is mutated in place during search (place, then clear on
// backtrack); no copies are made per branch.  The model does no
// locking: a Board belongs to exactly one in-flight search at a
// time, and concurrent callers must each own their own instance.
type Board struct {
	cells [SideLength][SideLength]int
	rows  [SideLength]digitSet
	cols  [SideLength]digitSet
	boxes [SideLength]digitSet
	empty int
}

// New creates a Board from a list of 81 cell values in reading
// order.  Values of 0 mean an empty cell.  Each given digit is
// placed one at a time under the same constraint check the solver
// uses, so a grid whose givens already repeat a digit within a
// row, column, or box fails construction with an invalid-puzzle
// Error naming the offending cell and digit.  This check is made
// here regardless of what any parser did earlier.
func New(values []int) (*Board, error) {
	if len(values) != CellCount {
		return nil, rangeError(LengthAttribute, len(values), CellCount, CellCount)
	}
	b := &Board{empty: CellCount}
	for i, v := range values {
		if v == 0 {
			continue
		}
		if v < 1 || v > SideLength {
			return nil, rangeError(DigitAttribute, v, 1, SideLength)
		}
		c := Cell{i / SideLength, i % SideLength}
		if unit, ok := b.conflict(c, v); !ok {
			return nil, conflictError(c, v, unit)
		}
		b.place(c, v)
	}
	return b, nil
}

// conflict checks a digit against the three constraint sets of an
// empty cell.  It returns ok when the digit is legal; otherwise
// it names the first unit (row, column, or box) that already
// holds the digit, for error reporting.
func (b *Board) conflict(c Cell, d int) (unit string, ok bool) {
	switch {
	case b.rows[c.Row].has(d):
		return "row", false
	case b.cols[c.Col].has(d):
		return "column", false
	case b.boxes[c.box()].has(d):
		return "box", false
	}
	return "", true
}

// place sets an empty cell to a digit and inserts the digit into
// the cell's row, column, and box sets.  The caller has already
// established that the cell is empty and the digit legal: the
// solver only ever offers candidates, and the public entry points
// check first.  Violating that contract is an engine bug, and the
// panic here is deliberate.
func (b *Board) place(c Cell, d int) {
	if b.cells[c.Row][c.Col] != 0 {
		panic(fmt.Errorf("place(%v, %d): cell already holds %d", c, d, b.cells[c.Row][c.Col]))
	}
	m := singleton(d)
	b.cells[c.Row][c.Col] = d
	b.rows[c.Row] |= m
	b.cols[c.Col] |= m
	b.boxes[c.box()] |= m
	b.empty--
}

// clear empties a filled cell, removing its digit from the three
// constraint sets.  This is the exact inverse of place and is
// used only for backtrack-undo.
func (b *Board) clear(c Cell) {
	d := b.cells[c.Row][c.Col]
	if d == 0 {
		panic(fmt.Errorf("clear(%v): cell is already empty", c))
	}
	m := singleton(d)
	b.cells[c.Row][c.Col] = 0
	b.rows[c.Row] &^= m
	b.cols[c.Col] &^= m
	b.boxes[c.box()] &^= m
	b.empty++
}

// candidates returns the set of digits legal for an empty cell:
// everything not already used by its row, column, or box.
func (b *Board) candidates(c Cell) digitSet {
	return allDigits &^ (b.rows[c.Row] | b.cols[c.Col] | b.boxes[c.box()])
}

/*

Accessors

*/

// Value returns the digit at a cell, or 0 if the cell is empty or
// the position is out of range.
func (b *Board) Value(row, col int) int {
	if row < 0 || row >= SideLength || col < 0 || col >= SideLength {
		return 0
	}
	return b.cells[row][col]
}

// Values returns the 81 cell values in reading order, 0 for
// empty.  The returned slice does not share storage with the
// board.
func (b *Board) Values() []int {
	vs := make([]int, 0, CellCount)
	for r := 0; r < SideLength; r++ {
		for c := 0; c < SideLength; c++ {
			vs = append(vs, b.cells[r][c])
		}
	}
	return vs
}

// Complete reports whether the board has no empty cells.  Because
// every placement is constraint-checked, a complete board is a
// valid solution; there is no separate final validation pass.
func (b *Board) Complete() bool {
	return b.empty == 0
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	return b.empty
}

// PossibleValues returns the digits that can legally be placed at
// the given empty cell, in ascending order.  It returns nil for a
// filled or out-of-range position.
func (b *Board) PossibleValues(row, col int) []int {
	if row < 0 || row >= SideLength || col < 0 || col >= SideLength {
		return nil
	}
	if b.cells[row][col] != 0 {
		return nil
	}
	return b.candidates(Cell{row, col}).digits()
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

/*

Public mutation

*/

// Assign places a digit at an empty cell on behalf of an
// interactive caller.  Unlike the internal place, it validates
// everything: position and digit range, the cell being empty, and
// the digit being a candidate.  On any failure the board is
// unchanged and an Error describes the problem.
func (b *Board) Assign(row, col, d int) error {
	if row < 0 || row >= SideLength {
		return rangeError(IndexAttribute, row, 0, SideLength-1)
	}
	if col < 0 || col >= SideLength {
		return rangeError(IndexAttribute, col, 0, SideLength-1)
	}
	if d < 1 || d > SideLength {
		return rangeError(DigitAttribute, d, 1, SideLength)
	}
	c := Cell{row, col}
	if held := b.cells[row][col]; held != 0 {
		return Error{
			Scope:     ArgumentScope,
			Attribute: CellAttribute,
			Condition: OccupiedCellCondition,
			Values:    ErrorData{c.String(), held},
		}
	}
	if !b.candidates(c).has(d) {
		return Error{
			Scope:     ArgumentScope,
			Attribute: CellAttribute,
			Condition: NotACandidateCondition,
			Values:    ErrorData{c.String(), d},
		}
	}
	b.place(c, d)
	return nil
}

// Unassign empties a previously assigned cell, the interactive
// inverse of Assign.
func (b *Board) Unassign(row, col int) error {
	if row < 0 || row >= SideLength {
		return rangeError(IndexAttribute, row, 0, SideLength-1)
	}
	if col < 0 || col >= SideLength {
		return rangeError(IndexAttribute, col, 0, SideLength-1)
	}
	if b.cells[row][col] == 0 {
		return nil
	}
	b.clear(Cell{row, col})
	return nil
}
