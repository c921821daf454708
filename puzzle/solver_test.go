package puzzle

import (
	"reflect"
	"testing"
)

/*

Test values

The two-solution fixture is the classic solution with the four
cells d6, d9, e6, e9 blanked.  Those cells hold 1 and 3 in a
rectangle spanning two boxes, so the two digits can be completed
in exactly two ways (the original and the swap).

*/

var (
	twoSolutionString = "" +
		"534678912" +
		"672195348" +
		"198342567" +
		"85976.42." +
		"42685.79." +
		"713924856" +
		"961537284" +
		"287419635" +
		"345286179"
	// the classic solution with a1, e5, i9 blanked; removing
	// three cells of a complete grid can never admit a second
	// completion, so this one is unique by construction
	threeBlankString = "" +
		".34678912" +
		"672195348" +
		"198342567" +
		"859761423" +
		"4268.3791" +
		"713924856" +
		"961537284" +
		"287419635" +
		"34528617."
	// a1 is empty, its row holds 2-9, and its column holds 1:
	// no digit fits, so the board is valid but unsolvable
	unsolvableString = "" +
		".23456789" +
		"1........" +
		"........." +
		"........." +
		"........." +
		"........." +
		"........." +
		"........." +
		"........."
)

// mustBoard builds a board from a fixture string, failing the
// test on any construction problem.
func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	values := make([]int, 0, CellCount)
	for _, ch := range s {
		if ch >= '1' && ch <= '9' {
			values = append(values, int(ch-'0'))
		} else {
			values = append(values, 0)
		}
	}
	b, err := New(values)
	if err != nil {
		t.Fatalf("Fixture construction failed: %v", err)
	}
	return b
}

// checkSolved verifies the defining property of a solution: every
// row, column, and box contains each digit exactly once.
func checkSolved(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < SideLength; i++ {
		var row, col, box digitSet
		for j := 0; j < SideLength; j++ {
			row |= singleton(b.Value(i, j))
			col |= singleton(b.Value(j, i))
			br, bc := (i/BoxSide)*BoxSide+j/BoxSide, (i%BoxSide)*BoxSide+j%BoxSide
			box |= singleton(b.Value(br, bc))
		}
		if row != allDigits {
			t.Errorf("Row %d is incomplete: %b", i, row)
		}
		if col != allDigits {
			t.Errorf("Column %d is incomplete: %b", i, col)
		}
		if box != allDigits {
			t.Errorf("Box %d is incomplete: %b", i, box)
		}
	}
}

/*

Solve

*/

func TestSolveClassic(t *testing.T) {
	b := mustBoard(t, classicPuzzleString)
	if !b.Solve() {
		t.Fatalf("Classic puzzle reported unsolvable")
	}
	if !b.Complete() {
		t.Fatalf("Solved board reports incomplete")
	}
	checkSolved(t, b)
	expected := mustBoard(t, classicSolutionString).Values()
	if got := b.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Solution is %v, expected %v", got, expected)
	}
}

func TestSolveAlreadyComplete(t *testing.T) {
	b := mustBoard(t, classicSolutionString)
	before := b.Values()
	if !b.Solve() {
		t.Fatalf("Complete board reported unsolvable")
	}
	if got := b.Values(); !reflect.DeepEqual(got, before) {
		t.Errorf("Solving a complete board changed it")
	}
}

func TestSolveUnsolvableRestores(t *testing.T) {
	b := mustBoard(t, unsolvableString)
	before := b.Values()
	if b.Solve() {
		t.Fatalf("Unsolvable board reported solved")
	}
	if got := b.Values(); !reflect.DeepEqual(got, before) {
		t.Errorf("Failed solve leaked placements: %v", got)
	}
	if n := b.EmptyCount(); n != CellCount-9 {
		t.Errorf("Empty count after failed solve is %d", n)
	}
}

func TestSolveEmptyBoard(t *testing.T) {
	b, err := New(make([]int, CellCount))
	if err != nil {
		t.Fatalf("Construction of empty board failed: %v", err)
	}
	if !b.Solve() {
		t.Fatalf("Empty board reported unsolvable")
	}
	checkSolved(t, b)
}

func TestSolvePicksEitherCompletion(t *testing.T) {
	// two completions exist; any valid one is acceptable
	b := mustBoard(t, twoSolutionString)
	if !b.Solve() {
		t.Fatalf("Two-solution board reported unsolvable")
	}
	checkSolved(t, b)
}

/*

CountSolutions

*/

func TestCountClassic(t *testing.T) {
	b := mustBoard(t, classicPuzzleString)
	before := b.Values()
	if n := b.CountSolutions(0); n != 1 {
		t.Errorf("Exhaustive count is %d, expected 1", n)
	}
	if n := b.CountSolutions(2); n != 1 {
		t.Errorf("Capped count is %d, expected 1", n)
	}
	if !b.Unique() {
		t.Errorf("Classic puzzle reported non-unique")
	}
	if got := b.Values(); !reflect.DeepEqual(got, before) {
		t.Errorf("Counting modified the board")
	}
}

func TestCountTwoSolutions(t *testing.T) {
	b := mustBoard(t, twoSolutionString)
	before := b.Values()
	cases := []struct {
		max      int
		expected int
	}{
		{0, 2},  // uncapped: exhaustive
		{-1, 2}, // non-positive caps mean uncapped
		{1, 1},  // early stop, strict lower bound
		{2, 2},
		{3, 2}, // cap above the total doesn't overcount
	}
	for _, tc := range cases {
		if n := b.CountSolutions(tc.max); n != tc.expected {
			t.Errorf("Count with max %d is %d, expected %d", tc.max, n, tc.expected)
		}
		if got := b.Values(); !reflect.DeepEqual(got, before) {
			t.Errorf("Count with max %d modified the board", tc.max)
		}
	}
	if b.Unique() {
		t.Errorf("Two-solution board reported unique")
	}
}

func TestCountUnsolvable(t *testing.T) {
	b := mustBoard(t, unsolvableString)
	if n := b.CountSolutions(0); n != 0 {
		t.Errorf("Count of unsolvable board is %d", n)
	}
	if b.Unique() {
		t.Errorf("Unsolvable board reported unique")
	}
}

func TestCountCompleteBoard(t *testing.T) {
	b := mustBoard(t, classicSolutionString)
	if n := b.CountSolutions(2); n != 1 {
		t.Errorf("Count of complete board is %d, expected 1", n)
	}
}

func TestCountEmptyBoardCapped(t *testing.T) {
	// exhaustive counting of an empty board is hopeless; the cap
	// keeps this to the first two completions
	b, err := New(make([]int, CellCount))
	if err != nil {
		t.Fatalf("Construction of empty board failed: %v", err)
	}
	if n := b.CountSolutions(2); n != 2 {
		t.Errorf("Capped count of empty board is %d, expected 2", n)
	}
	if n := b.EmptyCount(); n != CellCount {
		t.Errorf("Counting left %d cells filled", CellCount-n)
	}
}

func TestUniqueThreeBlanks(t *testing.T) {
	b := mustBoard(t, threeBlankString)
	if !b.Unique() {
		t.Errorf("Three-blank board reported non-unique")
	}
	if !b.Solve() {
		t.Fatalf("Three-blank board reported unsolvable")
	}
	expected := mustBoard(t, classicSolutionString).Values()
	if got := b.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Three-blank board solved to %v", got)
	}
}
