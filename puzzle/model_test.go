package puzzle

import (
	"reflect"
	"testing"
)

/*

Test values

*/

var (
	// the classic example puzzle and its (unique) solution
	classicPuzzleString = "" +
		"53..7...." +
		"6..195..." +
		".98....6." +
		"8...6...3" +
		"4..8.3..1" +
		"7...2...6" +
		".6....28." +
		"...419..5" +
		"....8..79"
	classicSolutionString = "" +
		"534678912" +
		"672195348" +
		"198342567" +
		"859761423" +
		"426853791" +
		"713924856" +
		"961537284" +
		"287419635" +
		"345286179"
)

// stringValues converts an 81-character fixture string to cell
// values without going through Parse, so model tests don't depend
// on the parser.
func stringValues(t *testing.T, s string) []int {
	t.Helper()
	if len(s) != CellCount {
		t.Fatalf("Fixture string has %d cells, expected %d", len(s), CellCount)
	}
	values := make([]int, CellCount)
	for i, ch := range s {
		if ch >= '1' && ch <= '9' {
			values[i] = int(ch - '0')
		}
	}
	return values
}

/*

Digit sets

*/

func TestDigitSetMembers(t *testing.T) {
	var s digitSet
	if s.count() != 0 {
		t.Errorf("Empty set has count %d", s.count())
	}
	for d := 1; d <= SideLength; d++ {
		if s.has(d) {
			t.Errorf("Empty set contains %d", d)
		}
		s |= singleton(d)
		if !s.has(d) {
			t.Errorf("Set doesn't contain %d after insert", d)
		}
		if s.count() != d {
			t.Errorf("Set count after %d inserts is %d", d, s.count())
		}
	}
	if s != allDigits {
		t.Errorf("Full set is %b, expected %b", s, allDigits)
	}
}

func TestDigitSetDigits(t *testing.T) {
	s := singleton(2) | singleton(5) | singleton(9)
	expected := []int{2, 5, 9}
	if ds := s.digits(); !reflect.DeepEqual(ds, expected) {
		t.Errorf("Digits of set are %v, expected %v", ds, expected)
	}
	if ds := allDigits.digits(); len(ds) != SideLength {
		t.Errorf("Full set has %d digits", len(ds))
	}
}

/*

Cells

*/

func TestCellString(t *testing.T) {
	cases := []struct {
		cell     Cell
		expected string
	}{
		{Cell{0, 0}, "a1"},
		{Cell{0, 8}, "a9"},
		{Cell{3, 4}, "d5"},
		{Cell{8, 8}, "i9"},
	}
	for _, tc := range cases {
		if s := tc.cell.String(); s != tc.expected {
			t.Errorf("String of %+v is %q, expected %q", tc.cell, s, tc.expected)
		}
	}
}

func TestCellBox(t *testing.T) {
	cases := []struct {
		cell Cell
		box  int
	}{
		{Cell{0, 0}, 0},
		{Cell{2, 2}, 0},
		{Cell{0, 3}, 1},
		{Cell{4, 4}, 4},
		{Cell{5, 3}, 4},
		{Cell{6, 0}, 6},
		{Cell{8, 8}, 8},
	}
	for _, tc := range cases {
		if b := tc.cell.box(); b != tc.box {
			t.Errorf("Box of %v is %d, expected %d", tc.cell, b, tc.box)
		}
	}
}

/*

Construction

*/

func TestNewWrongLength(t *testing.T) {
	_, err := New(make([]int, CellCount-1))
	if err == nil {
		t.Fatalf("Construction from %d values succeeded", CellCount-1)
	}
	_, err = New(make([]int, CellCount+1))
	if err == nil {
		t.Fatalf("Construction from %d values succeeded", CellCount+1)
	}
}

func TestNewValueRange(t *testing.T) {
	values := make([]int, CellCount)
	values[40] = 10
	if _, err := New(values); err == nil {
		t.Fatalf("Construction with value 10 succeeded")
	}
	values[40] = -1
	if _, err := New(values); err == nil {
		t.Fatalf("Construction with value -1 succeeded")
	}
}

func TestNewRowConflict(t *testing.T) {
	values := make([]int, CellCount)
	values[0], values[5] = 5, 5 // two 5s in row a
	_, err := New(values)
	if err == nil {
		t.Fatalf("Construction with duplicate row digits succeeded")
	}
	if !IsInvalidPuzzle(err) {
		t.Errorf("Conflict error not an invalid-puzzle error: %v", err)
	}
	e, ok := err.(Error)
	if !ok {
		t.Fatalf("Conflict error is not an Error: %v", err)
	}
	expected := ErrorData{"a6", 5, "row"}
	if !reflect.DeepEqual(e.Values, expected) {
		t.Errorf("Conflict error values are %v, expected %v", e.Values, expected)
	}
}

func TestNewColumnConflict(t *testing.T) {
	values := make([]int, CellCount)
	values[0], values[3*SideLength] = 7, 7 // 7s at a1 and d1
	_, err := New(values)
	if !IsInvalidPuzzle(err) {
		t.Fatalf("Column conflict gave %v", err)
	}
	if e := err.(Error); !reflect.DeepEqual(e.Values, ErrorData{"d1", 7, "column"}) {
		t.Errorf("Conflict error values are %v", e.Values)
	}
}

func TestNewBoxConflict(t *testing.T) {
	values := make([]int, CellCount)
	values[0], values[SideLength+1] = 7, 7 // 7s at a1 and b2, same box
	_, err := New(values)
	if !IsInvalidPuzzle(err) {
		t.Fatalf("Box conflict gave %v", err)
	}
	if e := err.(Error); !reflect.DeepEqual(e.Values, ErrorData{"b2", 7, "box"}) {
		t.Errorf("Conflict error values are %v", e.Values)
	}
}

func TestNewRoundTrip(t *testing.T) {
	values := stringValues(t, classicPuzzleString)
	b, err := New(values)
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	if got := b.Values(); !reflect.DeepEqual(got, values) {
		t.Errorf("Values round trip gave %v, expected %v", got, values)
	}
}

/*

Accessors

*/

func TestEmptyCountAndComplete(t *testing.T) {
	b, err := New(stringValues(t, classicPuzzleString))
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	if n := b.EmptyCount(); n != 51 {
		t.Errorf("Empty count is %d, expected 51", n)
	}
	if b.Complete() {
		t.Errorf("Partial board reports complete")
	}
	full, err := New(stringValues(t, classicSolutionString))
	if err != nil {
		t.Fatalf("Construction of solution failed: %v", err)
	}
	if n := full.EmptyCount(); n != 0 {
		t.Errorf("Empty count of solution is %d", n)
	}
	if !full.Complete() {
		t.Errorf("Full board reports incomplete")
	}
}

func TestPossibleValues(t *testing.T) {
	b, err := New(stringValues(t, classicPuzzleString))
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	// a3 sees 5, 3, 7 in its row, 8 in its column, and
	// 5, 3, 6, 9, 8 in its box
	expected := []int{1, 2, 4}
	if pv := b.PossibleValues(0, 2); !reflect.DeepEqual(pv, expected) {
		t.Errorf("Possible values for a3 are %v, expected %v", pv, expected)
	}
	// filled cells have no possible values
	if pv := b.PossibleValues(0, 0); pv != nil {
		t.Errorf("Possible values for filled a1 are %v", pv)
	}
	// out of range positions have no possible values
	if pv := b.PossibleValues(-1, 0); pv != nil {
		t.Errorf("Possible values for row -1 are %v", pv)
	}
}

func TestValueAccessor(t *testing.T) {
	b, err := New(stringValues(t, classicPuzzleString))
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	if v := b.Value(0, 0); v != 5 {
		t.Errorf("Value at a1 is %d, expected 5", v)
	}
	if v := b.Value(0, 2); v != 0 {
		t.Errorf("Value at a3 is %d, expected 0", v)
	}
	if v := b.Value(9, 9); v != 0 {
		t.Errorf("Value out of range is %d, expected 0", v)
	}
}

func TestCopyIndependence(t *testing.T) {
	b, err := New(stringValues(t, classicPuzzleString))
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	c := b.Copy()
	if e := c.Assign(0, 2, 1); e != nil {
		t.Fatalf("Assign to copy failed: %v", e)
	}
	if v := b.Value(0, 2); v != 0 {
		t.Errorf("Assign to copy modified original: a3 is %d", v)
	}
	if v := c.Value(0, 2); v != 1 {
		t.Errorf("Assign to copy didn't stick: a3 is %d", v)
	}
}

/*

Assign and Unassign

*/

func TestAssignUpdatesConstraints(t *testing.T) {
	b, err := New(make([]int, CellCount))
	if err != nil {
		t.Fatalf("Construction of empty board failed: %v", err)
	}
	if e := b.Assign(4, 4, 5); e != nil {
		t.Fatalf("Assign failed: %v", e)
	}
	// 5 is now illegal everywhere in row e, column 5, and the center box
	for _, pos := range []Cell{{4, 0}, {0, 4}, {3, 3}} {
		pv := b.PossibleValues(pos.Row, pos.Col)
		for _, d := range pv {
			if d == 5 {
				t.Errorf("5 still possible at %v after assign", pos)
			}
		}
		if len(pv) != SideLength-1 {
			t.Errorf("%v has %d possible values, expected %d", pos, len(pv), SideLength-1)
		}
	}
	// clearing restores the full candidate set
	if e := b.Unassign(4, 4); e != nil {
		t.Fatalf("Unassign failed: %v", e)
	}
	if pv := b.PossibleValues(4, 4); len(pv) != SideLength {
		t.Errorf("Cleared cell has %d possible values", len(pv))
	}
	if n := b.EmptyCount(); n != CellCount {
		t.Errorf("Empty count after assign/unassign is %d", n)
	}
}

func TestAssignErrors(t *testing.T) {
	b, err := New(stringValues(t, classicPuzzleString))
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	before := b.Values()
	cases := []struct {
		name          string
		row, col, val int
	}{
		{"row out of range", 9, 0, 1},
		{"column out of range", 0, -1, 1},
		{"digit too big", 0, 2, 10},
		{"digit too small", 0, 2, 0},
		{"occupied cell", 0, 0, 1},
		{"conflicting digit", 0, 2, 5},
	}
	for _, tc := range cases {
		if e := b.Assign(tc.row, tc.col, tc.val); e == nil {
			t.Errorf("Assign with %s succeeded", tc.name)
		}
	}
	if got := b.Values(); !reflect.DeepEqual(got, before) {
		t.Errorf("Failed assigns modified the board")
	}
}
