package puzzle

/*

Sudoku puzzle solver

The solver is classic depth-first backtracking guided by the
minimum-remaining-values heuristic:

1. Find the empty cell with the fewest legal candidate digits,
scanning in reading order so ties always break the same way.
(Any tie-break works; a fixed one keeps the search, and therefore
the first solution found, deterministic.)

2. If there is no empty cell, the board is complete, and because
every placement was constraint-checked, complete means solved.

3. Try each candidate digit for the chosen cell in ascending
order: place it, recurse, and if the recursion fails, clear it
and try the next.  A cell with zero candidates simply has nothing
to try, so a dead end falls out of the loop without being
signalled as a distinct condition.

Placement and removal are the only mutations, and every placement
made on a failed branch is undone on the way back out, so a
search that fails leaves the board exactly as it found it.  That
undo discipline is what lets the whole search run on one board
with O(depth) memory instead of copying the grid per branch.

Counting solutions walks the identical tree; the only difference
is what happens at a complete board, where it bumps a counter and
keeps backtracking instead of returning success.  An optional cap
on the counter is checked once per completed board, which is all
uniqueness testing needs: counting to 2 answers "zero, one, or
many" without enumerating solution sets that can be impractically
large.

*/

// selectCell returns the most constrained empty cell and its
// candidate set.  ok is false when the board has no empty cells.
// The scan stops early at a cell with one or zero candidates,
// since no cell can beat it.
func (b *Board) selectCell() (best Cell, cands digitSet, ok bool) {
	bestCount := SideLength + 1
	for r := 0; r < SideLength; r++ {
		for c := 0; c < SideLength; c++ {
			if b.cells[r][c] != 0 {
				continue
			}
			cell := Cell{r, c}
			cs := b.candidates(cell)
			if n := cs.count(); n < bestCount {
				best, cands, bestCount, ok = cell, cs, n, true
				if n <= 1 {
					return
				}
			}
		}
	}
	return
}

// Solve searches for a completion of the board.  It returns true
// with the board left in the (first) solved state, or false with
// the board restored to its pre-call state.  A false return is a
// definite answer, not a failure: the puzzle has no solution.
func (b *Board) Solve() bool {
	cell, cands, ok := b.selectCell()
	if !ok {
		return true
	}
	for d := 1; d <= SideLength; d++ {
		if !cands.has(d) {
			continue
		}
		b.place(cell, d)
		if b.Solve() {
			return true
		}
		b.clear(cell)
	}
	return false
}

// CountSolutions counts the completions of the board.  If max is
// positive, the search stops as soon as the count reaches it, so
// the result is a lower bound in that case (exact whenever it
// comes back below max).  A max of zero or less means count
// exhaustively.  The board is always restored to its pre-call
// state.
func (b *Board) CountSolutions(max int) int {
	count := 0
	b.countSolutions(max, &count)
	return count
}

// countSolutions is the recursive walk behind CountSolutions.  It
// returns true when the cap has been reached and the recursion
// should unwind; the clear before every return keeps the board
// restored even on the early-stop path.
func (b *Board) countSolutions(max int, count *int) bool {
	cell, cands, ok := b.selectCell()
	if !ok {
		*count++
		return max > 0 && *count >= max
	}
	for d := 1; d <= SideLength; d++ {
		if !cands.has(d) {
			continue
		}
		b.place(cell, d)
		stop := b.countSolutions(max, count)
		b.clear(cell)
		if stop {
			return true
		}
	}
	return false
}

// Unique reports whether the board has exactly one completion.
// It counts with a cap of 2, so the cost is bounded by finding
// the first two solutions rather than all of them.
func (b *Board) Unique() bool {
	return b.CountSolutions(2) == 1
}
