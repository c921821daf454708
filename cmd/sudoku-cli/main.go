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

// Command-line client for the sudoku solver.  Works entirely in
// memory, so it needs no storage backends.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ninefold/sudoku/puzzle"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel)
	session = newSession(defaultPuzzleName)
	if err := listener(os.Stdout, os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("CLI failure")
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(out, "sudoku> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if prompt {
					fmt.Fprintf(out, " (read error)\n")
				}
				return err
			}
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		}
		r := &request{inline: strings.Trim(scanner.Text(), " \t\r\n")}
		args := strings.Split(r.inline, " ")
		r.command = strings.ToLower(args[0])
		switch r.command {
		case "":
			continue
		case "quit":
			fallthrough
		case "exit":
			return nil
		}
		for _, arg := range args[1:] {
			if len(arg) > 0 {
				r.args = append(r.args, strings.ToLower(arg))
			}
		}
		dispatchCommand(out, r)
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*cliSession, io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"assign", "cell digit", "fill a cell, e.g. 'assign a1 5'", assignHandler},
		{"back", "", "undo the last assign or erase", backHandler},
		{"candidates", "cell", "show the digits a cell can take", candidatesHandler},
		{"count", "[max]", "count solutions, stopping at max if given", countHandler},
		{"encode", "", "print the 81-character puzzle text", encodeHandler},
		{"erase", "cell", "empty a cell you filled", eraseHandler},
		{"id", "", "print the puzzle's stable ID", idHandler},
		{"load", "name|text", "start a sample or an 81-character puzzle", loadHandler},
		{"reset", "", "go back to the loaded puzzle", resetHandler},
		{"samples", "", "list the built-in sample puzzles", samplesHandler},
		{"show", "", "show the current board", showHandler},
		{"solve", "", "show a completion of the current board", solveHandler},
		{"unique", "", "say whether the board has exactly one solution", uniqueHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

func loadHandler(s *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a sample name or puzzle text", r.command), w, r)
		return
	}
	arg := r.args[0]
	if _, ok := samplePuzzles[arg]; ok {
		*s = *newSession(arg)
	} else {
		board, err := puzzle.Parse(arg)
		if err != nil {
			fmt.Fprintf(w, "Load failed: %v\n", err)
			return
		}
		*s = *boardSession(board)
	}
	showHandler(s, w, r)
}

func showHandler(s *cliSession, w io.Writer, r *request) {
	if s.name != "" {
		fmt.Fprintf(w, "Puzzle %q, %d empty cells:\n", s.name, s.current().EmptyCount())
	} else {
		fmt.Fprintf(w, "Puzzle %s..., %d empty cells:\n",
			s.current().ID()[:8], s.current().EmptyCount())
	}
	fmt.Fprint(w, s.current())
}

func assignHandler(s *cliSession, w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires a cell and a digit", r.command), w, r)
		return
	}
	row, col, ok := parseCell(r.args[0])
	if !ok {
		usageHandler(fmt.Sprintf("%q is not a cell like a1", r.args[0]), w, r)
		return
	}
	digit, err := strconv.Atoi(r.args[1])
	if err != nil {
		usageHandler(fmt.Sprintf("%s digit (%s) must be a number", r.command, r.args[1]), w, r)
		return
	}
	next := s.current().Copy()
	if err := next.Assign(row, col, digit); err != nil {
		fmt.Fprintf(w, "Assign failed: %v\n", err)
		return
	}
	s.push(next)
	if next.Complete() {
		fmt.Fprintf(w, "Assign succeeded; the board is complete:\n")
	} else if !next.Copy().Solve() {
		fmt.Fprintf(w, "Assign succeeded but made the puzzle unsolvable:\n")
	} else {
		fmt.Fprintf(w, "Assign succeeded:\n")
	}
	fmt.Fprint(w, next)
}

func eraseHandler(s *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a cell", r.command), w, r)
		return
	}
	row, col, ok := parseCell(r.args[0])
	if !ok {
		usageHandler(fmt.Sprintf("%q is not a cell like a1", r.args[0]), w, r)
		return
	}
	next := s.current().Copy()
	if err := next.Unassign(row, col); err != nil {
		fmt.Fprintf(w, "Erase failed: %v\n", err)
		return
	}
	s.push(next)
	showHandler(s, w, r)
}

func backHandler(s *cliSession, w io.Writer, r *request) {
	if !s.pop() {
		fmt.Fprintf(w, "Nothing to undo.\n")
		return
	}
	showHandler(s, w, r)
}

func resetHandler(s *cliSession, w io.Writer, r *request) {
	s.steps = s.steps[:1]
	showHandler(s, w, r)
}

func candidatesHandler(s *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a cell", r.command), w, r)
		return
	}
	row, col, ok := parseCell(r.args[0])
	if !ok {
		usageHandler(fmt.Sprintf("%q is not a cell like a1", r.args[0]), w, r)
		return
	}
	if d := s.current().Value(row, col); d != 0 {
		fmt.Fprintf(w, "Cell %s holds %d.\n", r.args[0], d)
		return
	}
	fmt.Fprintf(w, "Cell %s can take %v.\n", r.args[0], s.current().PossibleValues(row, col))
}

func solveHandler(s *cliSession, w io.Writer, r *request) {
	solved := s.current().Copy()
	if !solved.Solve() {
		fmt.Fprintf(w, "The board has no solution.\n")
		return
	}
	fmt.Fprintf(w, "Solved:\n")
	fmt.Fprint(w, solved)
}

func countHandler(s *cliSession, w io.Writer, r *request) {
	max := 0
	if len(r.args) > 0 {
		var err error
		if max, err = strconv.Atoi(r.args[0]); err != nil {
			usageHandler(fmt.Sprintf("%s max (%s) must be a number", r.command, r.args[0]), w, r)
			return
		}
	}
	n := s.current().CountSolutions(max)
	if max > 0 && n == max {
		fmt.Fprintf(w, "The board has at least %d solutions.\n", n)
	} else {
		fmt.Fprintf(w, "The board has %d solutions.\n", n)
	}
}

func uniqueHandler(s *cliSession, w io.Writer, r *request) {
	if s.current().Unique() {
		fmt.Fprintf(w, "The board has exactly one solution.\n")
	} else {
		fmt.Fprintf(w, "The board does not have exactly one solution.\n")
	}
}

func encodeHandler(s *cliSession, w io.Writer, r *request) {
	fmt.Fprintf(w, "%s\n", s.current().Encoding())
}

func idHandler(s *cliSession, w io.Writer, r *request) {
	fmt.Fprintf(w, "%s\n", s.current().ID())
}

func samplesHandler(s *cliSession, w io.Writer, r *request) {
	for _, name := range sampleNames {
		board, _ := puzzle.Parse(samplePuzzles[name])
		fmt.Fprintf(w, "    %s\t%d empty cells\n", name, board.EmptyCount())
	}
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %10s %-11s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Error().Interface("cause", err).Str("input", r.inline).Msg("panic in command")
}

/*

the in-memory session

*/

// A cliSession is the working state: the loaded puzzle plus every
// board the user has stepped through, so back can undo.
type cliSession struct {
	name  string // sample name, empty for pasted puzzles
	steps []*puzzle.Board
}

var session *cliSession

func newSession(name string) *cliSession {
	board, err := puzzle.Parse(samplePuzzles[name])
	if err != nil {
		panic(fmt.Errorf("Can't happen! Sample %q is invalid: %v", name, err))
	}
	return &cliSession{name: name, steps: []*puzzle.Board{board}}
}

func boardSession(board *puzzle.Board) *cliSession {
	return &cliSession{steps: []*puzzle.Board{board}}
}

func (s *cliSession) current() *puzzle.Board {
	return s.steps[len(s.steps)-1]
}

func (s *cliSession) push(b *puzzle.Board) {
	s.steps = append(s.steps, b)
}

func (s *cliSession) pop() bool {
	if len(s.steps) <= 1 {
		return false
	}
	s.steps[len(s.steps)-1] = nil // release the board
	s.steps = s.steps[:len(s.steps)-1]
	return true
}

// parseCell turns "e5" into row and column numbers.
func parseCell(arg string) (row, col int, ok bool) {
	if len(arg) != 2 {
		return 0, 0, false
	}
	row = int(arg[0] - 'a')
	col = int(arg[1] - '1')
	if row < 0 || row >= puzzle.SideLength || col < 0 || col >= puzzle.SideLength {
		return 0, 0, false
	}
	return row, col, true
}

/*

built-in puzzles

*/

const defaultPuzzleName = "1-star"

// the samples, in increasing difficulty
var (
	sampleNames   = []string{"1-star", "2-star", "3-star", "4-star", "5-star", "6-star"}
	samplePuzzles = map[string]string{
		"1-star": "4....35.2" +
			"..95.634." +
			"........8" +
			"....3486." +
			"..46.52.." +
			".2879...." +
			"9........" +
			".873.29.." +
			"5.29....6",
		"2-star": ".1.5.6.2." +
			".....3.18" +
			"....7...6" +
			"..5....3." +
			"..8.9.7.." +
			".6....4.." +
			"5...4...." +
			"64.2....." +
			".3.9.1.8.",
		"3-star": "9..45...8" +
			".2......." +
			"...1724.." +
			".79...68." +
			"2.......5" +
			".43...27." +
			"..8325..." +
			".......6." +
			"4...16..3",
		"4-star": "948.5.2.." +
			"..78.3..1" +
			".5..7...." +
			".7....3.." +
			"2..6.5..4" +
			"..5....9." +
			"....6..1." +
			"3..5.97.." +
			"..6.1.423",
		"5-star": "........." +
			"9..5.7.3." +
			"...1..6.7" +
			".4..6..82" +
			"67.....13" +
			"38..1..9." +
			"7.5..8..." +
			".2.3.9..8" +
			".........",
		"6-star": "1....7.9." +
			".3..2...8" +
			"..96..5.." +
			"..53..9.." +
			".1..8...2" +
			"6....4..." +
			"3......1." +
			".4......7" +
			"..7...3..",
	}
)
