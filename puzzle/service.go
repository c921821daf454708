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
	"encoding/json"
	"fmt"
	"net/http"
)

/*

Solving service

The handlers in this file are the RESTful form of the solver API.
They speak plain net/http so they can be mounted under any router,
and they return their domain results to the golang caller as well
as to the web client, so a server can persist what was computed.

*/

// A SolveRequest asks for one completion of a puzzle, given in
// its 81-character text form.
type SolveRequest struct {
	Puzzle string `json:"puzzle"`
}

// A SolveResponse reports the outcome of a solve.  When Solved is
// true, Solution holds the completed board's text form and Values
// its 81 cell values.  PuzzleID identifies the input puzzle.
type SolveResponse struct {
	PuzzleID string `json:"puzzleId"`
	Solved   bool   `json:"solved"`
	Solution string `json:"solution,omitempty"`
	Values   []int  `json:"values,omitempty"`
}

// A CountRequest asks how many completions a puzzle has.
// MaxSolutions of 0 (or below) means count exhaustively;
// uniqueness testers pass 2.
type CountRequest struct {
	Puzzle       string `json:"puzzle"`
	MaxSolutions int    `json:"maxSolutions"`
}

// A CountResponse reports a solution count.  Capped is true when
// the search stopped early at MaxSolutions, in which case Count
// is a lower bound rather than the exhaustive total.
type CountResponse struct {
	PuzzleID string `json:"puzzleId"`
	Count    int    `json:"count"`
	Capped   bool   `json:"capped"`
}

// A SolveOutcome is the golang caller's copy of what a solve
// handler computed: the input board as given, and the solved
// board when one was found.
type SolveOutcome struct {
	Input    *Board
	Solved   bool
	Solution *Board
}

// A CountOutcome is the golang caller's copy of what a count
// handler computed.
type CountOutcome struct {
	Input  *Board
	Count  int
	Capped bool
}

// SolveHandler is a POST handler that reads a JSON-encoded
// SolveRequest, parses the puzzle, and searches for a completion.
// The SolveResponse is sent as a 200 response and the outcome is
// returned to the golang caller.  Malformed input and invalid
// puzzles are sent as 400 responses carrying the Error, and the
// Error is returned to the caller.
//
// If we can't encode the response to the client (which should
// never happen), the client gets an error response and the golang
// caller gets both the outcome and the encoding Error, as a
// signal that the client didn't see the result.
func SolveHandler(w http.ResponseWriter, r *http.Request) (*SolveOutcome, error) {
	dec := json.NewDecoder(r.Body)
	var req SolveRequest
	if e := dec.Decode(&req); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	board, e := Parse(req.Puzzle)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"SolveHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	outcome := &SolveOutcome{Input: board.Copy()}
	resp := SolveResponse{PuzzleID: board.ID()}
	if board.Solve() {
		outcome.Solved, outcome.Solution = true, board
		resp.Solved = true
		resp.Solution = board.Encoding()
		resp.Values = board.Values()
	}
	return outcome, writeJSON(resp, http.StatusOK, w, r)
}

// CountHandler is a POST handler that reads a JSON-encoded
// CountRequest and counts the puzzle's completions, stopping
// early at MaxSolutions when that is positive.  Status handling
// mirrors SolveHandler.
func CountHandler(w http.ResponseWriter, r *http.Request) (*CountOutcome, error) {
	dec := json.NewDecoder(r.Body)
	var req CountRequest
	if e := dec.Decode(&req); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	board, e := Parse(req.Puzzle)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"CountHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	count := board.CountSolutions(req.MaxSolutions)
	outcome := &CountOutcome{
		Input:  board,
		Count:  count,
		Capped: req.MaxSolutions > 0 && count == req.MaxSolutions,
	}
	resp := CountResponse{
		PuzzleID: board.ID(),
		Count:    outcome.Count,
		Capped:   outcome.Capped,
	}
	return outcome, writeJSON(resp, http.StatusOK, w, r)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	errorFormatError
)

// writeError sends back a server error of the given type, sort of
// like http.Error, but it sends the JSON form of an appropriate
// Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     InputScope,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				fmt.Sprintf("Unknown handler error type (%v)", et),
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means the JSON encoding system is dead,
			// so pseudo-encode the error by hand by returning
			// the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
