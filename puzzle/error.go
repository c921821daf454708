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
	"errors"
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with an input string, a puzzle, or
// a requested operation.  It can produce an error message in
// English, but its main function is to let clients distinguish
// the two user-visible failure kinds (malformed input and invalid
// puzzle) and to carry enough detail for localized messaging: it
// tells the client "this thing failed to meet this condition" and
// provides supplemental details about the thing and the condition.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is
// referring to.  InputScope errors come from the text parser,
// before any puzzle exists; PuzzleScope errors come from puzzle
// construction; ArgumentScope errors come from caller-supplied
// arguments to operations on a valid puzzle; InternalScope errors
// indicate where in the code a logic failure occurred.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	InputScope
	PuzzleScope
	ArgumentScope
	InternalScope
	MaxScope
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	LengthAttribute
	CharacterAttribute
	CellAttribute
	DigitAttribute
	IndexAttribute
	DecodeAttribute
	EncodeAttribute
	LocationAttribute
	MaxAttribute
)

// The ErrorCondition is the predicate that the attribute's value
// failed to satisfy.  There are named predicates for the known
// failure modes and a "general" (arbitrary English string)
// predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	WrongLengthCondition
	BadCharacterCondition
	DuplicateDigitCondition
	TooSmallCondition
	TooLargeCondition
	OccupiedCellCondition
	NotACandidateCondition
	MaxCondition
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the offending cell and digit) as
// well as the predicate itself (such as the required length).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.  There
// is no good way to express this condition in a way the compiler
// can check, so implementors have to do the right thing.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will produce
// an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case InputScope:
		es = "Malformed input: "
	case PuzzleScope:
		es = "Invalid puzzle: "
	case ArgumentScope:
		es = "Invalid argument: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	switch e.Attribute {
	case LengthAttribute:
		es += "Length"
	case CharacterAttribute:
		es += fmt.Sprintf("Character %q at offset %v", nextVal(), nextVal())
	case CellAttribute:
		es += fmt.Sprintf("Cell %v", nextVal())
	case DigitAttribute:
		es += "Digit"
	case IndexAttribute:
		es += "Index"
	case DecodeAttribute:
		es += "JSON Decode error"
	case EncodeAttribute:
		es += "JSON Encode error"
	case LocationAttribute:
		es += fmt.Sprintf("In puzzle.%v", nextVal())
	}
	if e.Attribute != UnknownAttribute {
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case WrongLengthCondition:
		es += fmt.Sprintf("Must be %v cells, found %v", nextVal(), nextVal())
	case BadCharacterCondition:
		es += "Must be a digit 1-9, an empty-cell mark (. _ -), or whitespace"
	case DuplicateDigitCondition:
		es += fmt.Sprintf("Digit %v already appears in its %v", nextVal(), nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("Must be at least %v", nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("Must be at most %v", nextVal())
	case OccupiedCellCondition:
		es += fmt.Sprintf("Already holds digit %v", nextVal())
	case NotACandidateCondition:
		es += fmt.Sprintf("Digit %v conflicts with a row, column, or box neighbor", nextVal())
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

// IsMalformedInput reports whether err is an input-text error:
// the string form had the wrong length or an unexpected
// character, so no grid was ever built from it.
func IsMalformedInput(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Scope == InputScope
}

// IsInvalidPuzzle reports whether err is a puzzle-construction
// error: the given cells already violate row, column, or box
// uniqueness.
func IsInvalidPuzzle(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Scope == PuzzleScope
}

/*

Error constructors used across the package.

*/

// rangeError returns an Error that describes an out-of-range argument.
func rangeError(attr ErrorAttribute, val int, min int, max int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{max, val},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[0] = min
	}
	return err
}

// conflictError returns the Error for a digit that repeats within
// one of the cell's three units.  The unit name is "row",
// "column", or "box".
func conflictError(c Cell, digit int, unit string) Error {
	return Error{
		Scope:     PuzzleScope,
		Attribute: CellAttribute,
		Condition: DuplicateDigitCondition,
		Values:    ErrorData{c.String(), digit, unit},
	}
}

// lengthError returns the Error for an input string with the
// wrong number of cells.
func lengthError(found int) Error {
	return Error{
		Scope:     InputScope,
		Attribute: LengthAttribute,
		Condition: WrongLengthCondition,
		Values:    ErrorData{CellCount, found},
	}
}

// characterError returns the Error for an unexpected character at
// the given offset of the input string.
func characterError(ch rune, offset int) Error {
	return Error{
		Scope:     InputScope,
		Attribute: CharacterAttribute,
		Condition: BadCharacterCondition,
		Values:    ErrorData{string(ch), offset},
	}
}
