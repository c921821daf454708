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

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/ninefold/sudoku/puzzle"
)

/*

solver results

A Result is the stored record of everything the solver has
computed about one puzzle.  Results live in the database and are
cached in Redis under their puzzle ID; loads go cache-first and
backfill the cache on a database hit.

*/

// A Result holds what is known about a stored puzzle.  Solution
// is empty until a solve has been saved; SolutionCount is -1
// until a count has been saved.  An unsolvable puzzle gets an
// empty Solution and a SolutionCount of 0.  Named results are the
// built-in sample puzzles.
type Result struct {
	PuzzleID      string    `json:"puzzleId"`
	Name          string    `json:"name,omitempty"`
	Encoding      string    `json:"encoding"`
	Solution      string    `json:"solution,omitempty"`
	SolutionCount int       `json:"solutionCount"`
	Capped        bool      `json:"capped"`
	Created       time.Time `json:"created"`
}

// SaveSolution records the outcome of a solve, creating the
// puzzle's Result if this is the first thing saved about it.  A
// failed solve means the puzzle has no completions, so it is
// recorded as a count of zero.
func SaveSolution(o *puzzle.SolveOutcome) *Result {
	r := loadOrCreateResult(o.Input)
	if o.Solved {
		r.Solution = o.Solution.Encoding()
	} else {
		r.SolutionCount, r.Capped = 0, false
	}
	r.databaseUpsert()
	r.cacheInsert()
	return r
}

// SaveCount records the outcome of a solution count.  An
// exhaustive count overwrites a capped one; a capped count only
// overwrites a smaller capped one, since a lower bound never
// improves on what is already known.
func SaveCount(o *puzzle.CountOutcome) *Result {
	r := loadOrCreateResult(o.Input)
	known := r.SolutionCount >= 0 && !r.Capped
	if !known && (!o.Capped || o.Count > r.SolutionCount) {
		r.SolutionCount, r.Capped = o.Count, o.Capped
	} else if !o.Capped {
		r.SolutionCount, r.Capped = o.Count, false
	}
	r.databaseUpsert()
	r.cacheInsert()
	return r
}

// LoadResult finds the stored Result for a puzzle ID, or nil if
// nothing has been stored under that ID.
func LoadResult(id string) *Result {
	r := &Result{PuzzleID: id}
	if r.cacheLoad() {
		return r
	}
	if !r.databaseLoad() {
		return nil
	}
	// cache miss, database hit: backfill the cache
	r.cacheInsert()
	return r
}

// NamedResults returns the stored named puzzles (the built-in
// samples), sorted by name.
func NamedResults() []*Result {
	var results []*Result
	body := func(tx pgx.Tx) error {
		rows, err := tx.Query(context.Background(),
			"SELECT puzzle_id, name, encoding, solution, solution_count, capped, created "+
				"FROM puzzles WHERE name <> '' ORDER BY name")
		if err != nil {
			return fmt.Errorf("Database failure listing named puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			r := &Result{}
			if err := rows.Scan(&r.PuzzleID, &r.Name, &r.Encoding,
				&r.Solution, &r.SolutionCount, &r.Capped, &r.Created); err != nil {
				return fmt.Errorf("Database failure reading named puzzle: %v", err)
			}
			results = append(results, r)
		}
		return rows.Err()
	}
	pgExecute(body)
	return results
}

// loadOrCreateResult finds the stored Result for a board, or
// starts a fresh one when the board has never been saved.
func loadOrCreateResult(b *puzzle.Board) *Result {
	if r := LoadResult(b.ID()); r != nil {
		return r
	}
	return &Result{
		PuzzleID:      b.ID(),
		Encoding:      b.Encoding(),
		SolutionCount: -1,
		Created:       time.Now(),
	}
}

/*

cache form

*/

// key: compute the cache key for a Result.
func (r *Result) key() string {
	return "RES:" + r.PuzzleID
}

// cacheLoad: load an already cached Result.  Returns whether the
// entry was found in the cache.
func (r *Result) cacheLoad() bool {
	var bytes []byte
	body := func(conn redis.Conn) (err error) {
		bytes, err = redis.Bytes(conn.Do("GET", r.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading result %q: %v", r.PuzzleID, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sr *Result
	if err := json.Unmarshal(bytes, &sr); err != nil {
		panic(fmt.Errorf("Failed to unmarshal result %q: %v", r.PuzzleID, err))
	}
	if sr.PuzzleID != r.PuzzleID {
		panic(fmt.Errorf("Cached result (id: %q) found for puzzle %q!", sr.PuzzleID, r.PuzzleID))
	}
	*r = *sr
	return true
}

// cacheInsert: insert a Result into the cache.  Replaces any
// existing entry with the same id.
func (r *Result) cacheInsert() {
	bytes, e := json.Marshal(r)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal result %q: %v", r.PuzzleID, e))
	}
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("SET", r.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving result %q: %v", r.PuzzleID, err)
		}
		return
	}
	rdExecute(body)
}

/*

database form

*/

// databaseLoad: load a Result from the database.  Returns whether
// a row with the given id exists.
func (r *Result) databaseLoad() (found bool) {
	body := func(tx pgx.Tx) error {
		row := tx.QueryRow(context.Background(),
			"SELECT name, encoding, solution, solution_count, capped, created "+
				"FROM puzzles WHERE puzzle_id = $1", r.PuzzleID)
		err := row.Scan(&r.Name, &r.Encoding, &r.Solution,
			&r.SolutionCount, &r.Capped, &r.Created)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", r.PuzzleID, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// databaseUpsert: write a Result to the database, replacing the
// stored solver fields of an existing row with the same id.
func (r *Result) databaseUpsert() {
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(context.Background(),
			"INSERT INTO puzzles (puzzle_id, name, encoding, solution, solution_count, capped, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6, $7) "+
				"ON CONFLICT (puzzle_id) DO UPDATE SET "+
				"solution = EXCLUDED.solution, "+
				"solution_count = EXCLUDED.solution_count, "+
				"capped = EXCLUDED.capped",
			r.PuzzleID, r.Name, r.Encoding, r.Solution, r.SolutionCount, r.Capped, r.Created)
		if err != nil {
			err = fmt.Errorf("Database error saving result %q: %v", r.PuzzleID, err)
		}
		return
	}
	pgExecute(body)
}
