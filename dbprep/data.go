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

package dbprep

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ninefold/sudoku/puzzle"
)

/*

entries

*/

type dataFunction func(context.Context, pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/sudoku?sslmode=disable"
	}
	ctx := context.Background()

	// open the database, defer the close
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("data function failed: %v", err)
		}
	}
	return nil
}

/*

built-in sample puzzles

*/

// The samples, in increasing difficulty.  The star names are the
// user-facing handles the CLI and the puzzle listing use.
var samplePuzzles = []struct {
	name     string
	encoding string
}{
	{"1-star",
		"4....35.2" +
			"..95.634." +
			"........8" +
			"....3486." +
			"..46.52.." +
			".2879...." +
			"9........" +
			".873.29.." +
			"5.29....6"},
	{"2-star",
		".1.5.6.2." +
			".....3.18" +
			"....7...6" +
			"..5....3." +
			"..8.9.7.." +
			".6....4.." +
			"5...4...." +
			"64.2....." +
			".3.9.1.8."},
	{"3-star",
		"9..45...8" +
			".2......." +
			"...1724.." +
			".79...68." +
			"2.......5" +
			".43...27." +
			"..8325..." +
			".......6." +
			"4...16..3"},
	{"4-star",
		"948.5.2.." +
			"..78.3..1" +
			".5..7...." +
			".7....3.." +
			"2..6.5..4" +
			"..5....9." +
			"....6..1." +
			"3..5.97.." +
			"..6.1.423"},
	{"5-star",
		"........." +
			"9..5.7.3." +
			"...1..6.7" +
			".4..6..82" +
			"67.....13" +
			"38..1..9." +
			"7.5..8..." +
			".2.3.9..8" +
			"........."},
	{"6-star",
		"1....7.9." +
			".3..2...8" +
			"..96..5.." +
			"..53..9.." +
			".1..8...2" +
			"6....4..." +
			"3......1." +
			".4......7" +
			"..7...3.."},
}

var sampleIDs []string // see init

// initialize the IDs from the sample puzzles
func init() {
	sampleIDs = make([]string, len(samplePuzzles))
	for i := range samplePuzzles {
		board, err := puzzle.Parse(samplePuzzles[i].encoding)
		if err != nil {
			panic(fmt.Errorf("Can't happen! Sample puzzle %d is invalid: %v", i, err))
		}
		sampleIDs[i] = board.ID()
	}
}

// insertSamples: create the sample puzzle rows
func insertSamples(ctx context.Context, tx pgx.Tx) error {
	// idempotency: if any sample is already stored, we are done
	var count int64
	row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM puzzles WHERE puzzle_id = $1", sampleIDs[0])
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for sample puzzles: %v", err)
	}
	if count > 0 {
		return nil
	}

	// get the timestamp of this load
	now := time.Now()

	for i, sample := range samplePuzzles {
		_, err := tx.Exec(ctx,
			"INSERT INTO puzzles (puzzle_id, name, encoding, solution, solution_count, capped, created) "+
				"VALUES ($1, $2, $3, '', -1, FALSE, $4)",
			sampleIDs[i], sample.name, sample.encoding, now)
		if err != nil {
			return fmt.Errorf("Database error saving sample puzzle %q: %v", sample.name, err)
		}
	}
	return nil
}

// deleteSamples: remove the sample puzzle rows
func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	for i, sample := range samplePuzzles {
		_, err := tx.Exec(ctx, "DELETE FROM puzzles WHERE puzzle_id = $1", sampleIDs[i])
		if err != nil {
			return fmt.Errorf("Database error deleting sample puzzle %q: %v", sample.name, err)
		}
	}
	return nil
}
