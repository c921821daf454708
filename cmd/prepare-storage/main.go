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

// Prepare the sudoku storage system: migrate the schema and load
// the sample puzzles.  With -reset, flush the cache and rebuild
// the database from scratch first.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ninefold/sudoku/dbprep"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	reset := flag.Bool("reset", false, "flush the cache and rebuild the database")
	flag.Parse()

	if *reset {
		log.Info().Msg("removing existing data storage and cache")
		version, err := dbprep.ReinitializeAll()
		if err != nil {
			log.Fatal().Err(err).Msg("couldn't reinitialize storage")
		}
		log.Info().Uint("version", version).Msg("storage re-initialized")
		return
	}

	version, err := dbprep.EnsureData()
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't prepare storage")
	}
	log.Info().Uint("version", version).Msg("storage ready")
}
