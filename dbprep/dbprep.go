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

// Package dbprep gets the backing stores ready for use: it
// migrates the database schema and loads the built-in sample
// puzzles.  The server runs EnsureData at startup; the
// prepare-storage command exposes the rest.
package dbprep

import (
	"fmt"
)

// EnsureData brings the schema up to date and, when the schema
// actually moved, loads the sample data.  Safe to run at every
// startup.  Returns the schema version the database ends up at,
// so callers can log it without another round trip.
func EnsureData() (uint, error) {
	inVersion, err := SchemaVersion()
	if err != nil {
		return 0, fmt.Errorf("Couldn't get initial data schema version: %v", err)
	}
	if err := SchemaUp(); err != nil {
		return inVersion, fmt.Errorf("Couldn't install data schema: %v", err)
	}
	outVersion, err := SchemaVersion()
	if err != nil {
		return 0, fmt.Errorf("Couldn't get final data schema version: %v", err)
	}
	if outVersion == 0 {
		return 0, fmt.Errorf("Database schema still at version 0, shouldn't be.")
	}
	if inVersion != outVersion {
		if err := DataUp(); err != nil {
			return outVersion, fmt.Errorf("Couldn't load data: %v", err)
		}
	}
	return outVersion, nil
}

// RemoveData tears the schema (and with it all stored data) down.
func RemoveData() error {
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get initial data schema version: %v", err)
	}
	if version > 0 {
		if err := SchemaDown(); err != nil {
			return fmt.Errorf("Couldn't remove tables: %v", err)
		}
	}
	return nil
}

// ReinitializeAll flushes the cache, drops the database schema,
// and rebuilds everything from scratch.  Returns the rebuilt
// schema version.
func ReinitializeAll() (uint, error) {
	// clear cache
	if err := ClearCache(); err != nil {
		return 0, fmt.Errorf("Couldn't clear cache: %v", err)
	}
	// clear database
	if err := RemoveData(); err != nil {
		return 0, fmt.Errorf("Couldn't clear database: %v", err)
	}
	// reload database
	version, err := EnsureData()
	if err != nil {
		return version, fmt.Errorf("Couldn't load database: %v", err)
	}
	return version, nil
}
