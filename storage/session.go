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
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog/log"
)

// maxRecent is how many puzzle IDs a session's history keeps.
const maxRecent = 10

// A Session tracks one client's solving history.  The session
// hash and its recent-puzzle list live only in the cache; the
// puzzles themselves are stored as Results.
type Session struct {
	SID     string // session ID
	PID     string // ID of the puzzle last worked on
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved
}

// NewSession returns an unsaved session for the given ID.
func NewSession(sid string) *Session {
	now := time.Now().Format(time.RFC3339)
	return &Session{SID: sid, Created: now, Saved: now}
}

// Lookup: fill the session from the cache.  Returns whether a
// saved session with this ID was found.
func (session *Session) Lookup() (found bool) {
	body := func(conn redis.Conn) error {
		vals, err := redis.Values(conn.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Error().Str("sid", session.SID).Err(err).
					Msg("failed to parse saved session")
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Error().Str("sid", session.SID).Err(err).
				Msg("cache error looking up session")
			return err
		}
		return nil
	}
	rdExecute(body)
	return
}

// RecordPuzzle makes the given puzzle ID the session's current
// puzzle and pushes it onto the session's history, dropping the
// oldest entry once the history is full.
func (session *Session) RecordPuzzle(pid string) {
	session.PID = pid
	session.Saved = time.Now().Format(time.RFC3339)
	body := func(conn redis.Conn) (err error) {
		conn.Send("HSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		conn.Send("RPUSH", session.recentKey(), pid)
		_, err = conn.Do("LTRIM", session.recentKey(), -maxRecent, -1)
		if err != nil {
			log.Error().Str("sid", session.SID).Str("pid", pid).Err(err).
				Msg("cache error recording puzzle")
		}
		return
	}
	rdExecute(body)
	log.Debug().Str("sid", session.SID).Str("pid", pid).Msg("recorded puzzle")
}

// RecentPuzzles returns the IDs of the puzzles the session worked
// on, most recent first.
func (session *Session) RecentPuzzles() []string {
	var pids []string
	body := func(conn redis.Conn) (err error) {
		pids, err = redis.Strings(conn.Do("LRANGE", session.recentKey(), 0, -1))
		if err != nil {
			log.Error().Str("sid", session.SID).Err(err).
				Msg("cache error reading session history")
		}
		return
	}
	rdExecute(body)
	// the list is oldest-first in the cache
	for i, j := 0, len(pids)-1; i < j; i, j = i+1, j-1 {
		pids[i], pids[j] = pids[j], pids[i]
	}
	return pids
}

// Remove deletes the session and its history from the cache.
func (session *Session) Remove() {
	body := func(conn redis.Conn) (err error) {
		conn.Send("DEL", session.key())
		_, err = conn.Do("DEL", session.recentKey())
		return
	}
	rdExecute(body)
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return "SID:" + session.SID
}

// recentKey - returns the key for the session's history list
func (session *Session) recentKey() string {
	return session.key() + ":Recent"
}
