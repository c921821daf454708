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

// The sudoku-server command serves the solver API over HTTP.
// When Redis and Postgres are reachable it also persists every
// result it computes and tracks per-client solving history; when
// they aren't it degrades to a stateless solver.
package main

import (
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ninefold/sudoku/puzzle"
	"github.com/ninefold/sudoku/storage"
)

const (
	cookieName   = "sudokuSession"
	cookieMaxAge = 30 * 24 * 3600 // a month, in seconds
)

var (
	startTime  = time.Now() // instance start-up time
	useStorage = false      // whether Connect succeeded
)

func main() {
	// Heroku-style environment sensing: a PORT means we are a
	// true server, no PORT means local development.
	port := os.Getenv("PORT")
	if port == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		gin.SetMode(gin.DebugMode)
		port = "localhost:8080"
	} else {
		gin.SetMode(gin.ReleaseMode)
		port = ":" + port
	}

	if cacheId, databaseId, err := storage.Connect(); err != nil {
		log.Warn().Err(err).Msg("storage unavailable, serving stateless")
	} else {
		useStorage = true
		defer storage.Close()
		log.Info().Str("cache", cacheId).Str("database", databaseId).Msg("storage connected")
	}

	e := newRouter()
	log.Info().Str("addr", port).Msg("listening")
	if err := e.Run(port); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}

func newRouter() *gin.Engine {
	e := gin.New()
	e.Use(ginLogger(), gin.Recovery())
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": useStorage})
	})

	v1 := e.Group("/api").Group("/v1")
	v1.POST("/solve", solve)
	v1.POST("/count", count)
	v1.GET("/puzzles", listPuzzles)
	v1.GET("/puzzles/:id", getPuzzle)
	v1.GET("/recent", recent)
	return e
}

/*

solver endpoints

The solve and count handlers live in the puzzle package and write
their own responses; the gin layer's job is session tracking and
persisting what was computed.

*/

func solve(c *gin.Context) {
	// the session cookie has to go out with the response, so the
	// session is resolved before the handler writes anything
	session := sessionFor(c)
	outcome, err := puzzle.SolveHandler(c.Writer, c.Request)
	if err != nil {
		log.Info().Err(err).Msg("solve rejected")
		return
	}
	if outcome != nil && session != nil {
		persist(func() {
			r := storage.SaveSolution(outcome)
			session.RecordPuzzle(r.PuzzleID)
		})
	}
}

func count(c *gin.Context) {
	session := sessionFor(c)
	outcome, err := puzzle.CountHandler(c.Writer, c.Request)
	if err != nil {
		log.Info().Err(err).Msg("count rejected")
		return
	}
	if outcome != nil && session != nil {
		persist(func() {
			r := storage.SaveCount(outcome)
			session.RecordPuzzle(r.PuzzleID)
		})
	}
}

// persist runs a storage operation after the client response is
// already on the wire.  Storage failures panic, and a failure to
// save a computed result shouldn't look like a failed request, so
// recover and log instead.
func persist(body func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("cause", r).Msg("failed to persist result")
		}
	}()
	body()
}

/*

stored-puzzle endpoints

*/

func listPuzzles(c *gin.Context) {
	if !requireStorage(c) {
		return
	}
	c.JSON(http.StatusOK, storage.NamedResults())
}

func getPuzzle(c *gin.Context) {
	if !requireStorage(c) {
		return
	}
	r := storage.LoadResult(c.Param("id"))
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such puzzle"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func recent(c *gin.Context) {
	if !requireStorage(c) {
		return
	}
	session := sessionFor(c)
	pids := session.RecentPuzzles()
	results := make([]*storage.Result, 0, len(pids))
	for _, pid := range pids {
		if r := storage.LoadResult(pid); r != nil {
			results = append(results, r)
		}
	}
	c.JSON(http.StatusOK, results)
}

func requireStorage(c *gin.Context) bool {
	if !useStorage {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return false
	}
	return true
}

/*

sessions

*/

// sessionFor finds or creates the session for the request's
// cookie, issuing a cookie to clients that don't have one.  It
// must run before the response is written: headers added after
// the body starts are dropped.  Stateless servers have no
// sessions, so it returns nil when storage is down.
func sessionFor(c *gin.Context) *storage.Session {
	if !useStorage {
		return nil
	}
	if sid, err := c.Cookie(cookieName); err == nil && sid != "" {
		session := &storage.Session{SID: sid}
		if lookupSession(session) {
			return session
		}
		return storage.NewSession(sid)
	}
	sid := newSessionID()
	c.SetCookie(cookieName, sid, cookieMaxAge, "/", "", false, true)
	return storage.NewSession(sid)
}

// lookupSession tolerates a cache outage: a session we can't
// look up is treated as new rather than failing the request.
func lookupSession(session *storage.Session) (found bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("cause", r).Msg("session lookup failed")
			found = false
		}
	}()
	return session.Lookup()
}

var sessionCount atomic.Int64

// newSessionID makes an ID from the time since instance startup
// plus a serial number, so simultaneous first requests get
// distinct sessions.
func newSessionID() string {
	return strconv.FormatInt(int64(time.Since(startTime)), 36) +
		"-" + strconv.FormatInt(sessionCount.Add(1), 36)
}

/*

logging

*/

// ginLogger routes gin's per-request line through zerolog.
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
