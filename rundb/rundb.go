// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rundb keeps track of the list files processed by the
// conversion tools in a MySQL database.
package rundb // import "github.com/go-lpc/mcs6a/rundb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	drvName = "mysql"
	timeout = 5 * time.Second
)

// Summary describes the outcome of the processing of a list file.
type Summary struct {
	Path      string // path to the list file
	TimePatch string // time_patch code of the list file
	Records   int64  // number of records read
	Events    int64  // number of decoded events
	Dropped   int64  // number of empty records
	Overflows uint64 // number of sweep counter overflows
	Processed time.Time
}

// DB exposes convenience methods to record and retrieve processing
// summaries of list files.
type DB struct {
	db *sql.DB
}

// Open opens a connection to the MySQL database described by dsn.
func Open(dsn string) (*DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("rundb: could not parse DSN: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open(drvName, cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("rundb: could not open %q db: %w", cfg.DBName, err)
	}

	err = ping(db, cfg.DBName)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *DB {
	return &DB{db: db}
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("rundb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

const createTable = `CREATE TABLE IF NOT EXISTS lst_files (
	id         BIGINT AUTO_INCREMENT PRIMARY KEY,
	path       VARCHAR(1024) NOT NULL,
	time_patch VARCHAR(8) NOT NULL,
	records    BIGINT NOT NULL,
	events     BIGINT NOT NULL,
	dropped    BIGINT NOT NULL,
	overflows  BIGINT UNSIGNED NOT NULL,
	processed  DATETIME NOT NULL
)`

// Setup creates the bookkeeping table, if needed.
func (db *DB) Setup(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := db.db.ExecContext(ctx, createTable)
	if err != nil {
		return fmt.Errorf("rundb: could not create lst_files table: %w", err)
	}
	return nil
}

// Insert records the processing summary of a list file.
func (db *DB) Insert(ctx context.Context, sum Summary) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := db.db.ExecContext(
		ctx,
		"INSERT INTO lst_files (path, time_patch, records, events, dropped, overflows, processed) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sum.Path, sum.TimePatch, sum.Records, sum.Events, sum.Dropped, sum.Overflows, sum.Processed.UTC(),
	)
	if err != nil {
		return fmt.Errorf("rundb: could not insert summary for %q: %w", sum.Path, err)
	}
	return nil
}

// Summaries returns the processing summaries recorded for the list
// file at path, most recent first.
func (db *DB) Summaries(ctx context.Context, path string) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sums []Summary
	rows, err := db.db.QueryContext(
		ctx,
		`
SELECT path, time_patch, records, events, dropped, overflows, processed
FROM lst_files
WHERE path=?
ORDER BY processed DESC
`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("rundb: could not query summaries for %q: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sum Summary
		err = rows.Scan(
			&sum.Path, &sum.TimePatch,
			&sum.Records, &sum.Events, &sum.Dropped, &sum.Overflows,
			&sum.Processed,
		)
		if err != nil {
			return sums, fmt.Errorf("rundb: could not scan summary for %q: %w", path, err)
		}
		sums = append(sums, sum)
	}

	if err := rows.Err(); err != nil {
		return sums, fmt.Errorf("rundb: could not scan db for summaries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return sums, fmt.Errorf("rundb: context error while retrieving summaries: %w", err)
	}

	return sums, nil
}
