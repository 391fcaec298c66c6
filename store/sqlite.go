/*
sqlite.go, part of Trenza



LICENSE

Copyright (c) 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>


This program, including its documentation,
is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License version 2.0 as
published by the Free Software Foundation.

This program and its documentation is distributed in the hope that
it will be useful, but WITHOUT ANY WARRANTY; without even the
implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
PURPOSE.  See the GNU General Public License for more details.

You should have received a copy of the GNU General
Public License along with this program.  If not, see
<http://www.gnu.org/licenses/>.

*/

// Package store keeps an SQLite index of the conformers admitted in a search.
package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/rmera/trenza/search"
)

// SQLiteStore is an index of conformers in an SQLite database.
// It implements search.Indexer.
type SQLiteStore struct {
	path string
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating it if needed) the database in path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{path: path, db: db}, nil
}

// Admitted stores a newly admitted conformer. Its rank is unknown until Ranked is called.
func (S *SQLiteStore) Admitted(ctx context.Context, r *search.Record) error {
	db, err := S.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO conformers (trial, distance, total, bond, angle, torsion, vdw, total_torsion, rmsd, rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(trial) DO UPDATE SET
			distance = excluded.distance,
			total = excluded.total,
			bond = excluded.bond,
			angle = excluded.angle,
			torsion = excluded.torsion,
			vdw = excluded.vdw,
			total_torsion = excluded.total_torsion,
			rmsd = excluded.rmsd,
			rank = NULL
	`, r.Index, r.Distance, r.Total, r.Bond, r.Angle, r.Torsion, r.VDW, r.TotalTorsion, r.RMSD)
	return err
}

// Ranked writes the final rank (0 is the best) and RMSD of each conformer, in one transaction.
func (S *SQLiteStore) Ranked(ctx context.Context, recs []*search.Record) error {
	db, err := S.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `UPDATE conformers SET rank = ?, rmsd = ? WHERE trial = ?`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, i, r.RMSD, r.Index); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Row is one stored conformer.
type Row struct {
	Trial    int
	Distance float64
	Total    float64
	RMSD     float64
	Rank     sql.NullInt64
}

// Rows returns the stored conformers, ordered by trial.
func (S *SQLiteStore) Rows(ctx context.Context) ([]Row, error) {
	db, err := S.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT trial, distance, total, rmsd, rank FROM conformers ORDER BY trial`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]Row, 0)
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Trial, &r.Distance, &r.Total, &r.RMSD, &r.Rank); err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Close closes the database.
func (S *SQLiteStore) Close() error {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.db == nil {
		return nil
	}
	err := S.db.Close()
	S.db = nil
	return err
}

func (S *SQLiteStore) getDB() (*sql.DB, error) {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.db == nil {
		return nil, errors.New("store is not open")
	}
	return S.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS conformers (
			trial INTEGER PRIMARY KEY,
			distance REAL NOT NULL,
			total REAL NOT NULL,
			bond REAL NOT NULL,
			angle REAL NOT NULL,
			torsion REAL NOT NULL,
			vdw REAL NOT NULL,
			total_torsion REAL NOT NULL,
			rmsd REAL NOT NULL,
			rank INTEGER
		);
	`)
	return err
}
