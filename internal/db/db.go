// Package db persists ECG metrics records in SQLite.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/timeutil"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type DB struct {
	*sql.DB
	clock timeutil.Clock
	path  string
}

// OpenDB opens (or creates) the records database at path and applies the
// embedded migrations.
func OpenDB(path string) (*DB, error) {
	return OpenDBWithClock(path, timeutil.RealClock{})
}

// OpenDBWithClock is OpenDB with an explicit clock for record timestamps.
func OpenDBWithClock(path string, clock timeutil.Clock) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, clock: clock, path: path}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Record is one stored analysis result.
type Record struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	SourcePath  string      `json:"source_path"`
	Metrics     ecg.Metrics `json:"metrics"`
	CreatedUnix int64       `json:"created_unix"`
}

// RecordMetrics stores m under a new id and returns the id.
func (db *DB) RecordMetrics(name, sourcePath string, m ecg.Metrics) (string, error) {
	beats := m.Beats
	if beats == nil {
		beats = []float64{}
	}
	beatsJSON, err := json.Marshal(beats)
	if err != nil {
		return "", fmt.Errorf("failed to encode beats: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(
		`INSERT INTO ecg_records (
			record_id, name, source_path, duration, voltage_max, voltage_min,
			num_beats, mean_hr_bpm, beats_json, created_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, sourcePath, m.Duration, m.VoltageExtremes[0], m.VoltageExtremes[1],
		m.NumBeats, m.MeanHRBPM, string(beatsJSON), db.clock.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}
	return id, nil
}

const recordColumns = `record_id, name, source_path, duration, voltage_max, voltage_min,
	num_beats, mean_hr_bpm, beats_json, created_unix`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var r Record
	var beatsJSON string
	if err := s.Scan(
		&r.ID, &r.Name, &r.SourcePath, &r.Metrics.Duration,
		&r.Metrics.VoltageExtremes[0], &r.Metrics.VoltageExtremes[1],
		&r.Metrics.NumBeats, &r.Metrics.MeanHRBPM, &beatsJSON, &r.CreatedUnix,
	); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(beatsJSON), &r.Metrics.Beats); err != nil {
		return Record{}, fmt.Errorf("record %s: failed to decode beats: %w", r.ID, err)
	}
	return r, nil
}

// GetRecord returns the record with the given id.
func (db *DB) GetRecord(id string) (Record, error) {
	row := db.QueryRow(`SELECT `+recordColumns+` FROM ecg_records WHERE record_id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// ListRecords returns up to limit records, newest first. A non-positive
// limit returns all records.
func (db *DB) ListRecords(limit int) ([]Record, error) {
	q := `SELECT ` + recordColumns + ` FROM ecg_records ORDER BY created_unix DESC, rowid DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
