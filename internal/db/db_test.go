package db

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/timeutil"
)

func openTestDB(t *testing.T) (*DB, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(time.Unix(1700000000, 0))
	db, err := OpenDBWithClock(filepath.Join(t.TempDir(), "records.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, clock
}

var sampleMetrics = ecg.Metrics{
	Duration:        27.775,
	VoltageExtremes: [2]float64{1.05, -0.68},
	NumBeats:        33,
	MeanHRBPM:       71,
	Beats:           []float64{0.214, 1.028, 1.842},
}

func TestOpenDB_Migrates(t *testing.T) {
	db, _ := openTestDB(t)

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// Re-applying is a no-op.
	require.NoError(t, db.MigrateUp(MigrationsFS()))
}

func TestMigrateDown(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.MigrateDown(MigrationsFS()))
	_, err := db.ListRecords(0)
	assert.Error(t, err, "table should be gone after rollback")

	require.NoError(t, db.MigrateUp(MigrationsFS()))
	_, err = db.ListRecords(0)
	assert.NoError(t, err)
}

func TestRecordAndGet(t *testing.T) {
	db, _ := openTestDB(t)

	id, err := db.RecordMetrics("test_data1", "data/test_data1.csv", sampleMetrics)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := db.GetRecord(id)
	require.NoError(t, err)

	want := Record{
		ID:          id,
		Name:        "test_data1",
		SourcePath:  "data/test_data1.csv",
		Metrics:     sampleMetrics,
		CreatedUnix: 1700000000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetRecord mismatch (-want +got):\n%s", diff)
	}

	_, err = db.GetRecord("does-not-exist")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordMetrics_NoBeats(t *testing.T) {
	db, _ := openTestDB(t)

	m := sampleMetrics
	m.Beats = nil
	id, err := db.RecordMetrics("flat", "flat.csv", m)
	require.NoError(t, err)

	got, err := db.GetRecord(id)
	require.NoError(t, err)
	assert.Equal(t, []float64{}, got.Metrics.Beats)
}

func TestListRecords(t *testing.T) {
	db, clock := openTestDB(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := db.RecordMetrics(name, name+".csv", sampleMetrics)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	all, err := db.ListRecords(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Name)
	assert.Equal(t, "a", all[2].Name)

	two, err := db.ListRecords(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestRecordRoutes(t *testing.T) {
	db, _ := openTestDB(t)
	id, err := db.RecordMetrics("strip", "strip.csv", sampleMetrics)
	require.NoError(t, err)

	mux := http.NewServeMux()
	db.AttachRecordRoutes(mux)

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records?limit=5", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got []Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, id, got[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, sampleMetrics.NumBeats, got.Metrics.NumBeats)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records?limit=x", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/records", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
