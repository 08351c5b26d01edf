package db

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/ecg.report/internal/httputil"
)

// AttachRecordRoutes serves stored records as JSON:
// GET /api/records?limit=n and GET /api/records/{id}.
func (db *DB) AttachRecordRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/records", func(w http.ResponseWriter, r *http.Request) {
		if !httputil.AllowMethods(w, r, http.MethodGet) {
			return
		}
		limit, err := httputil.QueryInt(r, "limit", 0)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		records, err := db.ListRecords(limit)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to list records: %v", err))
			return
		}
		httputil.WriteJSONOK(w, records)
	})

	mux.HandleFunc("/api/records/", func(w http.ResponseWriter, r *http.Request) {
		if !httputil.AllowMethods(w, r, http.MethodGet) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/records/")
		rec, err := db.GetRecord(id)
		if errors.Is(err, ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to get record: %v", err))
			return
		}
		httputil.WriteJSONOK(w, rec)
	})
}

// AttachAdminRoutes mounts the tsweb debug index with a live tailsql console
// over the records database.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "ECG records",
	})

	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
	return nil
}
