// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogState  string  `json:"catalog_state"`
	CatalogItems  int     `json:"catalog_items"`
	Reason        string  `json:"reason,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// CatalogStats is the body of the catalog stats endpoint.
type CatalogStats struct {
	State              string            `json:"state"`
	Reason             string            `json:"reason,omitempty"`
	Items              int               `json:"items"`
	Sections           int               `json:"sections"`
	ScoreMean          float64           `json:"score_mean"`
	ScoreMinVotes      float64           `json:"score_min_votes"`
	LoadedAt           *time.Time        `json:"loaded_at,omitempty"`
	LoadDurationMs     int64             `json:"load_duration_ms"`
	IndexDurationMs    int64             `json:"index_duration_ms"`
	Vocabulary         int               `json:"vocabulary"`
	EmptyOverviews     int               `json:"empty_overviews"`
	RowsInput          int               `json:"rows_input"`
	RowsMissingFields  int               `json:"rows_missing_fields"`
	RowsBelowVoteFloor int               `json:"rows_below_vote_floor"`
	RowsDuplicate      int               `json:"rows_duplicate"`
	RowsTruncated      int               `json:"rows_truncated"`
	Metrics            recommend.Metrics `json:"metrics"`
}

// Health reports overall service health. The service is "degraded" while
// the catalog is unloaded; the endpoint itself always answers 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()

	status := "healthy"
	if st.State != recommend.StateReady {
		status = "degraded"
	}

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        status,
		Version:       h.version,
		CatalogState:  st.State,
		CatalogItems:  st.Items,
		Reason:        st.Reason,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthLive is the liveness probe. It answers 200 as long as the process
// serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe: 200 with a published catalog, 503
// otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.engine.IsReady()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	NewResponseWriter(w, r).SuccessWithStatus(statusCode, map[string]interface{}{
		"status":         status,
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}, nil)
}

// CatalogStats reports load statistics for operators.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(catalogStats(h.engine.Status()))
}

//nolint:gocritic // hugeParam: st passed by value for immutability
func catalogStats(st recommend.Status) CatalogStats {
	out := CatalogStats{
		State:              st.State,
		Reason:             st.Reason,
		Items:              st.Items,
		Sections:           st.Sections,
		ScoreMean:          st.Params.C,
		ScoreMinVotes:      st.Params.M,
		LoadDurationMs:     st.LoadDuration.Milliseconds(),
		IndexDurationMs:    st.Index.Duration.Milliseconds(),
		Vocabulary:         st.Index.Vocabulary,
		EmptyOverviews:     st.Index.EmptyDocuments,
		RowsInput:          st.Prepare.Input,
		RowsMissingFields:  st.Prepare.MissingFields,
		RowsBelowVoteFloor: st.Prepare.BelowVoteFloor,
		RowsDuplicate:      st.Prepare.Duplicates,
		RowsTruncated:      st.Prepare.Truncated,
		Metrics:            st.Metrics,
	}
	if !st.LoadedAt.IsZero() {
		loadedAt := st.LoadedAt
		out.LoadedAt = &loadedAt
	}
	return out
}
