package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestServer_HealthReflectsSourceTracker(t *testing.T) {
	tracker := NewSourceTracker()
	srv := NewServer(0, "test")
	srv.RegisterCheck("market_data", tracker.Check)

	tests := []struct {
		name       string
		record     func()
		wantCode   int
		wantStatus string
	}{
		{name: "unknown", record: func() {}, wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "fallback", record: func() { tracker.Record(SourceFallback, errors.New("timeout")) }, wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "failed", record: func() { tracker.Record(SourceFailed, errors.New("no file")) }, wantCode: http.StatusServiceUnavailable, wantStatus: "degraded"},
		{name: "recovered", record: func() { tracker.Record(SourceOK, nil) }, wantCode: http.StatusOK, wantStatus: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record()

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var status Status
			if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if status.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status.Status, tt.wantStatus)
			}
			if _, ok := status.Checks["market_data"]; !ok {
				t.Error("market_data check missing")
			}
		})
	}
}

func TestServer_Live(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0, "test").Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "alive" {
		t.Errorf("live = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_ReadyWaitsForMarketData(t *testing.T) {
	tracker := NewSourceTracker()
	srv := NewServer(0, "test")
	srv.RegisterReadiness("market_data", tracker.Ready)

	tests := []struct {
		name     string
		record   func()
		wantCode int
	}{
		{name: "no fetch yet", record: func() {}, wantCode: http.StatusServiceUnavailable},
		{name: "failed", record: func() { tracker.Record(SourceFailed, errors.New("no file")) }, wantCode: http.StatusServiceUnavailable},
		{name: "fallback", record: func() { tracker.Record(SourceFallback, errors.New("timeout")) }, wantCode: http.StatusOK},
		{name: "api", record: func() { tracker.Record(SourceOK, nil) }, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record()

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["ready"] != (tt.wantCode == http.StatusOK) {
				t.Errorf("ready = %v", body["ready"])
			}
		})
	}
}

func TestServer_ReadyWithoutGates(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0, "test").Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", rec.Code)
	}
}
