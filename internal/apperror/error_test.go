package apperror

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_UsesCatalogMessage(t *testing.T) {
	err := New(CodeFallbackNotFound, WithContext("stores_data.json"))

	if err.Message != messages[CodeFallbackNotFound] {
		t.Errorf("Message = %q, want catalog message", err.Message)
	}
	if !strings.Contains(err.Error(), "stores_data.json") {
		t.Errorf("Error() = %q, want context included", err.Error())
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantCode Code
		wantNil  bool
	}{
		{name: "nil_stays_nil", err: nil, code: CodeInternalError, wantNil: true},
		{name: "plain_error_gets_code", err: base, code: CodeMarketFetchFailed, wantCode: CodeMarketFetchFailed},
		{
			name:     "app_error_keeps_code",
			err:      New(CodeCircuitOpen),
			code:     CodeMarketFetchFailed,
			wantCode: CodeCircuitOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.code, "fetch stores")
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Wrap(nil) = %v, want nil", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", got.Code, tt.wantCode)
			}
		})
	}
}

func TestHasCode_ThroughWrapping(t *testing.T) {
	inner := New(CodeMarketFetchFailed, WithCause(errors.New("timeout")))
	outer := fmt.Errorf("run aborted: %w", inner)

	if !HasCode(outer, CodeMarketFetchFailed) {
		t.Error("expected HasCode to find wrapped code")
	}
	if HasCode(outer, CodeFallbackNotFound) {
		t.Error("unexpected match for different code")
	}
	if GetCode(errors.New("plain")) != CodeUnknownError {
		t.Error("plain errors should map to CodeUnknownError")
	}
}

func TestAppError_LogValue(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	err := External(CodeMarketFetchFailed, "GET /stores", errors.New("connection refused"))
	log.Error("fetch failed", "error", err)

	var line struct {
		Error map[string]string `json:"error"`
	}
	if jerr := json.Unmarshal(buf.Bytes(), &line); jerr != nil {
		t.Fatalf("decode log line: %v", jerr)
	}
	if line.Error["code"] != string(CodeMarketFetchFailed) {
		t.Errorf("code = %q", line.Error["code"])
	}
	if line.Error["cause"] != "connection refused" {
		t.Errorf("cause = %q", line.Error["cause"])
	}
	if !strings.HasPrefix(line.Error["at"], "error_test.go:") {
		t.Errorf("at = %q, want the test file", line.Error["at"])
	}
}
