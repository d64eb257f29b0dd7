package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

type payload struct {
	Stores []struct {
		Name string `json:"Name"`
	} `json:"Stores"`
}

func TestInstrumentedClient_Get(t *testing.T) {
	var gotPath, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Client")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Stores":[{"Name":"Alpha"}]}`)
	}))
	defer srv.Close()

	client, err := NewInstrumentedClient(
		WithProviderName("test"),
		WithBaseURL(srv.URL+"/"),
		WithRequestTimeout(2*time.Second),
		WithHeaders(map[string]string{"X-Client": "marketbot"}),
	)
	if err != nil {
		t.Fatalf("NewInstrumentedClient() error = %v", err)
	}

	var out payload
	resp, err := client.NewRequest(WithLabels(NewLabel("endpoint", "stores"))).
		SetResult(&out).
		Get(context.Background(), "/api/stores")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if !resp.IsSuccess() {
		t.Errorf("status = %d, want 2xx", resp.StatusCode)
	}
	if gotPath != "/api/stores" {
		t.Errorf("path = %q", gotPath)
	}
	if gotHeader != "marketbot" {
		t.Errorf("X-Client = %q", gotHeader)
	}
	if len(out.Stores) != 1 || out.Stores[0].Name != "Alpha" {
		t.Errorf("decoded = %+v", out)
	}
}

func TestInstrumentedClient_ErrorHandlerAndDecode(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server_error", status: http.StatusBadGateway, body: "upstream down", wantErr: errStatus},
		{name: "bad_json", status: http.StatusOK, body: "<html>", wantErr: ErrDecode},
		{name: "ok", status: http.StatusOK, body: `{"Stores":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client, err := NewInstrumentedClient(WithBaseURL(srv.URL))
			if err != nil {
				t.Fatal(err)
			}

			var out payload
			_, err = client.NewRequest(WithResponseErrorHandler(func(code int, body []byte) error {
				if code >= 400 {
					return errStatus
				}
				return nil
			})).SetResult(&out).Get(context.Background(), "/stores")

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

var errStatus = errors.New("bad status")

func TestInstrumentedClient_RateLimiterCancelled(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client, err := NewInstrumentedClient(
		WithBaseURL(srv.URL),
		WithRateLimiter(ratelimit.NewInterval(time.Hour)),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.NewRequest().Get(context.Background(), "/stores"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.NewRequest().Get(ctx, "/stores"); err == nil {
		t.Fatal("expected the second request to wait past the deadline")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}
