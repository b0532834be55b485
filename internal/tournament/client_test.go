package tournament

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const feedDoc = `{
	"name": "Spring Open",
	"venue": "Club 147",
	"discipline": "8-Ball",
	"players": [
		{"name": "Ana Silva", "league": "Premier", "position": 1, "total_points": 130, "qualified": true}
	],
	"matches": [
		{"roundName": "Final", "matchNo": 1,
		 "playerA": {"name": "Ana Silva"}, "playerB": {"name": "Marco Reis"},
		 "scoreA": 4, "scoreB": 2, "raceTo": 5, "status": "playing"}
	],
	"last_updated": "2026-03-14 18:30:00"
}`

func TestClientProbe(t *testing.T) {
	var gotMethod, gotCacheControl string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Header().Set("Last-Modified", "Sat, 14 Mar 2026 18:30:00 GMT")
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	token, err := client.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("probe used method %q, want HEAD", gotMethod)
	}
	if gotCacheControl != "no-cache" {
		t.Errorf("probe Cache-Control = %q, want no-cache", gotCacheControl)
	}
	if token != "Sat, 14 Mar 2026 18:30:00 GMT" {
		t.Errorf("Probe() token = %q", token)
	}
}

func TestClientProbeNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	token, err := client.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if token != "" {
		t.Errorf("Probe() token = %q, want empty", token)
	}
}

func TestClientProbeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Probe(context.Background()); err == nil {
		t.Error("Probe() expected error for status 500")
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("fetch used method %q, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedDoc))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	snap, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if snap.Name != "Spring Open" {
		t.Errorf("snapshot name = %q, want %q", snap.Name, "Spring Open")
	}
	if len(snap.Players) != 1 || snap.Players[0].Name != "Ana Silva" {
		t.Errorf("unexpected players: %+v", snap.Players)
	}
	if len(snap.Matches) != 1 || snap.Matches[0].Status != MatchPlaying {
		t.Errorf("unexpected matches: %+v", snap.Matches)
	}
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name": `))
			},
		},
		{
			name: "valid json but empty document",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name": "Empty"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient(server.URL, time.Second)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			if _, err := client.Fetch(context.Background()); err == nil {
				t.Error("Fetch() expected error")
			}
		})
	}
}

func TestParseFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full url",
			input: "https://example.org/data/tournament.json",
			want:  "https://example.org/data/tournament.json",
		},
		{
			name:  "scheme defaulted",
			input: "example.org/tournament.json",
			want:  "https://example.org/tournament.json",
		},
		{
			name:  "fragment stripped",
			input: "https://example.org/t.json#section",
			want:  "https://example.org/t.json",
		},
		{
			name:    "empty",
			input:   "  ",
			wantErr: true,
		},
		{
			name:    "bad scheme",
			input:   "ftp://example.org/t.json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := parseFeedURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseFeedURL(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFeedURL(%q) error = %v", tt.input, err)
			}
			if u.String() != tt.want {
				t.Errorf("parseFeedURL(%q) = %q, want %q", tt.input, u.String(), tt.want)
			}
		})
	}
}
