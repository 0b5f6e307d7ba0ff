package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

func TestParseTrendWindow(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "", want: 24 * time.Hour},
		{raw: "day", want: 24 * time.Hour},
		{raw: "Weekly", want: 7 * 24 * time.Hour},
		{raw: "6h", want: 6 * time.Hour},
		{raw: "90m", want: 90 * time.Minute},
		{raw: "bogus", wantErr: true},
	}

	for _, testCase := range tests {
		got, err := parseTrendWindow(testCase.raw)
		if testCase.wantErr {
			if err == nil {
				t.Fatalf("parseTrendWindow(%q) expected error", testCase.raw)
			}
			continue
		}
		if err != nil || got != testCase.want {
			t.Fatalf("parseTrendWindow(%q) = %v, %v; want %v", testCase.raw, got, err, testCase.want)
		}
	}
}

func TestTrendEndpointDailyBuckets(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "trends@example.com")

	createTestEntry(t, app, cookie, "grateful and happy today", "2024-01-01T09:00:00Z")
	createTestEntry(t, app, cookie, "lonely and crying tonight", "2024-01-01T21:00:00Z")

	response := doJSON(t, app, http.MethodGet, "/api/trends?from=2024-01-01&to=2024-01-02&window=day", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("trend query returned %d", response.StatusCode)
	}
	result := struct {
		Buckets []struct {
			WindowStart time.Time `json:"window_start"`
			WindowEnd   time.Time `json:"window_end"`
			Label       string    `json:"label"`
			Count       int       `json:"count"`
		} `json:"buckets"`
	}{}
	decodeJSON(t, response, &result)

	if len(result.Buckets) != 2 {
		t.Fatalf("expected two buckets, got %+v", result.Buckets)
	}
	labels := map[string]int{}
	for _, bucket := range result.Buckets {
		labels[bucket.Label] = bucket.Count
		if !bucket.WindowStart.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("bucket anchored at %v, want day start", bucket.WindowStart)
		}
	}
	if labels[models.MoodJoy] != 1 || labels[models.MoodSadness] != 1 {
		t.Fatalf("unexpected label distribution %v", labels)
	}
}

func TestTrendEndpointExcludesDeletedEntries(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "prune@example.com")

	kept := createTestEntry(t, app, cookie, "peaceful and relaxed", "2024-02-01T10:00:00Z")
	removed := createTestEntry(t, app, cookie, "peaceful and relaxed again", "2024-02-01T11:00:00Z")
	_ = kept

	response := doJSON(t, app, http.MethodDelete, entryPath(entryID(t, removed)), cookie, nil)
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("delete returned %d", response.StatusCode)
	}

	response = doJSON(t, app, http.MethodGet, "/api/trends?from=2024-02-01&to=2024-02-02", cookie, nil)
	result := struct {
		Buckets []struct {
			Count int `json:"count"`
		} `json:"buckets"`
	}{}
	decodeJSON(t, response, &result)

	total := 0
	for _, bucket := range result.Buckets {
		total += bucket.Count
	}
	if total != 1 {
		t.Fatalf("deleted entry leaked into trend, total=%d", total)
	}
}

func TestTrendEndpointValidation(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "validate@example.com")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing range", path: "/api/trends"},
		{name: "inverted range", path: "/api/trends?from=2024-01-02&to=2024-01-01"},
		{name: "bad window", path: "/api/trends?from=2024-01-01&to=2024-01-02&window=sideways"},
		{name: "window too small", path: "/api/trends?from=2024-01-01&to=2024-01-02&window=5s"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodGet, testCase.path, cookie, nil)
			response.Body.Close()
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", response.StatusCode)
			}
		})
	}
}
