package mood

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

func TestRemoteClassifierSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		request := remoteRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if request.Text != "a bright morning" {
			t.Errorf("unexpected text %q", request.Text)
		}
		_ = json.NewEncoder(w).Encode(remoteResponse{Label: models.MoodJoy, Confidence: 0.87})
	}))
	defer server.Close()

	classifier := NewRemoteClassifier(server.URL, "", time.Second)
	result, err := classifier.Classify(context.Background(), "a bright morning")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if result.Label != models.MoodJoy || result.Confidence != 0.87 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRemoteClassifierSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(remoteResponse{Label: models.MoodCalm, Confidence: 0.6})
	}))
	defer server.Close()

	classifier := NewRemoteClassifier(server.URL, "secret-token", time.Second)
	if _, err := classifier.Classify(context.Background(), "quiet"); err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
}

func TestRemoteClassifierRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response remoteResponse
	}{
		{name: "unknown label", status: http.StatusOK, response: remoteResponse{Label: "ecstatic", Confidence: 0.9}},
		{name: "confidence above one", status: http.StatusOK, response: remoteResponse{Label: models.MoodJoy, Confidence: 1.2}},
		{name: "confidence below zero", status: http.StatusOK, response: remoteResponse{Label: models.MoodJoy, Confidence: -0.1}},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_ = json.NewEncoder(w).Encode(testCase.response)
			}))
			defer server.Close()

			classifier := NewRemoteClassifier(server.URL, "", time.Second)
			if _, err := classifier.Classify(context.Background(), "text"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRemoteClassifierTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	classifier := NewRemoteClassifier(server.URL, "", 50*time.Millisecond)
	if _, err := classifier.Classify(context.Background(), "slow"); err == nil {
		t.Fatal("expected timeout error")
	}
}
