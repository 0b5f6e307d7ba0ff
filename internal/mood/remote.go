package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

// RemoteClassifier calls an external text-classification service. The service
// is a black box that accepts {"text": ...} and answers
// {"label": ..., "confidence": ...}.
type RemoteClassifier struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewRemoteClassifier(endpoint string, apiKey string, timeout time.Duration) *RemoteClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteClassifier{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (classifier *RemoteClassifier) Classify(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("encode classify request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, classifier.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build classify request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if classifier.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+classifier.apiKey)
	}

	response, err := classifier.httpClient.Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("call classifier: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return Result{}, fmt.Errorf("classifier returned status %d: %s", response.StatusCode, string(body))
	}

	decoded := remoteResponse{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decode classify response: %w", err)
	}
	if !models.ValidMoodLabel(decoded.Label) {
		return Result{}, fmt.Errorf("classifier returned unknown label %q", decoded.Label)
	}
	if decoded.Confidence < 0 || decoded.Confidence > 1 {
		return Result{}, fmt.Errorf("classifier returned confidence %v out of range", decoded.Confidence)
	}

	return Result{Label: decoded.Label, Confidence: decoded.Confidence}, nil
}
