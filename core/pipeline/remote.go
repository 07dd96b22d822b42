package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteEmbedderConfig configures an OpenAI-compatible embeddings endpoint.
// Works with OpenAI and the compatible-mode endpoints of most hosted providers.
type RemoteEmbedderConfig struct {
	// BaseURL is the full URL of the embeddings endpoint.
	BaseURL string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// Model is the embedding model name, e.g. "text-embedding-3-small".
	Model string
	// Dimensions requests and verifies a fixed embedding dimension when > 0.
	Dimensions int
	// Timeout for a single embedding call, defaults to 30s.
	Timeout time.Duration
}

type remoteEmbeddingRequest struct {
	Input          string `json:"input"`
	Model          string `json:"model"`
	Dimensions     int    `json:"dimensions,omitempty"`
	EncodingFormat string `json:"encoding_format,omitempty"`
}

type remoteEmbeddingResponse struct {
	Object string                `json:"object"`
	Data   []remoteEmbeddingData `json:"data"`
	Model  string                `json:"model"`
	// Error field for when HTTP status is OK but the API returns an error object
	Error *remoteEmbeddingError `json:"error,omitempty"`
}

type remoteEmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type remoteEmbeddingError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewRemoteEmbedder creates an embedder backed by an OpenAI-compatible
// embeddings endpoint. Use it instead of DefaultEmbedder when embeddings
// should come from a hosted model rather than the bundled local one.
func NewRemoteEmbedder(config RemoteEmbedderConfig) (EmbedFunc, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL must not be empty")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model must not be empty")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	return func(text string) ([]float32, error) {
		reqBody := remoteEmbeddingRequest{
			Input: text,
			Model: config.Model,
		}
		if config.Dimensions > 0 {
			reqBody.Dimensions = config.Dimensions
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, config.BaseURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+config.APIKey)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call embedding endpoint: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedding response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errorResp remoteEmbeddingResponse
			if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != nil && errorResp.Error.Message != "" {
				return nil, fmt.Errorf("embedding endpoint returned status %d: %s", resp.StatusCode, errorResp.Error.Message)
			}
			return nil, fmt.Errorf("embedding endpoint returned status %d: %s", resp.StatusCode, string(body))
		}

		var embeddingResp remoteEmbeddingResponse
		if err := json.Unmarshal(body, &embeddingResp); err != nil {
			return nil, fmt.Errorf("failed to parse embedding response: %w", err)
		}

		// Check for API level error even if status is 200 OK
		if embeddingResp.Error != nil && embeddingResp.Error.Message != "" {
			return nil, fmt.Errorf("embedding endpoint returned error: %s", embeddingResp.Error.Message)
		}

		if len(embeddingResp.Data) == 0 {
			return nil, fmt.Errorf("embedding response contains no data")
		}

		embedding := embeddingResp.Data[0].Embedding
		if config.Dimensions > 0 && len(embedding) != config.Dimensions {
			return nil, fmt.Errorf("expected embedding with %d dimensions, got %d", config.Dimensions, len(embedding))
		}

		return embedding, nil
	}, nil
}
