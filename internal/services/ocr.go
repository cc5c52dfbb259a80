// Client for the EasyOCR scorecard recognition proxy.
//
// The proxy exposes /health, /ocr, and /extract_scores; images travel as
// base64-encoded JSON fields.
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/roundsapp/rounds/internal/shared"
)

// OCRClient implements [Recognizer] against the EasyOCR proxy.
type OCRClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOCRClient creates an OCR client. baseURL defaults to the local proxy.
func NewOCRClient(baseURL string, client *http.Client) *OCRClient {
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &OCRClient{baseURL: baseURL, httpClient: client}
}

type ocrRequest struct {
	Image         string `json:"image"`
	ExpectedHoles int    `json:"expected_holes,omitempty"`
}

type ocrResponse struct {
	Success        bool        `json:"success"`
	Error          string      `json:"error,omitempty"`
	Detections     []Detection `json:"detections,omitempty"`
	Scores         []int       `json:"scores,omitempty"`
	Total          int         `json:"total,omitempty"`
	Confidence     float64     `json:"confidence,omitempty"`
	HolesFound     int         `json:"holes_found,omitempty"`
	ExpectedHoles  int         `json:"expected_holes,omitempty"`
	ProcessingTime float64     `json:"processing_time"`
}

// Health checks whether the OCR service is reachable.
func (o *OCRClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return shared.Transient(fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return shared.Transient(fmt.Errorf("%w: health returned status %d", shared.ErrServiceUnavailable, resp.StatusCode))
	}
	return nil
}

// Recognize runs plain OCR over an image and returns raw detections.
func (o *OCRClient) Recognize(ctx context.Context, image []byte) ([]Detection, error) {
	result, err := o.post(ctx, "/ocr", ocrRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return nil, err
	}
	return result.Detections, nil
}

// ExtractHoles extracts per-hole numbers from a scorecard image. expected is
// the hole count the proxy should look for (9 or 18). The proxy returns the
// values as a plain number array with a single aggregate confidence.
func (o *OCRClient) ExtractHoles(ctx context.Context, image []byte, expected int) (*ScorecardExtraction, error) {
	if expected <= 0 {
		expected = 18
	}

	result, err := o.post(ctx, "/extract_scores", ocrRequest{
		Image:         base64.StdEncoding.EncodeToString(image),
		ExpectedHoles: expected,
	})
	if err != nil {
		return nil, err
	}
	return &ScorecardExtraction{
		Scores:        result.Scores,
		Total:         result.Total,
		Confidence:    result.Confidence,
		HolesFound:    result.HolesFound,
		ExpectedHoles: result.ExpectedHoles,
	}, nil
}

// post performs a JSON POST against the proxy and unwraps its envelope.
// The proxy reports handled failures with success=false and HTTP 200 or 500;
// both surface the proxy's error text verbatim.
func (o *OCRClient) post(ctx context.Context, path string, payload ocrRequest) (*ocrResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, shared.Transient(fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shared.Transient(fmt.Errorf("failed to read response: %w", err))
	}

	var result ocrResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: unexpected response (status %d)", shared.ErrScorecardUnread, resp.StatusCode)
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		err := fmt.Errorf("%w: %s", shared.ErrScorecardUnread, msg)
		if resp.StatusCode >= 500 {
			return nil, shared.Transient(err)
		}
		return nil, shared.Terminal(err)
	}

	return &result, nil
}
