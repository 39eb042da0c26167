package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HFClient calls a HuggingFace-style text-classification inference
// endpoint and implements ModelClient.
type HFClient struct {
	baseURL   string
	model     string
	maxLength int
	client    *http.Client
}

// NewHFClient creates a new inference client.
func NewHFClient(baseURL, model string, maxLength int) *HFClient {
	if maxLength <= 0 {
		maxLength = 512
	}
	return &HFClient{
		baseURL:   baseURL,
		model:     model,
		maxLength: maxLength,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

type classifyScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends text to the inference endpoint and returns the class
// index with the highest score. Labels are expected in the LABEL_<n>
// form emitted by sequence-classification heads.
func (c *HFClient) Classify(ctx context.Context, text string) (int, error) {
	runes := []rune(text)
	if len(runes) > c.maxLength {
		text = string(runes[:c.maxLength])
	}

	body, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return 0, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling sentiment endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sentiment endpoint returned status %d", resp.StatusCode)
	}

	// Response shape: [[{"label": "LABEL_2", "score": 0.93}, ...]]
	var scores [][]classifyScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}
	if len(scores) == 0 || len(scores[0]) == 0 {
		return 0, fmt.Errorf("sentiment endpoint returned no scores")
	}

	best := scores[0][0]
	for _, s := range scores[0][1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	var idx int
	if _, err := fmt.Sscanf(best.Label, "LABEL_%d", &idx); err != nil {
		return 0, fmt.Errorf("unexpected label %q: %w", best.Label, err)
	}
	return idx, nil
}
