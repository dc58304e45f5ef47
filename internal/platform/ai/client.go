// Package ai provides the outbound client for the chat-completions inference
// backend that produces preliminary clinical analyses.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const systemPrompt = `You are an expert AI Clinical Assistant. Your role is to perform a preliminary analysis of patient intake data for a licensed clinician to review. You are not a doctor and you are not providing a diagnosis. Your analysis must be cautious, evidence-based, and prioritize patient safety.

You will receive a JSON object with patient data. Your tasks are:
1. Analyze Health Risks: Identify potential health risks based on the provided metrics, lifestyle, and medical history.
2. Check Drug Interactions: Review the patient's medication list for potential drug-drug interactions.
3. Check Contraindications: Check for contraindications between the patient's medications and their stated medical conditions or allergies.
4. Flag High-Risk Metrics: Explicitly flag metrics that are outside of normal ranges (e.g., BMI > 30 or < 18.5, high/low blood pressure).
5. Suggest Treatment Plan: Propose a preliminary, conservative treatment plan. This can include medication suggestions (use generic names), lifestyle changes, and potential specialist referrals.
6. Generate Rationale & Citations: Provide a clear rationale for your analysis and cite reputable medical sources to support your key findings.

Output Format: You MUST respond with a single, valid JSON object and nothing else, with this exact shape:
{
  "risk_level": "low" | "medium" | "high",
  "safety_score": <integer 0-100, where 100 is the safest>,
  "treatment_plan": {
    "medications": [<strings>],
    "lifestyle_changes": [<strings>],
    "referrals": [<strings>]
  },
  "flagged_issues": {
    "drug_interactions": [<strings>],
    "contraindications": [<strings>],
    "warnings": [<strings>]
  },
  "summary": "<a concise summary for the clinician>",
  "citations": [<URL strings to the sources>]
}`

// Analyzer produces a raw analysis document for a serialized patient intake.
// The returned bytes are untrusted model output and must pass schema
// enforcement before use.
type Analyzer interface {
	Analyze(ctx context.Context, intakeJSON []byte) (json.RawMessage, error)
}

// UpstreamError reports a failed inference call: transport failure, non-2xx
// response, or a response with no usable content.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inference call failed: %s", e.Message)
}

// Config holds the client settings, normally sourced from environment config.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	http   *resty.Client
	model  string
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey)

	return &Client{
		http:   http,
		model:  cfg.Model,
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends the intake to the model and returns the raw JSON document from
// the first choice. Constrained to JSON output via response_format.
func (c *Client) Analyze(ctx context.Context, intakeJSON []byte) (json.RawMessage, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(intakeJSON)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var response chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		SetError(&response).
		Post("/chat/completions")

	if err != nil {
		c.logger.Error().Err(err).Msg("inference call failed")
		return nil, &UpstreamError{Message: err.Error()}
	}

	if resp.IsError() {
		msg := "unknown error"
		if response.Error != nil {
			msg = response.Error.Message
		}
		c.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("error", msg).
			Msg("inference backend returned error")
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if len(response.Choices) == 0 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Message: "response contained no choices"}
	}
	content := response.Choices[0].Message.Content
	if content == "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Message: "response contained empty content"}
	}

	c.logger.Debug().
		Int("content_bytes", len(content)).
		Msg("received analysis from inference backend")

	return json.RawMessage(content), nil
}
