// Package planner provides the deliberative tier's external oracle: an LLM
// that turns an agent's situation summary into a behavior choice. The decision
// cascade treats it as untrusted and slow; every response is validated against
// the behavior catalog and every request carries a deadline.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/lizTheDeveloper/ai-village-sub004/decision"
)

// GeminiOracle implements decision.Oracle using Google's Gemini.
type GeminiOracle struct {
	client    *genai.Client
	model     string
	behaviors []string
	log       *logrus.Logger
}

// NewGeminiOracle creates the oracle. behaviors is the registered behavior
// catalog, included in every prompt so the model picks from real options.
func NewGeminiOracle(ctx context.Context, apiKey, model string, behaviors []string, log *logrus.Logger) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiOracle{client: client, model: model, behaviors: behaviors, log: log}, nil
}

// planDoc is the JSON shape the model is asked to answer with.
type planDoc struct {
	Behavior string         `json:"behavior"`
	Params   map[string]any `json:"params"`
}

// Plan sends the agent's situation to the model and parses its choice.
// The caller owns the deadline on ctx.
func (o *GeminiOracle) Plan(ctx context.Context, req decision.PlanRequest) (decision.PlanResponse, error) {
	prompt := buildPrompt(req, o.behaviors)

	resp, err := o.client.Models.GenerateContent(ctx, o.model, genai.Text(prompt), nil)
	if err != nil {
		return decision.PlanResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return decision.PlanResponse{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	doc, err := parsePlan(sb.String())
	if err != nil {
		o.log.WithFields(logrus.Fields{
			"agent": req.AgentID,
			"raw":   truncate(sb.String(), 200),
		}).WithError(err).Debug("unparseable plan response")
		return decision.PlanResponse{}, err
	}

	return decision.PlanResponse{
		BehaviorID: doc.Behavior,
		Params:     decision.Params(doc.Params),
	}, nil
}

// parsePlan extracts the JSON plan, tolerating markdown code fences.
func parsePlan(raw string) (planDoc, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var doc planDoc
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return planDoc{}, fmt.Errorf("parsing plan: %w", err)
	}
	if doc.Behavior == "" {
		return planDoc{}, fmt.Errorf("plan names no behavior")
	}
	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ decision.Oracle = (*GeminiOracle)(nil)
