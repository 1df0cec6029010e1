package sentiment

import (
	"context"
	"fmt"
	"strings"

	"vanmitra-feedback/internal/llm"
	"vanmitra-feedback/internal/types"
)

// Completer is satisfied by *llm.Gateway.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

var _ Completer = (*llm.Gateway)(nil)

// GatewayClassifier asks a chat model for a three-way polarity verdict.
type GatewayClassifier struct {
	llm Completer
}

func NewGatewayClassifier(c Completer) *GatewayClassifier {
	return &GatewayClassifier{llm: c}
}

const classifyPrompt = `You are a sentiment classifier for citizen feedback collected from rural and tribal communities.

Classify the overall sentiment of the FEEDBACK below as exactly one of:
positive, negative, neutral

Return ONLY a JSON object of the form:
{"label": "positive|negative|neutral", "score": 0.0}

"score" is your confidence between 0 and 1.
Do not include commentary. Do not wrap the JSON in backticks.

FEEDBACK:
%s
`

func (c *GatewayClassifier) Classify(ctx context.Context, text string) (types.SecondarySentiment, error) {
	var verdict struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.llm.CompleteJSON(ctx, fmt.Sprintf(classifyPrompt, text), &verdict); err != nil {
		return types.SecondarySentiment{}, fmt.Errorf("classify sentiment: %w", err)
	}

	var label string
	switch strings.ToLower(strings.TrimSpace(verdict.Label)) {
	case "positive":
		label = types.SentimentPositive
	case "negative":
		label = types.SentimentNegative
	case "neutral":
		label = types.SentimentNeutral
	default:
		return types.SecondarySentiment{}, fmt.Errorf("classify sentiment: unexpected label %q", verdict.Label)
	}
	if verdict.Score < 0 || verdict.Score > 1 {
		return types.SecondarySentiment{}, fmt.Errorf("classify sentiment: score %v out of range", verdict.Score)
	}
	return types.SecondarySentiment{Label: label, Score: verdict.Score}, nil
}
