package summarizer

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const summaryPrompt = `Summarize the following citizen feedback for a government officer.

Rules:
- Write between 20 and 100 words.
- Keep the concrete problem, the place and who is affected.
- Do not add facts that are not in the feedback.
- Output ONLY the summary text, no headings, no quotes.

FEEDBACK:
%s`

// ClaudeBackend produces abstractive summaries with the Anthropic Messages API.
type ClaudeBackend struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func NewClaudeBackend(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *ClaudeBackend {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ClaudeBackend{
		client:    sdk.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *ClaudeBackend) Summarize(ctx context.Context, text string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(fmt.Sprintf(summaryPrompt, text))),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: summarize")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", eris.New("anthropic: empty summary")
	}
	return out, nil
}
