package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/liquorcabinet/backend/pkg/config"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
)

var errAPIKeyRequired = errors.New("anthropic api key is required")

// Client wraps the Anthropic Messages API for vision and text completions.
type Client struct {
	anthropic anthropic.Client
	cfg       config.AnthropicConfig
}

// NewClient builds the Anthropic client from configuration. Extra request
// options (custom transport, base URL) are forwarded to the SDK.
func NewClient(cfg config.AnthropicConfig, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errAPIKeyRequired
	}

	requestOpts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)

	return &Client{
		anthropic: anthropic.NewClient(requestOpts...),
		cfg:       cfg,
	}, nil
}

// IdentifyImage sends an image plus an instruction prompt to the vision model
// and returns the raw text of the first text block in the response.
func (c *Client) IdentifyImage(ctx context.Context, mediaType, base64Data, prompt string) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "anthropic client not configured")
	}

	resp, err := c.anthropic.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.IdentifyModel),
		MaxTokens: int64(c.cfg.IdentifyMaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, base64Data),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "anthropic identify request")
	}

	return firstText(resp)
}

// Complete sends a text-only prompt to the recipe model and returns the raw
// text of the first text block in the response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "anthropic client not configured")
	}

	resp, err := c.anthropic.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.RecipeModel),
		MaxTokens: int64(c.cfg.RecipeMaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "anthropic completion request")
	}

	return firstText(resp)
}

func firstText(resp *anthropic.Message) (string, error) {
	if resp == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "empty anthropic response")
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeDependency, "anthropic response contained no text block")
}
