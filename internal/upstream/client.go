// Package upstream wraps the chat-completion API the assistant talks to.
package upstream

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/glow-labs/glowbot/internal/conversation"
)

const (
	defaultConnectTimeout = 10 * time.Second

	// Widget-side generation settings.
	temperature = 0.2
	maxTokens   = 800
)

// Client is a thin chat-completion client with a fixed model and
// bounded response length.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a client for the given API endpoint. baseURL may point at
// the official API or at any OpenAI-compatible server.
func New(baseURL, apiKey, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	config.HTTPClient = newHTTPClient()

	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: model,
	}
}

// Complete sends the message list and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// newHTTPClient creates a pooled HTTP client for API requests.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaultConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
