package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable marks failures to reach the generation endpoint or to get a
// usable envelope back from it. Callers must not retry automatically.
var ErrUnavailable = errors.New("generation endpoint unavailable")

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ChatResponse is the single normalized shape every provider returns.
type ChatResponse struct {
	Model   string
	Content string
	Done    bool
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
// Options are resolved per call and never mutate the provider.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string          // Override default model
	Host        string          // Override default host for this call only
	Format      json.RawMessage // JSON schema the output must conform to
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithHost(host string) Option {
	return func(o *Options) {
		o.Host = host
	}
}

func WithFormat(schema json.RawMessage) Option {
	return func(o *Options) {
		o.Format = schema
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (*ChatResponse, error)
}
