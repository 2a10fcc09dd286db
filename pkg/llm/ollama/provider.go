package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"retro-board-be/pkg/llm"
)

const DefaultHost = "127.0.0.1:11434"

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(host, modelName string, timeout time.Duration) *OllamaProvider {
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProvider{
		BaseURL:   NormalizeHost(host),
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NormalizeHost accepts the OLLAMA_HOST forms "host:port", "http://host:port/"
// and returns a base URL without a trailing slash.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/")
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string         `json:"model"`
	Message *ollamaMessage `json:"message"`
	Done    bool           `json:"done"`
}

// --- Interface Implementation ---

// Chat performs exactly one request. Host and model overrides apply to this
// call only; the provider itself is never modified.
func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.ChatResponse, error) {
	// 1. Process Options
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	// 2. Map generic messages to Ollama messages
	ollamaMessages := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		ollamaMessages[i] = ollamaMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	// 3. Prepare Payload
	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}
	baseURL := o.BaseURL
	if options.Host != "" {
		baseURL = NormalizeHost(options.Host)
	}

	reqPayload := ollamaChatRequest{
		Model:    model,
		Messages: ollamaMessages,
		Stream:   false,
		Format:   options.Format,
	}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		reqPayload.Options = &ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		}
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// 4. Send Request
	url := baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", llm.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama request to %s failed: %v", llm.ErrUnavailable, baseURL, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", llm.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama error: status %d, body: %s", llm.ErrUnavailable, resp.StatusCode, string(bodyBytes))
	}

	// 5. Normalize the envelope; the message content itself is validated by the caller.
	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", llm.ErrUnavailable, err)
	}
	if ollamaResp.Message == nil {
		return nil, fmt.Errorf("%w: response has no message", llm.ErrUnavailable)
	}

	return &llm.ChatResponse{
		Model:   ollamaResp.Model,
		Content: ollamaResp.Message.Content,
		Done:    ollamaResp.Done,
	}, nil
}
