package llmprovider

import (
	"context"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Generator produces text from a normalized request. Manager and every
// Provider satisfy it.
type Generator interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	Generator

	// Name returns the provider name (e.g., "deepseek", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// NewTextRequest builds a single-turn request with an optional system prompt.
func NewTextRequest(system, prompt string) *Request {
	req := &Request{
		Messages: []Message{{Role: RoleUser, Parts: []Part{{Text: prompt}}}},
	}
	if system != "" {
		req.SystemInstruction = &Message{Parts: []Part{{Text: system}}}
	}
	return req
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "assistant"
	Parts []Part
}

// Text joins the message parts.
func (m Message) Text() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Part represents a text segment of a message
type Part struct {
	Text string
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Text returns the generated text.
func (r *Response) Text() string {
	return r.Content.Text()
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
