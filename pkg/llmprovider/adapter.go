package llmprovider

import (
	"context"

	"intent-router/pkg/deepseek"
	"intent-router/pkg/gemini"
	"intent-router/pkg/qwen"
)

const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
	ProviderQwen     = "qwen"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		sys := toGeminiContent(*req.SystemInstruction)
		sys.Role = ""
		geminiReq.SystemInstruction = &sys
	}
	for i, msg := range req.Messages {
		geminiReq.Messages[i] = toGeminiContent(msg)
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGemini, Err: err}
	}

	out := &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: resp.Text()}}},
		ProviderName: ProviderGemini,
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return ProviderGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGeminiContent(msg Message) gemini.Content {
	role := gemini.RoleUser
	if msg.Role == RoleAssistant {
		role = gemini.RoleModel
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
	}
	return gemini.Content{Role: role, Parts: parts}
}

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]deepseek.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil {
		msgs = append(msgs, deepseek.Message{Role: deepseek.RoleSystem, Content: req.SystemInstruction.Text()})
	}
	for _, m := range req.Messages {
		role := deepseek.RoleUser
		if m.Role == RoleAssistant {
			role = deepseek.RoleAssistant
		}
		msgs = append(msgs, deepseek.Message{Role: role, Content: m.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, &deepseek.Request{
		Model:       a.client.Model(),
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, &ProviderError{Provider: ProviderDeepSeek, Err: err}
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: resp.Text()}}},
		ProviderName: ProviderDeepSeek,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *DeepSeekAdapter) Name() string {
	return ProviderDeepSeek
}

// Model returns model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

// QwenAdapter adapts pkg/qwen to llmprovider.Provider interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	qreq := &qwen.Request{
		Messages:    make([]qwen.Message, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		qreq.System = req.SystemInstruction.Text()
	}
	for i, m := range req.Messages {
		role := qwen.RoleUser
		if m.Role == RoleAssistant {
			role = qwen.RoleAssistant
		}
		qreq.Messages[i] = qwen.Message{Role: role, Content: m.Text()}
	}

	resp, err := a.client.GenerateContent(ctx, qreq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderQwen, Err: err}
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: resp.Text}}},
		ProviderName: ProviderQwen,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *QwenAdapter) Name() string {
	return ProviderQwen
}

// Model returns model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}
