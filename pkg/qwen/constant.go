package qwen

import "time"

const (
	// DefaultModel is the default Qwen model
	DefaultModel = "qwen-plus"

	// DefaultBaseURL is the DashScope OpenAI-compatible endpoint
	DefaultBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	DefaultTimeout = 30 * time.Second

	RoleUser      = "user"
	RoleAssistant = "assistant"
	roleSystem    = "system"
)
