package model

// Scope identifies the caller of a chat turn.
type Scope struct {
	UserID   string
	Username string
	Channel  string // "http", "telegram", "cli"
}

// Environment names the deployment environment.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentDevelopment Environment = "development"
)
