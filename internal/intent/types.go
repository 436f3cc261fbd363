package intent

import (
	"time"

	"intent-router/internal/model"
)

// Sync modes. Only local reconciliation is implemented; remote degrades to it.
const (
	SyncModeLocal  = "local"
	SyncModeRemote = "remote"
)

const (
	DefaultThreshold       = 0.5
	DefaultClassifyTimeout = 5 * time.Second
	MaxBatchQueries        = 100
)

// Config is the static router configuration.
type Config struct {
	Routes          []model.Route
	Threshold       float64
	SyncMode        string
	ClassifyTimeout time.Duration // 0 disables the deadline

	// QueryCacheSize > 0 caches query embeddings for QueryCacheTTL.
	QueryCacheSize int
	QueryCacheTTL  time.Duration
}

// SyncOutput summarizes one reconciliation pass.
type SyncOutput struct {
	Added    int           `json:"added"`
	Removed  int           `json:"removed"`
	Kept     int           `json:"kept"`
	Version  uint64        `json:"version"`
	Duration time.Duration `json:"duration"`
}

// Stats describes the serving state.
type Stats struct {
	Ready         bool      `json:"ready"`
	EncoderID     string    `json:"encoder_id"`
	Dimensions    int       `json:"dimensions"`
	Routes        int       `json:"routes"`
	Embeddings    int       `json:"embeddings"`
	Version       uint64    `json:"version"`
	Threshold     float64   `json:"threshold"`
	LastSync      time.Time `json:"last_sync"`
	LastSyncError string    `json:"last_sync_error,omitempty"`
}
