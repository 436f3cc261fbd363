package voyage

const (
	DefaultBaseURL = "https://api.voyageai.com/v1"
	DefaultModel   = "voyage-3" // 1024 dimensions

	// MaxBatchSize is the maximum number of inputs per embeddings call.
	MaxBatchSize = 128
)
