package encoder

import "context"

// Encoder maps text to fixed-length vectors. Implementations are pure
// functions of their input for a fixed Identity and are safe for concurrent use.
type Encoder interface {
	// Identity names the model and version, e.g. "voyage:voyage-3".
	// Persisted embeddings are keyed by it.
	Identity() string

	// Dimensions is the output vector length, or 0 if it is only known after
	// the first call.
	Dimensions() int

	// Encode returns exactly one vector per input text, in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}
