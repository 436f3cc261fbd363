package faq

const (
	DefaultTopK       = 3
	DefaultCollection = "faq"

	// NoAnswer is returned when retrieval finds nothing usable.
	NoAnswer = "I don't know the answer to that yet. Please contact our support team."
)

// Entry is one question/answer pair.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Hit is an Entry returned by similarity search.
type Hit struct {
	Entry
	Score float64 `json:"score"`
}

type Config struct {
	TopK     int
	MinScore float64
}

type IngestOutput struct {
	Read     int
	Upserted int
	Skipped  int
}
