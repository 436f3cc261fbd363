package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"intent-router/internal/encoder"
	"intent-router/internal/faq"
	"intent-router/internal/faq/repository"
	"intent-router/pkg/llmprovider"
	"intent-router/pkg/log"
)

type memRepo struct {
	dims    int
	entries []faq.Entry
	vectors [][]float32
}

func (m *memRepo) EnsureCollection(ctx context.Context, dims int) error {
	m.dims = dims
	return nil
}

func (m *memRepo) Upsert(ctx context.Context, entries []faq.Entry, vectors [][]float32) error {
	m.entries = append(m.entries, entries...)
	m.vectors = append(m.vectors, vectors...)
	return nil
}

func (m *memRepo) Search(ctx context.Context, vector []float32, opts repository.SearchOptions) ([]faq.Hit, error) {
	var hits []faq.Hit
	for i, v := range m.vectors {
		var dot float64
		for j := range v {
			dot += float64(v[j]) * float64(vector[j])
		}
		if dot < opts.MinScore {
			continue
		}
		hits = append(hits, faq.Hit{Entry: m.entries[i], Score: dot})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}

type fakeLLM struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.calls++
	f.prompt = req.Messages[0].Text()
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: llmprovider.Message{Parts: []llmprovider.Part{{Text: f.reply}}}}, nil
}

const faqCSV = `question,answer
How can I track my order?,Use the tracking link in your confirmation email.
What is the return policy of the products?,Products can be returned within 30 days.
What payment methods are accepted?,"We accept cards, UPI and cash on delivery."
,orphan answer
`

func newTestUseCase(llm *fakeLLM, minScore float64) (*implUseCase, *memRepo) {
	repo := &memRepo{}
	uc := New(log.NewNop(), faq.Config{TopK: 2, MinScore: minScore}, encoder.NewHashing(0), repo, llm)
	return uc, repo
}

func TestIngest(t *testing.T) {
	uc, repo := newTestUseCase(&fakeLLM{}, 0)

	out, err := uc.Ingest(context.Background(), strings.NewReader(faqCSV))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if out.Upserted != 3 || out.Skipped != 1 || out.Read != 4 {
		t.Errorf("IngestOutput = %+v", out)
	}
	if repo.dims != encoder.DefaultHashingDimensions {
		t.Errorf("collection dims = %d", repo.dims)
	}
	if repo.entries[2].Answer != "We accept cards, UPI and cash on delivery." {
		t.Errorf("quoted field parsed as %q", repo.entries[2].Answer)
	}
}

func TestReadEntries(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr error
	}{
		{name: "columns in any order", in: "answer,question\nA1,Q1\n", want: 1},
		{name: "duplicate question keeps last", in: "question,answer\nQ,A1\nQ,A2\n", want: 1},
		{name: "missing column", in: "question,reply\nQ,A\n", wantErr: faq.ErrInvalidCSV},
		{name: "empty input", in: "", wantErr: faq.ErrNoEntries},
		{name: "header only", in: "question,answer\n", wantErr: faq.ErrNoEntries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _, err := readEntries(strings.NewReader(tt.in))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("readEntries() error = %v", err)
			}
			if len(entries) != tt.want {
				t.Fatalf("entries = %d, want %d", len(entries), tt.want)
			}
		})
	}

	entries, _, _ := readEntries(strings.NewReader("question,answer\nQ,A1\nQ,A2\n"))
	if entries[0].Answer != "A2" {
		t.Errorf("duplicate kept %q, want A2", entries[0].Answer)
	}
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("retrieves closest entry into the prompt", func(t *testing.T) {
		llm := &fakeLLM{reply: "  Use the tracking link.  "}
		uc, _ := newTestUseCase(llm, 0)
		if _, err := uc.Ingest(ctx, strings.NewReader(faqCSV)); err != nil {
			t.Fatal(err)
		}

		got, err := uc.Answer(ctx, "how do I track my order")
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if got != "Use the tracking link." {
			t.Errorf("Answer() = %q", got)
		}
		first := strings.Index(llm.prompt, "1. Q: ")
		if first < 0 || !strings.HasPrefix(llm.prompt[first+6:], "How can I track my order?") {
			t.Errorf("closest entry not ranked first in prompt:\n%s", llm.prompt)
		}
	})

	t.Run("no hits skips the LLM", func(t *testing.T) {
		llm := &fakeLLM{reply: "unused"}
		uc, _ := newTestUseCase(llm, 0.99)
		if _, err := uc.Ingest(ctx, strings.NewReader(faqCSV)); err != nil {
			t.Fatal(err)
		}
		got, err := uc.Answer(ctx, "completely unrelated gardening tips")
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if got != faq.NoAnswer || llm.calls != 0 {
			t.Errorf("Answer() = %q, llm calls = %d", got, llm.calls)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		uc, _ := newTestUseCase(&fakeLLM{}, 0)
		if _, err := uc.Answer(ctx, "   "); !errors.Is(err, faq.ErrEmptyQuery) {
			t.Errorf("expected ErrEmptyQuery, got %v", err)
		}
	})

	t.Run("llm failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		uc, _ := newTestUseCase(&fakeLLM{err: boom}, 0)
		uc.Ingest(ctx, strings.NewReader(faqCSV))
		if _, err := uc.Answer(ctx, "track my order"); !errors.Is(err, boom) {
			t.Errorf("expected wrapped boom, got %v", err)
		}
	})

	t.Run("blank llm reply", func(t *testing.T) {
		uc, _ := newTestUseCase(&fakeLLM{reply: " "}, 0)
		uc.Ingest(ctx, strings.NewReader(faqCSV))
		if _, err := uc.Answer(ctx, "track my order"); !errors.Is(err, faq.ErrLLMResponse) {
			t.Errorf("expected ErrLLMResponse, got %v", err)
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 10); got != "héllo" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("héllo", 2); got != "hé..." {
		t.Errorf("truncate long = %q", got)
	}
}
