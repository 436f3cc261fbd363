package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"intent-router/internal/catalog"
	"intent-router/internal/catalog/repository/sqlite"
	"intent-router/pkg/llmprovider"
	"intent-router/pkg/log"
)

// scriptedLLM replies with the next scripted text and records each prompt.
type scriptedLLM struct {
	replies []string
	prompts []string
	err     error
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.prompts = append(s.prompts, req.Messages[0].Text())
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return &llmprovider.Response{Content: llmprovider.Message{Parts: []llmprovider.Part{{Text: reply}}}}, nil
}

const productsCSV = `product_link,title,brand,price,discount,avg_rating,total_ratings
https://shop/p/1,Then She Was Gone: A Novel,Atria,499,0.2,4.3,"1,200"
https://shop/p/2,Pink Puma Running Shoes,Puma,4599,0,4.1,87
https://shop/p/3,Nike Air Zoom,Nike,7999,0.35,4.6,530
`

func newTestUseCase(t *testing.T, llm *scriptedLLM) *implUseCase {
	t.Helper()
	ctx := context.Background()
	repo, err := sqlite.New(ctx, log.NewNop(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })

	uc := New(log.NewNop(), repo, llm)
	n, err := uc.Import(ctx, strings.NewReader(productsCSV))
	if err != nil || n != 3 {
		t.Fatalf("Import() = %d, %v", n, err)
	}
	return uc
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("sql then phrasing", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{
			"Here you go:\n<SQL>SELECT product_link, title, price FROM product WHERE price < 1000;</SQL>",
			"Then She Was Gone: A Novel: 499 (https://shop/p/1)",
		}}
		uc := newTestUseCase(t, llm)

		got, err := uc.Answer(ctx, "Show me products under 1000")
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if got != "Then She Was Gone: A Novel: 499 (https://shop/p/1)" {
			t.Errorf("Answer() = %q", got)
		}
		if len(llm.prompts) != 2 {
			t.Fatalf("llm calls = %d, want 2", len(llm.prompts))
		}
		if !strings.Contains(llm.prompts[1], "https://shop/p/1 | Then She Was Gone: A Novel | 499") {
			t.Errorf("rows missing from second prompt:\n%s", llm.prompts[1])
		}
	})

	t.Run("zero rows skips phrasing", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"<SQL>SELECT title FROM product WHERE brand = 'Adidas'</SQL>"}}
		uc := newTestUseCase(t, llm)
		got, err := uc.Answer(ctx, "adidas shoes")
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if got != catalog.NoResults || len(llm.prompts) != 1 {
			t.Errorf("Answer() = %q after %d calls", got, len(llm.prompts))
		}
	})

	t.Run("unsafe sql rejected before execution", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"<SQL>DELETE FROM product</SQL>"}}
		uc := newTestUseCase(t, llm)
		if _, err := uc.Answer(ctx, "remove everything"); !errors.Is(err, catalog.ErrUnsafeSQL) {
			t.Fatalf("expected ErrUnsafeSQL, got %v", err)
		}
		rows, err := uc.repo.Query(ctx, "SELECT COUNT(*) FROM product", 1)
		if err != nil || rows.Values[0][0] != "3" {
			t.Errorf("catalog modified: %v %v", rows.Values, err)
		}
	})

	t.Run("missing tags", func(t *testing.T) {
		uc := newTestUseCase(t, &scriptedLLM{replies: []string{"SELECT * FROM product"}})
		if _, err := uc.Answer(ctx, "anything"); !errors.Is(err, catalog.ErrNoSQL) {
			t.Fatalf("expected ErrNoSQL, got %v", err)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		uc := newTestUseCase(t, &scriptedLLM{})
		if _, err := uc.Answer(ctx, " "); !errors.Is(err, catalog.ErrEmptyQuery) {
			t.Fatalf("expected ErrEmptyQuery, got %v", err)
		}
	})

	t.Run("llm error", func(t *testing.T) {
		boom := errors.New("boom")
		uc := newTestUseCase(t, &scriptedLLM{err: boom})
		if _, err := uc.Answer(ctx, "anything"); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestValidateSQL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "plain select", in: " SELECT * FROM product ", want: "SELECT * FROM product"},
		{name: "lowercase with semicolon", in: "select title from product;\n", want: "select title from product"},
		{name: "stacked statements", in: "SELECT 1; DROP TABLE product", wantErr: catalog.ErrUnsafeSQL},
		{name: "update", in: "UPDATE product SET price = 0", wantErr: catalog.ErrUnsafeSQL},
		{name: "pragma", in: "PRAGMA query_only = 0", wantErr: catalog.ErrUnsafeSQL},
		{name: "comment", in: "SELECT 1 -- hi", wantErr: catalog.ErrUnsafeSQL},
		{name: "empty", in: " ; ", wantErr: catalog.ErrNoSQL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateSQL(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("validateSQL() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestExtractSQL(t *testing.T) {
	got, err := extractSQL("text <sql>\nSELECT 1\n</sql> more <SQL>SELECT 2</SQL>")
	if err != nil || got != "SELECT 1" {
		t.Fatalf("extractSQL() = %q, %v", got, err)
	}
}

func TestReadProducts(t *testing.T) {
	products, err := readProducts(strings.NewReader(productsCSV))
	if err != nil {
		t.Fatalf("readProducts() error = %v", err)
	}
	if products[0].TotalRatings != 1200 || products[2].Discount != 0.35 {
		t.Errorf("parsed %+v", products)
	}

	if _, err := readProducts(strings.NewReader("title\nx\n")); !errors.Is(err, catalog.ErrInvalidCSV) {
		t.Errorf("expected ErrInvalidCSV for missing column, got %v", err)
	}
	if _, err := readProducts(strings.NewReader("product_link,title,price\nl,t,cheap\n")); !errors.Is(err, catalog.ErrInvalidCSV) {
		t.Errorf("expected ErrInvalidCSV for bad price, got %v", err)
	}
}
