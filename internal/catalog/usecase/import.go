package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"intent-router/internal/catalog"
)

func (uc *implUseCase) Import(ctx context.Context, r io.Reader) (int, error) {
	products, err := readProducts(r)
	if err != nil {
		return 0, err
	}
	if err := uc.repo.Insert(ctx, products); err != nil {
		return 0, fmt.Errorf("catalog.usecase.Import: %w", err)
	}
	uc.l.Infof(ctx, "catalog.usecase.Import: imported %d products", len(products))
	return len(products), nil
}

// readProducts parses a CSV keyed by product column names. product_link and
// title are required; numeric columns default to zero when blank.
func readProducts(r io.Reader) ([]catalog.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", catalog.ErrInvalidCSV, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"product_link", "title"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", catalog.ErrInvalidCSV, required)
		}
	}

	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []catalog.Product
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", catalog.ErrInvalidCSV, line, err)
		}

		p := catalog.Product{
			Link:  get(rec, "product_link"),
			Title: get(rec, "title"),
			Brand: get(rec, "brand"),
		}
		if p.Link == "" || p.Title == "" {
			return nil, fmt.Errorf("%w: line %d: product_link and title are required", catalog.ErrInvalidCSV, line)
		}
		if p.Price, err = parseFloat(get(rec, "price")); err != nil {
			return nil, fmt.Errorf("%w: line %d: price: %v", catalog.ErrInvalidCSV, line, err)
		}
		if p.Discount, err = parseFloat(get(rec, "discount")); err != nil {
			return nil, fmt.Errorf("%w: line %d: discount: %v", catalog.ErrInvalidCSV, line, err)
		}
		if p.AvgRating, err = parseFloat(get(rec, "avg_rating")); err != nil {
			return nil, fmt.Errorf("%w: line %d: avg_rating: %v", catalog.ErrInvalidCSV, line, err)
		}
		total, err := parseFloat(get(rec, "total_ratings"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: total_ratings: %v", catalog.ErrInvalidCSV, line, err)
		}
		p.TotalRatings = int(total)
		out = append(out, p)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
