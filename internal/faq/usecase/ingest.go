package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"intent-router/internal/faq"
)

func (uc *implUseCase) Ingest(ctx context.Context, r io.Reader) (faq.IngestOutput, error) {
	entries, skipped, err := readEntries(r)
	if err != nil {
		return faq.IngestOutput{}, err
	}
	out := faq.IngestOutput{Read: len(entries) + skipped, Skipped: skipped}

	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
	}

	vectors, err := uc.enc.Encode(ctx, questions)
	if err != nil {
		return out, fmt.Errorf("faq.usecase.Ingest: encode: %w", err)
	}
	if err := uc.repo.EnsureCollection(ctx, len(vectors[0])); err != nil {
		return out, fmt.Errorf("faq.usecase.Ingest: %w", err)
	}
	if err := uc.repo.Upsert(ctx, entries, vectors); err != nil {
		return out, fmt.Errorf("faq.usecase.Ingest: %w", err)
	}

	out.Upserted = len(entries)
	uc.l.Infof(ctx, "faq.usecase.Ingest: upserted=%d skipped=%d encoder=%s", out.Upserted, out.Skipped, uc.enc.Identity())
	return out, nil
}

// readEntries parses a CSV with a header naming "question" and "answer"
// columns in any order. Rows with a blank question or answer are skipped and
// duplicate questions keep the last answer.
func readEntries(r io.Reader) ([]faq.Entry, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, faq.ErrNoEntries
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", faq.ErrInvalidCSV, err)
	}

	qi, ai := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "question":
			qi = i
		case "answer":
			ai = i
		}
	}
	if qi < 0 || ai < 0 {
		return nil, 0, fmt.Errorf("%w: header must contain question and answer columns", faq.ErrInvalidCSV)
	}

	var entries []faq.Entry
	index := map[string]int{}
	skipped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", faq.ErrInvalidCSV, err)
		}
		if qi >= len(rec) || ai >= len(rec) {
			skipped++
			continue
		}
		q, a := strings.TrimSpace(rec[qi]), strings.TrimSpace(rec[ai])
		if q == "" || a == "" {
			skipped++
			continue
		}
		if i, ok := index[q]; ok {
			entries[i].Answer = a
			skipped++
			continue
		}
		index[q] = len(entries)
		entries = append(entries, faq.Entry{Question: q, Answer: a})
	}

	if len(entries) == 0 {
		return nil, skipped, faq.ErrNoEntries
	}
	return entries, skipped, nil
}
