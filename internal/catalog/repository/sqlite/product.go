package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"intent-router/internal/catalog"
)

func (r *implRepository) Insert(ctx context.Context, products []catalog.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog.sqlite.Insert: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO product
		(product_link, title, brand, price, discount, avg_rating, total_ratings)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog.sqlite.Insert: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Link, p.Title, p.Brand, p.Price, p.Discount, p.AvgRating, p.TotalRatings); err != nil {
			return fmt.Errorf("catalog.sqlite.Insert: %s: %w", p.Link, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog.sqlite.Insert: commit: %w", err)
	}
	return nil
}

// Query pins one connection, switches it to query_only for the duration of
// the statement and switches it back before returning it to the pool.
func (r *implRepository) Query(ctx context.Context, stmt string, limit int) (catalog.Rows, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = 1"); err != nil {
		return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: %w", err)
	}
	defer conn.ExecContext(context.Background(), "PRAGMA query_only = 0")

	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, limit)
}

func scanRows(rows *sql.Rows, limit int) (catalog.Rows, error) {
	cols, err := rows.Columns()
	if err != nil {
		return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: columns: %w", err)
	}
	out := catalog.Rows{Columns: cols}

	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if limit > 0 && len(out.Values) == limit {
			out.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = format(v)
		}
		out.Values = append(out.Values, row)
	}
	if err := rows.Err(); err != nil {
		return catalog.Rows{}, fmt.Errorf("catalog.sqlite.Query: %w", err)
	}
	return out, nil
}

func format(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
