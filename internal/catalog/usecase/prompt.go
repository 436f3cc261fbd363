package usecase

import (
	"fmt"
	"strings"

	"intent-router/internal/catalog"
)

const sqlSystemPrompt = `You are an expert in understanding the database schema and generating SQLite queries for a natural language question about products.
Table schema:

%s

Rules:
- Return exactly one SELECT statement and nothing else, wrapped in <SQL></SQL> tags.
- Always select product_link, title and price together with any other columns you need.
- Match brand and title case-insensitively with LIKE and %% wildcards, e.g. lower(brand) LIKE '%%puma%%'.
- discount is a fraction between 0 and 1; price is in rupees.
- Never modify data.`

const answerSystemPrompt = `You are a shopping assistant. Answer the user's question in natural language using only the data rows given.
List products one per line as: title: price (product_link).
Do not mention SQL, tables or rows.`

func sqlPrompt(schema string) string {
	return fmt.Sprintf(sqlSystemPrompt, strings.TrimSpace(schema))
}

func answerPrompt(query string, rows catalog.Rows) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %q\n\nData:\n", query)
	sb.WriteString(strings.Join(rows.Columns, " | "))
	sb.WriteString("\n")
	for _, r := range rows.Values {
		sb.WriteString(strings.Join(r, " | "))
		sb.WriteString("\n")
	}
	if rows.Truncated {
		fmt.Fprintf(&sb, "(only the first %d rows are shown)\n", rows.Len())
	}
	return sb.String()
}
