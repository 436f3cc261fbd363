package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"intent-router/internal/catalog"
)

var sqlTag = regexp.MustCompile(`(?is)<SQL>(.*?)</SQL>`)

// extractSQL returns the statement between the first <SQL></SQL> pair.
func extractSQL(text string) (string, error) {
	m := sqlTag.FindStringSubmatch(text)
	if m == nil {
		return "", catalog.ErrNoSQL
	}
	return validateSQL(m[1])
}

// validateSQL accepts exactly one SELECT statement. A trailing semicolon is
// dropped; comments and further statements are rejected.
func validateSQL(stmt string) (string, error) {
	s := strings.TrimSpace(stmt)
	s = strings.TrimSpace(strings.TrimRight(s, "; \t\r\n"))
	if s == "" {
		return "", catalog.ErrNoSQL
	}
	if strings.Contains(s, ";") || strings.Contains(s, "--") || strings.Contains(s, "/*") {
		return "", fmt.Errorf("%w: %q", catalog.ErrUnsafeSQL, s)
	}
	fields := strings.Fields(s)
	if !strings.EqualFold(fields[0], "SELECT") {
		return "", fmt.Errorf("%w: %q", catalog.ErrUnsafeSQL, s)
	}
	return s, nil
}
