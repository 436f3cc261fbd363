package response_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"intent-router/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	t.Run("Formats Local Time", func(t *testing.T) {
		tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
		dt := response.DateTime(tm)

		b, err := json.Marshal(dt)
		if err != nil {
			t.Fatalf("unexpected error marshaling DateTime: %v", err)
		}

		// Local() makes the exact value depend on the runner timezone.
		str := string(b)
		if !strings.HasPrefix(str, `"`) || !strings.HasSuffix(str, `"`) {
			t.Errorf("expected string JSON format, got %s", str)
		}
		if len(str) != len(response.DateTimeFormat)+2 {
			t.Errorf("unexpected length: %s", str)
		}
	})

	t.Run("Zero Is Null", func(t *testing.T) {
		b, err := json.Marshal(response.DateTime(time.Time{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "null" {
			t.Errorf("expected null, got %s", b)
		}
	})
}
