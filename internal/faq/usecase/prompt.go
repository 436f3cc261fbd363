package usecase

import (
	"fmt"
	"strings"

	"intent-router/internal/faq"
)

const systemPrompt = `You are a customer support assistant for an online store.
Answer the user's question using only the FAQ entries provided.
If the entries do not contain the answer, say "I don't know" and nothing else.
Keep the answer short and do not mention the FAQ itself.`

// maxAnswerRunes keeps one FAQ answer from dominating the prompt.
const maxAnswerRunes = 800

func buildPrompt(query string, hits []faq.Hit) string {
	var sb strings.Builder
	sb.WriteString("FAQ entries:\n\n")
	for i, h := range hits {
		fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s\n\n", i+1, h.Question, truncate(h.Answer, maxAnswerRunes))
	}
	fmt.Fprintf(&sb, "Question: %q", query)
	return sb.String()
}

func truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
