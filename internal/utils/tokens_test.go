package utils

import (
	"strings"
	"testing"
)

func TestCountTokensEmpty(t *testing.T) {
	if got := CountTokens(""); got != 0 {
		t.Fatalf("expected 0 tokens for empty string, got %d", got)
	}
}

func TestCountTokensShortText(t *testing.T) {
	if got := CountTokens("abc"); got != 1 {
		t.Fatalf("expected at least 1 token for non-empty text, got %d", got)
	}
}

func TestCountTokensHeuristic(t *testing.T) {
	text := strings.Repeat("x", 400)
	if got := CountTokens(text); got != 100 {
		t.Fatalf("expected 100 tokens for 400 chars, got %d", got)
	}
}

func TestTruncateToTokenLimit(t *testing.T) {
	text := strings.Repeat("a", 100)
	out := TruncateToTokenLimit(text, 10)
	if len(out) != 40 {
		t.Fatalf("expected 40 chars after truncation, got %d", len(out))
	}
	if TruncateToTokenLimit(text, 1000) != text {
		t.Fatalf("text under the limit should be returned unchanged")
	}
	if TruncateToTokenLimit(text, 0) != "" {
		t.Fatalf("zero limit should return empty string")
	}
}
