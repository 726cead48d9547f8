package sentiment

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func disabledAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(context.Background(), "", opts...)
	if err != nil {
		t.Fatalf("Expected disabled analyzer, got %v", err)
	}
	return a
}

func TestNewAnalyzerWithoutKey(t *testing.T) {
	a := disabledAnalyzer(t)
	if a.Enabled() {
		t.Error("Expected analyzer disabled without a key")
	}
}

func TestAnalyzerOptions(t *testing.T) {
	a := disabledAnalyzer(t, WithModel("gemini-2.0-flash"), WithMaxChars(500),
		WithTemperature(0.7), WithTimeout(10*time.Second))

	if a.model != "gemini-2.0-flash" {
		t.Errorf("Expected model override, got %s", a.model)
	}
	if a.maxChars != 500 {
		t.Errorf("Expected max chars 500, got %d", a.maxChars)
	}
	if a.temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %f", a.temperature)
	}
	if a.timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", a.timeout)
	}

	// Empty/zero options keep the defaults.
	b := disabledAnalyzer(t, WithModel(""), WithMaxChars(0), WithTimeout(0))
	if b.model != DefaultModel {
		t.Errorf("Expected default model, got %s", b.model)
	}
	if b.maxChars != 1500 {
		t.Errorf("Expected default max chars, got %d", b.maxChars)
	}
	if b.timeout != defaultTimeout {
		t.Errorf("Expected default timeout, got %v", b.timeout)
	}
}

func TestAnalyzeArticleDisabled(t *testing.T) {
	a := disabledAnalyzer(t)

	result := a.AnalyzeArticle(context.Background(), "some article body")
	if result.Sentiment != 0.0 {
		t.Errorf("Expected neutral sentiment when disabled, got %f", result.Sentiment)
	}
	if result.Summary != "analysis unavailable" {
		t.Errorf("Expected fallback summary, got %s", result.Summary)
	}
}

func TestAnalyzeArticleEmptyContent(t *testing.T) {
	a := disabledAnalyzer(t)

	result := a.AnalyzeArticle(context.Background(), "")
	if result.Sentiment != 0.0 || result.Summary != "analysis unavailable" {
		t.Errorf("Expected fallback for empty content, got %+v", result)
	}
}

func TestTrendReportDisabled(t *testing.T) {
	a := disabledAnalyzer(t)

	report := a.TrendReport(context.Background(), []string{"fed", "rates"}, 0.2)
	if report.Title != "Trend analysis unavailable" {
		t.Errorf("Expected fallback title, got %s", report.Title)
	}
}

func TestTrendReportNoKeywords(t *testing.T) {
	a := disabledAnalyzer(t)

	report := a.TrendReport(context.Background(), nil, 0.2)
	if report.Title != "Trend analysis unavailable" {
		t.Errorf("Expected fallback for empty keywords, got %s", report.Title)
	}
}

func TestBuildArticlePromptTruncates(t *testing.T) {
	a := disabledAnalyzer(t, WithMaxChars(50))

	long := strings.Repeat("x", 200)
	prompt := a.buildArticlePrompt(long)

	if strings.Contains(prompt, strings.Repeat("x", 51)) {
		t.Error("Expected content truncated to max chars")
	}
	if !strings.Contains(prompt, "SENTIMENT:") || !strings.Contains(prompt, "KEYWORDS:") {
		t.Error("Expected structured format instructions in the prompt")
	}
}

func TestTruncateOnRuneBoundary(t *testing.T) {
	// Korean market headlines are 3 bytes per rune; a byte-index cut
	// would split one mid-sequence.
	content := strings.Repeat("증", 100)

	out := truncateOnRuneBoundary(content, 50)
	if !utf8.ValidString(out) {
		t.Error("Expected truncation to preserve valid UTF-8")
	}
	if len(out) > 50 {
		t.Errorf("Expected at most 50 bytes, got %d", len(out))
	}
	if len(out) != 48 {
		t.Errorf("Expected cut at the last full rune (48 bytes), got %d", len(out))
	}

	// ASCII under the limit passes through untouched.
	if got := truncateOnRuneBoundary("short", 50); got != "short" {
		t.Errorf("Expected short content unchanged, got %q", got)
	}
}

func TestBuildArticlePromptKeepsValidUTF8(t *testing.T) {
	a := disabledAnalyzer(t, WithMaxChars(50))

	prompt := a.buildArticlePrompt(strings.Repeat("원", 100))
	if !utf8.ValidString(prompt) {
		t.Error("Expected prompt to be valid UTF-8 after truncation")
	}
}

func TestBuildTrendPrompt(t *testing.T) {
	prompt := buildTrendPrompt([]string{"fed", "rates"}, 0.25)

	if !strings.Contains(prompt, "fed, rates") {
		t.Error("Expected keywords joined into the prompt")
	}
	if !strings.Contains(prompt, "0.250") {
		t.Error("Expected score formatted into the prompt")
	}
	if !strings.Contains(prompt, "TITLE:") || !strings.Contains(prompt, "SUMMARY:") {
		t.Error("Expected structured format instructions in the prompt")
	}
}
