package config

import "testing"

func TestResolveModel(t *testing.T) {
	t.Setenv("MODEL_NAME", "")

	if got := ResolveModel("openai/gpt-5"); got != "openai/gpt-5" {
		t.Errorf("explicit model should win, got %q", got)
	}
	if got := ResolveModel(""); got != DefaultModel {
		t.Errorf("expected default model, got %q", got)
	}

	t.Setenv("MODEL_NAME", "google/gemini-2.5-pro")
	if got := ResolveModel(""); got != "google/gemini-2.5-pro" {
		t.Errorf("MODEL_NAME should win over default, got %q", got)
	}
	if got := ResolveModel("openai/gpt-5"); got != "openai/gpt-5" {
		t.Errorf("explicit model should win over MODEL_NAME, got %q", got)
	}
}
