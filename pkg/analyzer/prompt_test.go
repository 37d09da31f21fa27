package analyzer

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt("/tmp/ws", []string{"POSIX", "MPI-IO"})

	for _, want := range []string{
		"/tmp/ws/header.txt",
		"/tmp/ws/paths.txt",
		"POSIX, MPI-IO",
		"DO NOT create any plots",
		"DO NOT suggest specific commands",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := buildAnalysisPrompt([]string{"POSIX", "STDIO"}, "")
	if !strings.Contains(prompt, "POSIX, STDIO") {
		t.Error("analysis prompt missing module list")
	}
	if !strings.Contains(prompt, "unique directories") {
		t.Error("analysis prompt missing directory task")
	}
	if strings.Contains(prompt, "The user also asks") {
		t.Error("analysis prompt should not mention a question when none is given")
	}

	withQ := buildAnalysisPrompt([]string{"POSIX"}, "why are writes slow?")
	if !strings.Contains(withQ, "why are writes slow?") {
		t.Error("analysis prompt missing user question")
	}
}

func TestBuildQAPrompt(t *testing.T) {
	prompt := buildQAPrompt("What files were accessed?")
	if !strings.Contains(prompt, "What files were accessed?") {
		t.Error("QA prompt missing question")
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := buildSummaryPrompt(`[{"role":"user","content":"analyze"}]`)
	if !strings.Contains(prompt, `"analyze"`) {
		t.Error("summary prompt missing transcript")
	}
	if !strings.Contains(prompt, "tuning file system parameters") {
		t.Error("summary prompt missing task focus")
	}
}
