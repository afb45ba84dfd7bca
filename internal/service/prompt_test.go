package service

import (
	"strings"
	"testing"

	"interview-navigator/internal/model"
)

func TestLevelInstruction(t *testing.T) {
	pb := NewPromptBuilder()

	tests := []struct {
		level string
		want  string
	}{
		{model.LevelBeginner, beginnerInstruction},
		{model.LevelIntermediate, intermediateInstruction},
		{model.LevelAdvanced, advancedInstruction},
		{model.LevelOther, balancedInstruction},
		{"", balancedInstruction},
		{"beginner", balancedInstruction}, // exact match only
	}

	for _, tt := range tests {
		if got := pb.LevelInstruction(tt.level); got != tt.want {
			t.Errorf("LevelInstruction(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestBuildQuestionsPromptWithJobDescription(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildQuestionsPrompt("cv body", "Acme", "Backend Engineer", model.LevelAdvanced, "builds APIs")

	for _, want := range []string{
		"and Job Description",
		"while also aligning with the requirements in the Job Description",
		"JOB DESCRIPTION:\nbuilds APIs",
		"Backend Engineer position at Acme",
		advancedInstruction,
		"CV/RESUME TEXT:\ncv body",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildQuestionsPromptWithoutJobDescription(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildQuestionsPrompt("cv body", "Acme", "Backend Engineer", model.LevelBeginner, "")

	for _, extra := range []string{
		"and Job Description",
		"while also aligning",
		"JOB DESCRIPTION:",
	} {
		if strings.Contains(prompt, extra) {
			t.Errorf("prompt should not contain %q when no job description is given", extra)
		}
	}
	if !strings.Contains(prompt, beginnerInstruction) {
		t.Error("prompt missing level instruction")
	}
}

func TestBuildFeedbackPromptPairsQuestionsAndAnswers(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildFeedbackPrompt(
		[]string{"What is Go?", "What is a channel?"},
		[]string{"A language.", "A pipe."},
	)

	for _, want := range []string{
		"Question 1: What is Go?\nCandidate's Answer: A language.",
		"Question 2: What is a channel?\nCandidate's Answer: A pipe.",
		`"overall_feedback"`,
		`"questions_analysis"`,
		`"status": "Correct" | "Partial" | "Wrong"`,
		"Output raw JSON only.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
