package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"interview-navigator/internal/model"
)

// Feedback narratives are much longer than question lists, so the budget is
// larger.
const feedbackMaxTokens = 2500

type FeedbackService struct {
	generator TextGenerator
	prompts   *PromptBuilder
}

func NewFeedbackService(generator TextGenerator) *FeedbackService {
	return &FeedbackService{
		generator: generator,
		prompts:   NewPromptBuilder(),
	}
}

// Analyze issues one generation call for the whole interview and parses the
// structured result. A malformed completion degrades to an analysis carrying
// the raw text and is never an error, so a bad completion cannot strand a
// finished interview. Provider failures are still returned as errors because
// they happen before anything is persisted.
func (s *FeedbackService) Analyze(ctx context.Context, questions, answers []string) (*model.InterviewAnalysis, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("question/answer count mismatch: %d != %d", len(questions), len(answers))
	}

	prompt := s.prompts.BuildFeedbackPrompt(questions, answers)

	raw, err := s.generator.Generate(ctx, prompt, feedbackMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("feedback generation failed: %w", err)
	}

	return ParseFeedbackResponse(raw), nil
}

// ParseFeedbackResponse decodes the completion into the analysis shape. The
// model is instructed to emit raw JSON, but fences are stripped anyway before
// the strict unmarshal. On failure the raw text is preserved in the overall
// feedback with a parse-error note, and the per-question list stays empty.
func ParseFeedbackResponse(raw string) *model.InterviewAnalysis {
	cleaned := stripJSONFences(raw)

	var analysis model.InterviewAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		log.Printf("Failed to decode AI feedback JSON: %v", err)
		return &model.InterviewAnalysis{
			OverallFeedback:   "Error parsing detailed feedback. " + raw,
			QuestionsAnalysis: []model.QuestionAnalysis{},
		}
	}

	if analysis.QuestionsAnalysis == nil {
		analysis.QuestionsAnalysis = []model.QuestionAnalysis{}
	}
	return &analysis
}

func stripJSONFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
