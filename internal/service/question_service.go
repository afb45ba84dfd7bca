package service

import (
	"context"
	"fmt"
	"strings"
)

// Question generation uses a smaller token budget than feedback: the output is
// a short numbered list.
const questionMaxTokens = 800

type QuestionService struct {
	generator TextGenerator
	prompts   *PromptBuilder
}

func NewQuestionService(generator TextGenerator) *QuestionService {
	return &QuestionService{
		generator: generator,
		prompts:   NewPromptBuilder(),
	}
}

// GenerateQuestions produces the ordered question list for one upload.
// Provider failures come back as classified errors; the handler maps them onto
// the two user-facing messages.
func (s *QuestionService) GenerateQuestions(ctx context.Context, cvText, companyName, jobRole, level, jobDescription string) ([]string, error) {
	prompt := s.prompts.BuildQuestionsPrompt(cvText, companyName, jobRole, level, jobDescription)

	raw, err := s.generator.Generate(ctx, prompt, questionMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	questions := ParseQuestionList(raw)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in completion", ErrProviderAPI)
	}
	return questions, nil
}

// ParseQuestionList splits a numbered-list completion into question strings:
// blank lines and '#' comment lines are dropped, and a leading "N. " ordinal
// is stripped when the first three characters contain a period.
func ParseQuestionList(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		head := line
		if len(head) > 3 {
			head = head[:3]
		}
		if strings.Contains(head, ".") {
			if _, rest, found := strings.Cut(line, "."); found {
				line = strings.TrimSpace(rest)
			}
		}
		if line != "" {
			questions = append(questions, line)
		}
	}
	return questions
}
