package service

import (
	"fmt"
	"strings"

	"interview-navigator/internal/model"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Level-specific instructions, chosen by exact match on the interview level.
// Anything else (including "Other") gets the balanced-set instruction.
const (
	beginnerInstruction     = "The questions should focus on basic knowledge, entry-level skills, and general understanding of the field."
	intermediateInstruction = "The questions should focus on practical experience, challenges faced in the role, and problem-solving skills."
	advancedInstruction     = "The questions should focus on advanced technical knowledge, leadership skills, and strategic thinking."
	balancedInstruction     = "Please provide a balanced set of questions."
)

func (pb *PromptBuilder) LevelInstruction(level string) string {
	switch level {
	case model.LevelBeginner:
		return beginnerInstruction
	case model.LevelIntermediate:
		return intermediateInstruction
	case model.LevelAdvanced:
		return advancedInstruction
	case model.LevelOther:
		return balancedInstruction
	default:
		return balancedInstruction
	}
}

// BuildQuestionsPrompt asks for 6-10 personalized questions as a numbered
// list. The job-description section, and the wording that acknowledges it,
// appear only when a description was supplied.
func (pb *PromptBuilder) BuildQuestionsPrompt(cvText, companyName, jobRole, level, jobDescription string) string {
	var b strings.Builder

	b.WriteString("Based on the following CV/resume text")
	if jobDescription != "" {
		b.WriteString(" and Job Description")
	}
	fmt.Fprintf(&b, ", generate a list of 6 to 10 personalized interview questions for a %s position at %s. ",
		jobRole, companyName)
	b.WriteString("The questions should be tailored to the candidate's specific skills, experience, and background mentioned in their CV")
	if jobDescription != "" {
		b.WriteString(", while also aligning with the requirements in the Job Description")
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "CV/RESUME TEXT:\n%s\n\n", cvText)
	if jobDescription != "" {
		fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", jobDescription)
	}

	b.WriteString("Generate interview questions that focus on the candidate's skills, experience, and industry knowledge.\n\n")
	b.WriteString(pb.LevelInstruction(level))
	b.WriteString("\n\nFormat the questions as a numbered list, one question per line.")

	return b.String()
}

// BuildFeedbackPrompt requests the structured analysis as raw JSON. The model
// is told explicitly not to wrap the payload in markdown fences; parsing
// strips them anyway before decoding.
func (pb *PromptBuilder) BuildFeedbackPrompt(questions, answers []string) string {
	var b strings.Builder

	b.WriteString("Based on the following interview questions and the candidate's responses, provide a detailed performance analysis in structured JSON format. ")
	b.WriteString("Do NOT output any markdown formatting like ```json ... ```. Output raw JSON only.\n")
	b.WriteString("The JSON structure must be:\n")
	fmt.Fprintf(&b, `{
  "overall_feedback": "A comprehensive, detailed markdown report with '###' sections for Communication Skills, Confidence, Areas for Improvement, and General Advice for Success, each containing numbered points with an Improvement note.",
  "questions_analysis": [
    {
      "question": "Question text",
      "candidate_answer": "Answer text",
      "status": "%s" | "%s" | "%s",
      "score": 0.0 to 1.0 (float),
      "feedback": "Specific advice for this question"
    }
  ]
}`, model.StatusCorrect, model.StatusPartial, model.StatusWrong)
	b.WriteString("\n\n")

	for i, question := range questions {
		fmt.Fprintf(&b, "Question %d: %s\nCandidate's Answer: %s\n\n", i+1, question, answers[i])
	}

	return b.String()
}
