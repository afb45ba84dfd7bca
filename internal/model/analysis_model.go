package model

import "encoding/json"

// Per-question verdicts assigned by the feedback generator.
const (
	StatusCorrect = "Correct"
	StatusPartial = "Partial"
	StatusWrong   = "Wrong"
)

type QuestionAnalysis struct {
	Question string  `json:"question"`
	Answer   string  `json:"candidate_answer"`
	Status   string  `json:"status"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// InterviewAnalysis is the structured payload returned by the feedback
// generator and stored on both the session and its report.
type InterviewAnalysis struct {
	OverallFeedback   string             `json:"overall_feedback"`
	QuestionsAnalysis []QuestionAnalysis `json:"questions_analysis"`
}

// TotalScore sums the continuous per-question scores. Scores are fractional,
// so the sum is too.
func (a *InterviewAnalysis) TotalScore() float64 {
	var total float64
	for _, q := range a.QuestionsAnalysis {
		total += q.Score
	}
	return total
}

func (a *InterviewAnalysis) JSON() string {
	b, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ParseAnalysis reconstructs a stored analysis payload. A payload that cannot
// be decoded yields an empty analysis so callers can fall back to their
// legacy display path.
func ParseAnalysis(raw string) (*InterviewAnalysis, bool) {
	var a InterviewAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return &InterviewAnalysis{}, false
	}
	return &a, true
}
