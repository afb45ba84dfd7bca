package model

// PerformanceReport is a durable snapshot computed once per completed session.
// Never mutated after creation; a CV accumulates one per completed interview.
type PerformanceReport struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	AccuracyLevel   string `gorm:"type:varchar(50);not null" json:"accuracy_level"`
	ConfidenceLevel string `gorm:"type:varchar(50);not null" json:"confidence_level"`
	TotalQuestions  int    `gorm:"not null" json:"total_questions"`
	CorrectAnswers  int    `gorm:"not null" json:"correct_answers"`
	Feedback        string `gorm:"type:jsonb" json:"feedback,omitempty"`
	CVID            uint   `gorm:"not null;index" json:"cv_id"`
}

func (r *PerformanceReport) TableName() string {
	return "performance_reports"
}
