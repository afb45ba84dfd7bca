package model

// Interview levels accepted at upload time. Any other value falls back to the
// balanced-question instruction when the prompt is built.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelOther        = "Other"
)

// CV is one uploaded resume tied to a target job. Immutable after creation;
// removed only by cascade when its owner is deleted.
type CV struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	FilePath       string `gorm:"type:varchar(255);not null" json:"-"`
	CompanyName    string `gorm:"type:varchar(255);not null" json:"company_name"`
	JobRole        string `gorm:"type:varchar(255);not null" json:"job_role"`
	InterviewLevel string `gorm:"type:varchar(50);not null" json:"interview_level"`
	JobDescription string `gorm:"type:text" json:"job_description,omitempty"`
	UserID         uint   `gorm:"not null;index" json:"user_id"`

	Reports  []PerformanceReport `gorm:"foreignKey:CVID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions []InterviewSession  `gorm:"foreignKey:CVID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *CV) TableName() string {
	return "cvs"
}
