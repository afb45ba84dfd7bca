package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// StringList is an ordered list of strings persisted as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// InterviewSession is the stateful workflow unit: one upload, one fixed set of
// questions, answers appended one at a time, completed exactly once.
//
// Invariants held by the repository layer:
//
//	0 <= CurrentIndex <= len(Questions)
//	len(Answers) == CurrentIndex
//	Status == completed iff Feedback != "" and CompletedAt != nil
type InterviewSession struct {
	ID           string        `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID       uint          `gorm:"not null;index" json:"user_id"`
	CVID         uint          `gorm:"not null;index" json:"cv_id"`
	Questions    StringList    `gorm:"type:jsonb;not null" json:"questions"`
	Answers      StringList    `gorm:"type:jsonb;not null" json:"answers"`
	CurrentIndex int           `gorm:"not null;default:0" json:"current_index"`
	Status       SessionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Feedback     string        `gorm:"type:jsonb" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

func (s *InterviewSession) TableName() string {
	return "interview_sessions"
}

// Answered reports whether every question has an accepted answer, which makes
// the session eligible for report generation. Eligibility is derived, never
// stored.
func (s *InterviewSession) Answered() bool {
	return s.CurrentIndex >= len(s.Questions)
}
