package model

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(120);uniqueIndex;not null" json:"username"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CVs      []CV               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cvs,omitempty"`
	Sessions []InterviewSession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) TableName() string {
	return "users"
}
