package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID               int64     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username         string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash     string    `json:"-" gorm:"column:password;not null"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone,omitempty"`
	Gender           Gender    `json:"gender,omitempty"`
	ProfileImage     []byte    `json:"-"`
	ProfileImageType string    `json:"-"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
