package domain

import "time"

type Task struct {
	ID int64 `json:"task_id" gorm:"column:task_id;primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`

	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	IsCompleted bool   `json:"is_completed"`

	TaskImage     []byte `json:"-"`
	TaskImageType string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
