package domain

import "time"

// RefreshToken is the server-side record of a currently valid refresh token.
//
// Invariant: at most one live row per user; user_id carries a unique index
// and a new login replaces any prior row for that user.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Token string `json:"-" gorm:"size:512;uniqueIndex;not null"`

	UserID int64 `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
