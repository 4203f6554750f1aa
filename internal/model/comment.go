package model

import "time"

// Comment is a remark posted against a file. Comments are immutable once
// posted; they disappear with their file (cascade) but survive deletion of
// their author (user_id set to NULL).
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FileID    uint      `json:"file_id" gorm:"not null;index"`
	UserID    *uint     `json:"user_id"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
