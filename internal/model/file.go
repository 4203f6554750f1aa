package model

import "time"

// File represents an uploaded file's metadata. The binary lives on disk at
// Path; UploadedBy is nulled out when the uploader is deleted, so a file can
// outlive its owner.
type File struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"size:255;not null"` // stored name, unique per upload
	OriginalName string    `json:"originalname" gorm:"size:255;not null"`
	MimeType     string    `json:"mimetype" gorm:"size:255"`
	Size         int64     `json:"size"`
	Path         string    `json:"-" gorm:"size:500;not null"`
	UploadedBy   *uint     `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Uploader *User     `json:"-" gorm:"foreignKey:UploadedBy;constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"-" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}
