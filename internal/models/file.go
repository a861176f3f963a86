package models

import "time"

// File 上传文件记录
type File struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Filename   string    `gorm:"size:255;not null" json:"filename"`
	Path       string    `gorm:"size:500;not null" json:"path"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	UploadedAt time.Time `json:"uploaded_at"`

	Uploader *User `gorm:"foreignKey:UploaderID" json:"-"`
}

func (File) TableName() string {
	return "files"
}
