package models

import (
	"strings"
	"time"
)

// File is an uploaded banner image. URL is derived from Path on read.
type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Path      string    `json:"path" gorm:"unique;not null"`
	URL       string    `json:"url" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResolveURL derives URL from the storage path and the public bucket prefix.
func (f *File) ResolveURL(prefix string) {
	if f == nil || f.Path == "" {
		return
	}
	f.URL = strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(f.Path, "/")
}

// UploadFileRequest describes a multipart banner upload before it is stored.
type UploadFileRequest struct {
	Name        string `validate:"required"`
	ContentType string `validate:"supported_image"`
	Size        int64  `validate:"gt=0,max=5242880"`
}
