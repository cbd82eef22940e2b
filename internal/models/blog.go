// internal/models/blog.go
package models

import (
	"github.com/lib/pq"
)

type Blog struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:255;not null"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	Excerpt     string         `json:"excerpt" gorm:"type:text"`
	Category    BlogCategory   `json:"category" gorm:"type:varchar(20);not null;index"`
	ImageURL    string         `json:"image_url,omitempty" gorm:"type:text"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsPublished bool           `json:"is_published" gorm:"not null;index"`
	AuthorID    string         `json:"author_id" gorm:"type:varchar(36)"`
	AuthorName  string         `json:"author_name" gorm:"size:255"`
	Views       int            `json:"views" gorm:"not null"`
}
