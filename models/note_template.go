package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteTemplate is canned text copied into a new communication draft. The
// resulting communication keeps no back-reference to the template.
type NoteTemplate struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Category  string     `gorm:"index" json:"category"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Tags      StringList `gorm:"type:jsonb;default:'[]'" json:"tags"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	SortOrder int        `gorm:"default:0" json:"sortOrder"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *NoteTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
