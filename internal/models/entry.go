package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a key/value record published to stream subscribers when created
type Entry struct {
	BaseModel
	Key   string `json:"key" gorm:"column:entry_key;size:128;uniqueIndex"`
	Value string `json:"value" gorm:"type:text"`
}

func (Entry) TableName() string {
	return "entries"
}

// BeforeCreate assigns a random key when none was given
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	e.Key = strings.TrimSpace(e.Key)
	if e.Key == "" {
		e.Key = uuid.NewString()
	}
	return nil
}
