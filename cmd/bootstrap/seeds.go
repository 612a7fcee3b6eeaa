package bootstrap

import (
	"github.com/code-100-precent/lingrx/internal/models"
	"gorm.io/gorm"
)

type SeedService struct {
	db *gorm.DB
}

func (s *SeedService) SeedAll() error {
	return s.seedEntries()
}

// seedEntries only writes into an empty table so restarts keep user data
func (s *SeedService) seedEntries() error {
	var count int64
	if err := s.db.Model(&models.Entry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Entry{
		{Key: "welcome", Value: "subscribe to /entries/stream to watch new entries"},
		{Key: "implementation", Value: "builtin"},
	}
	return s.db.Create(&defaults).Error
}
