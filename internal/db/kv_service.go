package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/focus/internal/models"
)

// Get returns the stored value for key. A missing key is not an error.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var entry models.Entry

	err := s.db.Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	return entry.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key string, value []byte) error {
	entry := models.Entry{Key: key, Value: value}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	return nil
}

// Remove deletes key. Removing a missing key is a no-op.
func (s *Store) Remove(key string) error {
	if err := s.db.Where("entry_key = ?", key).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// RemoveAll deletes every listed key in one statement
func (s *Store) RemoveAll(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.Where("entry_key IN ?", keys).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("failed to remove %d keys: %w", len(keys), err)
	}
	return nil
}

// Keys lists every stored key in order
func (s *Store) Keys() ([]string, error) {
	var keys []string

	err := s.db.Model(&models.Entry{}).Order("entry_key ASC").Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return keys, nil
}
