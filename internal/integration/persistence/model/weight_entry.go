// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// WeightEntryModel represents the weight_entries table. The (user_id, date)
// pair is the document key: one measurement per user per calendar day.
type WeightEntryModel struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date      string          `gorm:"type:varchar(10);primaryKey"`
	Weight    decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the WeightEntryModel.
func (WeightEntryModel) TableName() string {
	return "weight_entries"
}

// ToEntity converts a WeightEntryModel to a domain WeightEntry entity.
func (m *WeightEntryModel) ToEntity() (entity.WeightEntry, error) {
	date, err := valueobject.ParseCivilDate(m.Date)
	if err != nil {
		return entity.WeightEntry{}, err
	}
	return entity.WeightEntry{
		Date:   date,
		Weight: m.Weight,
	}, nil
}

// WeightEntryFromEntity creates a WeightEntryModel from a domain entity.
func WeightEntryFromEntity(userID uuid.UUID, e entity.WeightEntry) *WeightEntryModel {
	now := time.Now().UTC()
	return &WeightEntryModel{
		UserID:    userID,
		Date:      e.Date.String(),
		Weight:    e.Weight,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
