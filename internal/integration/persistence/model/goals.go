// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// UserGoalsModel represents the user_goals table. Exactly one row per user;
// edits replace the row wholesale (last write wins).
type UserGoalsModel struct {
	UserID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StartWeight  decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	TargetWeight decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	StartDate    string          `gorm:"type:varchar(10);not null"`
	TargetDate   string          `gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserGoalsModel.
func (UserGoalsModel) TableName() string {
	return "user_goals"
}

// ToEntity converts a UserGoalsModel to a domain UserGoals entity.
func (m *UserGoalsModel) ToEntity() (*entity.UserGoals, error) {
	startDate, err := valueobject.ParseCivilDate(m.StartDate)
	if err != nil {
		return nil, err
	}
	targetDate, err := valueobject.ParseCivilDate(m.TargetDate)
	if err != nil {
		return nil, err
	}
	return &entity.UserGoals{
		StartWeight:  m.StartWeight,
		TargetWeight: m.TargetWeight,
		StartDate:    startDate,
		TargetDate:   targetDate,
	}, nil
}

// UserGoalsFromEntity creates a UserGoalsModel from a domain entity.
func UserGoalsFromEntity(userID uuid.UUID, g entity.UserGoals) *UserGoalsModel {
	now := time.Now().UTC()
	return &UserGoalsModel{
		UserID:       userID,
		StartWeight:  g.StartWeight,
		TargetWeight: g.TargetWeight,
		StartDate:    g.StartDate.String(),
		TargetDate:   g.TargetDate.String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
