// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// SaveGoalsRequest represents the request body for saving the goal document.
// All fields are required; the document is replaced wholesale.
type SaveGoalsRequest struct {
	StartWeight  decimal.Decimal       `json:"start_weight" binding:"required"`
	TargetWeight decimal.Decimal       `json:"target_weight" binding:"required"`
	StartDate    valueobject.CivilDate `json:"start_date" binding:"required"`
	TargetDate   valueobject.CivilDate `json:"target_date" binding:"required"`
}

// GoalsResponse represents the goal document in API responses.
type GoalsResponse struct {
	StartWeight  string `json:"start_weight"`
	TargetWeight string `json:"target_weight"`
	StartDate    string `json:"start_date"`
	TargetDate   string `json:"target_date"`
}

// ToGoalsResponse converts a domain UserGoals entity to a GoalsResponse DTO.
func ToGoalsResponse(g entity.UserGoals) GoalsResponse {
	return GoalsResponse{
		StartWeight:  g.StartWeight.String(),
		TargetWeight: g.TargetWeight.String(),
		StartDate:    g.StartDate.String(),
		TargetDate:   g.TargetDate.String(),
	}
}
