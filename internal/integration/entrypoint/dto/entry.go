// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// AddEntryRequest represents the request body for recording a weight entry.
// Posting an existing date replaces that day's weight.
type AddEntryRequest struct {
	Date   valueobject.CivilDate `json:"date" binding:"required"`
	Weight decimal.Decimal       `json:"weight" binding:"required"`
}

// EntryResponse represents a single weight entry in API responses.
type EntryResponse struct {
	Date   string `json:"date"`
	Weight string `json:"weight"`
}

// EntryListResponse represents the response for listing entries, ordered by
// date ascending.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain WeightEntry to an EntryResponse DTO.
func ToEntryResponse(e entity.WeightEntry) EntryResponse {
	return EntryResponse{
		Date:   e.Date.String(),
		Weight: e.Weight.String(),
	}
}

// ToEntryListResponse converts a list of entries to an EntryListResponse.
func ToEntryListResponse(entries []entity.WeightEntry) EntryListResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(e)
	}
	return EntryListResponse{
		Entries: responses,
	}
}
