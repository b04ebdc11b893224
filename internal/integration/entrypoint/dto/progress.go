// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/weight-tracker/backend/internal/application/usecase/progress"
)

// ProgressPointResponse is one chart data point placed on the day axis.
type ProgressPointResponse struct {
	Date      string `json:"date"`
	DateLabel string `json:"date_label"`
	Day       int    `json:"day"`
	Weight    string `json:"weight"`
}

// ProgressTickResponse is one X-axis tick.
type ProgressTickResponse struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
}

// ProgressResponse represents the derived chart metrics. Goal-dependent
// fields are omitted when the user has no goals.
type ProgressResponse struct {
	HasGoals    bool                    `json:"has_goals"`
	Goals       *GoalsResponse          `json:"goals,omitempty"`
	Points      []ProgressPointResponse `json:"points"`
	Ticks       []ProgressTickResponse  `json:"ticks,omitempty"`
	TotalDays   int                     `json:"total_days,omitempty"`
	MinWeight   string                  `json:"min_weight,omitempty"`
	MaxWeight   string                  `json:"max_weight,omitempty"`
	Direction   string                  `json:"direction,omitempty"`
	Elapsed     string                  `json:"elapsed,omitempty"`
	TotalChange string                  `json:"total_change"`
}

// ToProgressResponse converts a GetProgressOutput to a ProgressResponse DTO.
func ToProgressResponse(output *progress.GetProgressOutput) ProgressResponse {
	points := make([]ProgressPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = ProgressPointResponse{
			Date:      p.Date.String(),
			DateLabel: p.DateLabel,
			Day:       p.Day,
			Weight:    p.Weight.String(),
		}
	}

	response := ProgressResponse{
		HasGoals:    output.HasGoals,
		Points:      points,
		TotalChange: output.TotalChange.String(),
	}

	if !output.HasGoals {
		return response
	}

	goals := ToGoalsResponse(*output.Goals)
	response.Goals = &goals

	ticks := make([]ProgressTickResponse, len(output.Ticks))
	for i, t := range output.Ticks {
		ticks[i] = ProgressTickResponse{
			Day:   t.Day,
			Label: t.Label,
		}
	}
	response.Ticks = ticks
	response.TotalDays = output.TotalDays
	response.MinWeight = output.MinWeight.String()
	response.MaxWeight = output.MaxWeight.String()
	response.Direction = string(output.Direction)
	response.Elapsed = output.Elapsed

	return response
}
