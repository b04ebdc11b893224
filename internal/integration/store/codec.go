package store

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

func goalDocFromEntity(g entity.UserGoals) goalDoc {
	return goalDoc{
		StartWeight:  g.StartWeight.String(),
		TargetWeight: g.TargetWeight.String(),
		StartDate:    g.StartDate.String(),
		TargetDate:   g.TargetDate.String(),
	}
}

func (d goalDoc) toEntity() (*entity.UserGoals, error) {
	startWeight, err := decimal.NewFromString(d.StartWeight)
	if err != nil {
		return nil, err
	}
	targetWeight, err := decimal.NewFromString(d.TargetWeight)
	if err != nil {
		return nil, err
	}
	startDate, err := valueobject.ParseCivilDate(d.StartDate)
	if err != nil {
		return nil, err
	}
	targetDate, err := valueobject.ParseCivilDate(d.TargetDate)
	if err != nil {
		return nil, err
	}
	return &entity.UserGoals{
		StartWeight:  startWeight,
		TargetWeight: targetWeight,
		StartDate:    startDate,
		TargetDate:   targetDate,
	}, nil
}

func entryDocFromEntity(e entity.WeightEntry) entryDoc {
	return entryDoc{
		Date:   e.Date.String(),
		Weight: e.Weight.String(),
	}
}

func (d entryDoc) toEntity() (entity.WeightEntry, error) {
	weight, err := decimal.NewFromString(d.Weight)
	if err != nil {
		return entity.WeightEntry{}, err
	}
	date, err := valueobject.ParseCivilDate(d.Date)
	if err != nil {
		return entity.WeightEntry{}, err
	}
	return entity.WeightEntry{Date: date, Weight: weight}, nil
}
