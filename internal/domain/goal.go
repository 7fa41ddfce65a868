package domain

import "github.com/shopspring/decimal"

// Goal is a savings target. Saved may grow past Target.
type Goal struct {
	ID     string          `json:"id" validate:"required"`
	Title  string          `json:"title" validate:"required"`
	Target decimal.Decimal `json:"target" validate:"gt=0"`
	Saved  decimal.Decimal `json:"saved" validate:"gte=0"`
}

// GoalProgress is a goal with its completion percentage, clamped at 100
type GoalProgress struct {
	Goal
	Percent int `json:"percent"`
}
