package domain

import "time"

// Plan is a membership plan offered by one gym. Price is stored in minor
// currency units (cents) to avoid float arithmetic on money.
type Plan struct {
	PlanID     string    `json:"id" dynamodbav:"plan_id"`
	GymID      string    `json:"gym_id" dynamodbav:"gym_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Months     int       `json:"months" dynamodbav:"months"`
	PriceCents int64     `json:"price_cents" dynamodbav:"price_cents"`
	Enable     bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type PlanInput struct {
	Name       string `json:"name" validate:"required"`
	Months     int    `json:"months" validate:"required,min=1,max=36"`
	PriceCents int64  `json:"price_cents" validate:"required,min=0"`
}

type UpdatePlanRequest struct {
	Name       *string `json:"name"`
	Months     *int    `json:"months" validate:"omitempty,min=1,max=36"`
	PriceCents *int64  `json:"price_cents" validate:"omitempty,min=0"`
	Enable     *bool   `json:"enable"`
}
