package domain

import "time"

// Gym is the tenant record. Exactly one gym per owner account; all plans and
// members hang off its GymID.
type Gym struct {
	GymID     string    `json:"id" dynamodbav:"gym_id"`
	OwnerID   string    `json:"owner_id" dynamodbav:"owner_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Address   string    `json:"address,omitempty" dynamodbav:"address"`
	Phone     string    `json:"phone,omitempty" dynamodbav:"phone"`
	Currency  string    `json:"currency" dynamodbav:"currency"`
	Enable    bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpdateGymRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Currency *string `json:"currency" validate:"omitempty,len=3"`
}
