package domain

import "time"

const (
	FeeStatusPaid = "paid"
	FeeStatusDue  = "due"
)

// Member is one gym member. Membership validity is tracked by ExpiresAt;
// renewals extend it by the assigned plan's duration.
type Member struct {
	MemberID  string     `json:"id" dynamodbav:"member_id"`
	GymID     string     `json:"gym_id" dynamodbav:"gym_id"`
	Name      string     `json:"name" dynamodbav:"name"`
	Email     string     `json:"email,omitempty" dynamodbav:"email"`
	Phone     *string    `json:"phone,omitempty" dynamodbav:"phone"`
	PlanID    string     `json:"plan_id" dynamodbav:"plan_id"`
	JoinedAt  time.Time  `json:"joined_at" dynamodbav:"joined_at"`
	ExpiresAt time.Time  `json:"expires_at" dynamodbav:"expires_at"`
	FeeStatus string     `json:"fee_status" dynamodbav:"fee_status"`
	PhotoKey  string     `json:"photo_key,omitempty" dynamodbav:"photo_key"`
	Enable    bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateMemberRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	PlanID   string  `json:"plan_id" validate:"required"`
	JoinedAt string  `json:"joined_at"` // expected format: YYYY-MM-DD, defaults to today
}

type UpdateMemberRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	PlanID    *string `json:"plan_id"`
	FeeStatus *string `json:"fee_status" validate:"omitempty,oneof=paid due"`
}
