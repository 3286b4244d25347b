package domain

import "time"

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is a gym owner (or platform admin) account.
type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        *string    `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	GymID        string     `json:"gym_id" dynamodbav:"gym_id"`
	Enable       bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	GymName  string  `json:"gym_name" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
