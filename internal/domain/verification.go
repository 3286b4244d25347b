package domain

import "time"

// EmailVerification is the single live OTP record for one account.
// PK: user_id — a new issuance replaces whatever was stored before, so only
// the most recently issued code is ever valid.
// ExpiresAt is stored as epoch seconds and doubles as the DynamoDB TTL attribute.
type EmailVerification struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"-" dynamodbav:"code"`
	IssuedAt  time.Time `json:"issued_at" dynamodbav:"issued_at,unixtime"`
	ExpiresAt time.Time `json:"expires_at" dynamodbav:"expires_at,unixtime"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
}
