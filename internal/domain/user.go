package domain

import "time"

// User is created implicitly on first successful OTP verification — there is
// no separate signup step. Logically keyed by email (unique via the
// email-index GSI); UserID is the physical partition key.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	LastLogin time.Time `json:"last_login" dynamodbav:"last_login"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// SendOTPRequest is the body of POST /auth/send-otp.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}
