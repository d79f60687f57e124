package domain

import "time"

// OTP is a one-time verification code, keyed by email.
// At most one record exists per email: each request overwrites the previous
// code (upsert). Records are deleted on successful verification; expired
// records stay put and are rejected at read time. ExpiresAt doubles as the
// DynamoDB TTL attribute for storage hygiene.
type OTP struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"otp" dynamodbav:"otp"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OTP) Expired(now time.Time) bool {
	return now.Unix() > o.ExpiresAt
}

// OTPValidity is how long an issued code stays valid.
const OTPValidity = 10 * time.Minute
