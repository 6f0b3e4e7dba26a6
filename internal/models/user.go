package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile holds the fields collected during onboarding. Everything except
// the name stays unset until the user completes onboarding.
type Profile struct {
	Name      string   `bson:"name" json:"name"`
	Age       *int     `bson:"age,omitempty" json:"age,omitempty"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Height    *float64 `bson:"height,omitempty" json:"height,omitempty"`
	Lifestyle *string  `bson:"lifestyle,omitempty" json:"lifestyle,omitempty"`
	Goal      *string  `bson:"goal,omitempty" json:"goal,omitempty"`
}

type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string        `bson:"email" json:"email"`
	PasswordHash        string        `bson:"password_hash" json:"-"`
	Profile             Profile       `bson:"profile" json:"profile"`
	OnboardingCompleted bool          `bson:"onboarding_completed" json:"onboarding_completed"`
	CreatedAt           time.Time     `bson:"created_at" json:"created_at"`
	LastLogin           *time.Time    `bson:"last_login,omitempty" json:"last_login,omitempty"`

	// Only digests of opaque tokens are ever stored, never the raw tokens.
	RefreshTokenHash     string     `bson:"refresh_token_hash,omitempty" json:"-"`
	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`
}
