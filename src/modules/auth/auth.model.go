package auth

import "time"

type Model struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Active         bool      `json:"active"`
	TwoFASecret    string    `json:"-"`
	TwoFAStatus    bool      `json:"two_fa_status"`
	TwoFALastToken string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UpdateModel struct {
	Email          *string `bson:"email,omitempty"`
	Password       *string `bson:"password,omitempty"`
	Active         *bool   `bson:"active,omitempty"`
	TwoFASecret    *string `bson:"twofa_secret,omitempty"`
	TwoFAStatus    *bool   `bson:"twofa_status,omitempty"`
	TwoFALastToken *string `bson:"twofa_last_token,omitempty"`
}
