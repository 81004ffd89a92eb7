package models

// MaxUsernameLength matches the varchar(24) column constraint.
const MaxUsernameLength = 24

// Profile is the public-facing record a user creates after logging in.
// Exactly one profile exists per user.
type Profile struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}
