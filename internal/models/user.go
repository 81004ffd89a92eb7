package models

// User is a login identity created on first OAuth sign-in. It is never
// updated afterwards; the (Email, Provider) pair is the de-duplication key.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Provider Provider `json:"oauthProvider"`
}

// Identity is the normalized shape every provider adapter maps its
// user-info response onto.
type Identity struct {
	ExternalID string
	Email      string
	Provider   Provider
}
