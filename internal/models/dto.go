package models

// CreateProfileRequest is the body of POST /profiles/.
type CreateProfileRequest struct {
	Username string `json:"username"`
}

// UpdateProfileRequest is the body of PUT /profiles/. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
}

// TokenResponse carries the signed credential back to the client after a
// successful OAuth callback.
type TokenResponse struct {
	JWT string `json:"jwt"`
}

// AuthFailureResponse echoes the original state back for client-side
// debugging without revealing why the attempt was rejected.
type AuthFailureResponse struct {
	State string `json:"state"`
	Msg   string `json:"msg"`
}

// StatusResponse is the generic {status} acknowledgement body.
type StatusResponse struct {
	Status bool `json:"status"`
}

// ConflictResponse names the attribute that collided on a 409.
type ConflictResponse struct {
	Status   bool   `json:"status"`
	Conflict string `json:"conflict"`
	Msg      string `json:"msg"`
}

// NotFoundResponse is the 404 body for profile lookups.
type NotFoundResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

// SearchResponse wraps a username search. ResultsCount is the number of
// returned results, capped at the search limit.
type SearchResponse struct {
	Results      []*Profile `json:"results"`
	ResultsCount int        `json:"resultsCount"`
}
