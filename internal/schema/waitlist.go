package schema

// WaitlistEntry describes one waitlist row.
type WaitlistEntry struct {
	WaitlistID *int    `json:"waitlist_id,omitempty"`
	Email      string  `json:"email"`
	FullName   *string `json:"full_name,omitempty"`
	Status     string  `json:"status"`
	InviteCode *string `json:"invite_code,omitempty"`
	CreatedAt  *string `json:"created_at,omitempty"`
}

// WaitlistJoinRequest carries the body for POST /waitlist/join.
type WaitlistJoinRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// WaitlistJoinResponse acknowledges a join request.
type WaitlistJoinResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// WaitlistVerifyRequest carries the body for POST /waitlist/verify.
type WaitlistVerifyRequest struct {
	Email      string `json:"email"`
	InviteCode string `json:"invite_code"`
}

// WaitlistVerifyResponse reports whether the invite code is valid.
type WaitlistVerifyResponse struct {
	Valid   bool    `json:"valid"`
	Message *string `json:"message,omitempty"`
}
