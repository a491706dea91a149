package httpapi

// errorBody is the failure shape shared by every endpoint.
// Details is a []string for validation failures, a string for storage
// failures, and omitted when there is nothing to attach.
type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// signupSuccess is the minimal signup success payload: the new
// principal's id and email, nothing else.
type signupSuccess struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    signupUser `json:"user"`
}

type signupUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
