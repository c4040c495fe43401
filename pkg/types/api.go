package types

// ListenersResponse wraps the list returned by GET /listeners.
type ListenersResponse struct {
	// Registered listeners, grouped by target and in registration order.
	Listeners []Listener `json:"listeners"`
}

// SignalsResponse is returned by GET /targets/{target}/signals.
type SignalsResponse struct {
	// example: users
	Target string `json:"target" example:"users"`
	// Distinct signal names in order of first registration.
	// example: ["deleted","created"]
	Signals []string `json:"signals" example:"deleted,created"`
}

// StatusResponse summarizes the registry for GET /status.
type StatusResponse struct {
	// Target ids that hold at least one listener, sorted.
	Targets []string `json:"targets"`
	// Owners with at least one listener, sorted.
	Owners []string `json:"owners"`
	// Total number of registered listeners.
	// example: 3
	Listeners int `json:"listeners" example:"3"`
}

// EmitResponse reports the outcome of POST /targets/{target}/signals/{signal}/emit.
type EmitResponse struct {
	// example: users
	Target string `json:"target" example:"users"`
	// example: deleted
	Signal string `json:"signal" example:"deleted"`
	// Error policy used: strict or best_effort.
	// example: strict
	Policy string `json:"policy" example:"strict"`
	// Number of listeners selected for invocation.
	// example: 1
	Matched int `json:"matched" example:"1"`
	// Closest known signal name when nothing matched.
	// example: deleted
	Suggestion string `json:"suggestion,omitempty" example:"deleted"`
}

// DeregisterResponse is returned by DELETE /owners/{owner}.
type DeregisterResponse struct {
	// example: mailer
	Owner string `json:"owner" example:"mailer"`
	// Number of listeners removed.
	// example: 2
	Removed int `json:"removed" example:"2"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
