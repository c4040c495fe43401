package types

// Listener describes a registered listener. Callbacks are never exposed.
type Listener struct {
	// Module that registered the listener.
	// example: mailer
	Owner string `json:"owner" example:"mailer"`
	// Target id the listener is filed under.
	// example: users
	Target string `json:"target" example:"users"`
	// Signal name within the target.
	// example: deleted
	Signal string `json:"signal" example:"deleted"`
}
