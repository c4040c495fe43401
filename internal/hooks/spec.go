package hooks

import (
	"errors"
	"fmt"
	"strings"

	"sigd/internal/logging"
)

// Built-in actions.
const (
	ActionLog   = "log"
	ActionCount = "count"
	ActionFail  = "fail"
)

var (
	// ErrUnknownAction is returned for a hook whose action is not built in.
	ErrUnknownAction = errors.New("unknown hook action")
	// ErrMissingField is returned when owner, target or signal is empty.
	ErrMissingField = errors.New("missing hook field")
)

// Spec declares one hook. In HCL the owner is the block label:
//
//	hook "mailer" {
//	  target = "users"
//	  signal = "deleted"
//	  action = "log"
//	}
type Spec struct {
	Owner   string `json:"owner" yaml:"owner" toml:"owner" hcl:"owner,label"`
	Target  string `json:"target" yaml:"target" toml:"target" hcl:"target"`
	Signal  string `json:"signal" yaml:"signal" toml:"signal" hcl:"signal"`
	Action  string `json:"action" yaml:"action" toml:"action" hcl:"action"`
	Message string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty" hcl:"message,optional"`
	// Level applies to the log action: debug|info|warn|error. Defaults to info.
	Level string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty" hcl:"level,optional"`
}

func (s Spec) String() string {
	return fmt.Sprintf("%s:%s/%s(%s)", s.Owner, s.Target, s.Signal, s.Action)
}

// Validate checks identifiers, action and level.
func (s Spec) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Owner) == "" {
		missing = append(missing, "owner")
	}
	if strings.TrimSpace(s.Target) == "" {
		missing = append(missing, "target")
	}
	if strings.TrimSpace(s.Signal) == "" {
		missing = append(missing, "signal")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	switch s.Action {
	case ActionLog:
		if _, err := logging.ParseLevelStrict(s.Level); err != nil {
			return err
		}
	case ActionCount, ActionFail:
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, s.Action)
	}
	return nil
}
