package football

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the client was built without a credential.
var ErrMissingAPIKey = errors.New("football api key not configured (set FOOTBALL_API_KEY)")

// ConfigurationError is returned by NewClient when the client cannot be
// used at all. It is fatal at startup.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "football gateway configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TeamNotFoundError reports a team name the provider could not resolve.
type TeamNotFoundError struct {
	Name string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %q not found", e.Name)
}

// GatewayError describes a failed provider call: transport failure,
// non-2xx status, an undecodable body or errors reported in the envelope.
type GatewayError struct {
	Action Action
	Status int // 0 when no response was received
	Detail string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("football %s: status %d: %s", e.Action, e.Status, e.Detail)
	}
	return fmt.Sprintf("football %s: %s", e.Action, e.Detail)
}

func (e *GatewayError) Unwrap() error { return e.Err }
