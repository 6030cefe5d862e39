package agent

import "errors"

var (
	ErrAgentNotFound      = errors.New("agent not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
