package toolkit

import "pengine-e2e/session"

// Env is the execution context handed to every command and test case: the
// shared HTTP client, this suite's own credential session, and the run
// configuration. The runner builds one Env per suite so token mutations can
// never leak across concurrently running suites.
type Env struct {
	Client  *Client
	Session *session.Session
	Config  HarnessConfig
}

// NewEnv builds an Env with a fresh session.
func NewEnv(client *Client, cfg HarnessConfig) *Env {
	return &Env{Client: client, Session: session.New(), Config: cfg}
}
