package backend

// RemoteProcedureError carries the backend's human-readable failure message
// for a remote procedure call (authorization failure, referential violation,
// validation rejected server-side). The message is surfaced to the user
// verbatim; the call is never retried automatically.
type RemoteProcedureError struct {
	Procedure string
	Message   string
}

func (e *RemoteProcedureError) Error() string {
	return e.Message
}
