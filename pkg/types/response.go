package types

// SuccessEnvelope wraps operational payloads such as the health probes.
// Resource endpoints write their DTOs bare.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the body of every JSON error response. Details carries the
// field-level messages of validation failures.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewErrorEnvelope builds an envelope, dropping empty details.
func NewErrorEnvelope(code, message string, details any) ErrorEnvelope {
	env := ErrorEnvelope{Error: APIError{Code: code, Message: message}}
	if details != nil {
		env.Error.Details = details
	}
	return env
}
