package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // shown to the user
	Fields    map[string]string // per-field messages, optional
	Err       error             // internal cause, logged only
}
