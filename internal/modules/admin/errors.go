package admin

import "errors"

var (
	ErrConfirmationRequired = errors.New("destructive action not confirmed")
	ErrNoFiles              = errors.New("no files to upload")
)
