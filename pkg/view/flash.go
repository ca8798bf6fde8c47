package view

// FlashKind drives the toast colour in the storefront.
type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice, either carried in a cookie across a redirect
// or returned next to JSON data.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool { return f.Message == "" }
