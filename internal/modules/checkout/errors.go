package checkout

import "fmt"

type SizeUnavailableError struct {
	Size      string
	Available []string
}

func (e *SizeUnavailableError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("size %q unavailable: no sizes on offer", e.Size)
	}
	return fmt.Sprintf("size %q unavailable: offered=%v", e.Size, e.Available)
}
