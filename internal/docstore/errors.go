package docstore

import "fmt"

// Error is returned when the document store returns an error response.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("docstore: %s", e.Msg)
}
