package native

import "fmt"

// AttributeError reports a lookup of a member that is not part of the
// facade's construction-time attribute snapshot. It is returned, never
// swallowed: a missing member must not silently read as a zero value.
type AttributeError struct {
	Type string // wrapper type name
	Attr string // missing member name
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s object has no attribute %q", e.Type, e.Attr)
}
