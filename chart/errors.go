package chart

import "fmt"

// MalformedError reports a metadata document that does not conform to
// the coordinate chart schema.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "chart: malformed coordinate chart: " + e.Reason
}

// DuplicateNameError reports two frames sharing one name. Names are
// compared case-sensitively; "Hero" and "hero" are distinct frames.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("chart: duplicate frame name %q", e.Name)
}
