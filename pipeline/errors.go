package pipeline

import "fmt"

// NotFoundError is returned when no title matches the requested series
type NotFoundError struct {
	Title     string
	TitleType string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no title with primaryTitle %q and titleType %q", e.Title, e.TitleType)
}

// MalformedRowError is returned when a season or episode number is neither
// an integer nor the null marker.
type MalformedRowError struct {
	Tconst string
	Column string
	Value  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("episode %s: %s %q is not a number", e.Tconst, e.Column, e.Value)
}

// StageError ties a failure to the pipeline stage and input that produced it
type StageError struct {
	Stage string
	Input string
	Err   error
}

func (e *StageError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Input, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
