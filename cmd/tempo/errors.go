package main

import "fmt"

// InvalidIDError indicates a positional argument that is not a task id.
type InvalidIDError struct {
	Value string
}

func (e InvalidIDError) Error() string {
	return fmt.Sprintf("invalid task id: %q (must be a positive integer)", e.Value)
}

// InvalidNumberError indicates a numeric argument that could not be parsed.
type InvalidNumberError struct {
	Name  string
	Value string
}

func (e InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Name, e.Value)
}

// OutOfRangeError indicates a numeric flag outside its allowed range.
type OutOfRangeError struct {
	Name     string
	Value    int
	Min, Max int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}
