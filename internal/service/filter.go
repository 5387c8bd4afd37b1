package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold applies full Unicode case folding, so "Straße" and "STRASSE" compare equal.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Matches reports whether title contains filter, ignoring case.
// An empty filter matches every title.
func Matches(title, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(fold(title), fold(filter))
}

// Filter returns a new slice holding the tasks that match filter, in order.
func Filter(tasks []Task, filter string) []Task {
	result := make([]Task, 0, len(tasks))
	if filter == "" {
		return append(result, tasks...)
	}

	needle := fold(filter)
	for _, t := range tasks {
		if strings.Contains(fold(t.Title), needle) {
			result = append(result, t)
		}
	}
	return result
}
