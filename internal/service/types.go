// Package service defines the task model and the contract every presentation
// layer uses to read and mutate the task list.
package service

// Task represents a single to-do item.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Mutator edits a task in place. Changes to ID are discarded.
type Mutator func(*Task)

// SetTitle returns a Mutator that replaces the title.
func SetTitle(title string) Mutator {
	return func(t *Task) { t.Title = title }
}

// SetCompleted returns a Mutator that sets the completion flag.
func SetCompleted(done bool) Mutator {
	return func(t *Task) { t.IsCompleted = done }
}

// ToggleCompleted flips the completion flag.
func ToggleCompleted(t *Task) {
	t.IsCompleted = !t.IsCompleted
}

// Chain applies mutators in order.
func Chain(ms ...Mutator) Mutator {
	return func(t *Task) {
		for _, m := range ms {
			if m != nil {
				m(t)
			}
		}
	}
}
