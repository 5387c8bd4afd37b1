package store

import (
	"encoding/json"
	"fmt"

	"todo/internal/service"
)

// Encode serializes tasks as a JSON array of {id, title, isCompleted} records.
func Encode(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses data produced by Encode.
// Records without an ID or with a repeated ID make the whole payload invalid.
func Decode(data []byte) ([]service.Task, error) {
	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate id: %s", t.ID)
		}
		seen[t.ID] = true
	}

	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}
