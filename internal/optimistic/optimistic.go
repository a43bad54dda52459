// Package optimistic computes next task-list states without touching
// storage. Every operation is copy-on-write: inputs are never mutated,
// and mutations aimed at an id that is not present return the input
// slice unchanged so callers can detect the no-op by identity.
package optimistic

import (
	"sort"

	"github.com/ermekov/taskfold/internal/unified"
)

// Create appends a task to the list. A task without an id is given a
// negative remote-space placeholder, one below the current minimum, so
// it can never collide with a confirmed remote id (positive) or a local
// id (string).
func Create(list []unified.Task, task unified.Task) []unified.Task {
	if task.ID.IsZero() {
		task.ID = unified.RemoteID(nextPlaceholder(list))
	}

	next := make([]unified.Task, 0, len(list)+1)
	next = append(next, list...)
	return append(next, task)
}

func nextPlaceholder(list []unified.Task) int64 {
	min := int64(0)
	for _, t := range list {
		if id, ok := t.ID.Remote(); ok && id < min {
			min = id
		}
	}
	return min - 1
}

// Toggle returns the list with the matching task's completion flag set.
// Unmatched ids are a no-op, not an error.
func Toggle(list []unified.Task, id unified.EntityID, completed bool) []unified.Task {
	idx := indexOf(list, id)
	if idx == -1 {
		return list
	}

	next := make([]unified.Task, len(list))
	copy(next, list)
	next[idx].Completed = completed
	return next
}

// Delete returns the list without the matching task. Unmatched ids are
// a no-op.
func Delete(list []unified.Task, id unified.EntityID) []unified.Task {
	idx := indexOf(list, id)
	if idx == -1 {
		return list
	}

	next := make([]unified.Task, 0, len(list)-1)
	next = append(next, list[:idx]...)
	return append(next, list[idx+1:]...)
}

// Reorder moves the matching task to newOrder and renumbers the rest so
// sort orders stay contiguous and unique. Unmatched ids are a no-op.
func Reorder(list []unified.Task, id unified.EntityID, newOrder int) []unified.Task {
	idx := indexOf(list, id)
	if idx == -1 {
		return list
	}

	next := make([]unified.Task, len(list))
	copy(next, list)
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].SortOrder < next[j].SortOrder
	})

	// Find the moved task again after sorting
	from := indexOf(next, id)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)

	if newOrder < 0 {
		newOrder = 0
	}
	if newOrder > len(next) {
		newOrder = len(next)
	}
	next = append(next[:newOrder], append([]unified.Task{moved}, next[newOrder:]...)...)

	for i := range next {
		next[i].SortOrder = i
	}
	return next
}

func indexOf(list []unified.Task, id unified.EntityID) int {
	for i, t := range list {
		if t.ID.Equal(id) {
			return i
		}
	}
	return -1
}
