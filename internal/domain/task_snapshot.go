package domain

import (
	"errors"
	"slices"
	"sort"
)

const NoticeActionMayNotHaveApplied = "action may not have applied"

// TaskSnapshot is a read-only view of an account's tasks, newest first.
// Every refresh builds a new snapshot; snapshots are never merged.
type TaskSnapshot struct {
	tasks []Task
}

// NewTaskSnapshot builds a snapshot from status-keyed groups. Groups with an
// unknown status are skipped and reported in the returned error; the
// snapshot still carries every known group.
func NewTaskSnapshot(groups map[string][]Task) (TaskSnapshot, error) {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	tasks := make([]Task, 0)
	for _, key := range keys {
		status, err := ParseTaskStatus(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, task := range groups[key] {
			task = task.clone()
			task.Status = status
			tasks = append(tasks, task)
		}
	}

	SortNewestFirst(tasks)

	return TaskSnapshot{tasks: tasks}, errors.Join(errs...)
}

func (s TaskSnapshot) Len() int {
	return len(s.tasks)
}

func (s TaskSnapshot) All() []Task {
	return cloneTasks(s.tasks)
}

func (s TaskSnapshot) ByStatus(status TaskStatus) []Task {
	out := make([]Task, 0)
	for _, task := range s.tasks {
		if task.Status == status {
			out = append(out, task.clone())
		}
	}

	return out
}

// Visible lists the tasks of the task board: every non-rewarded task, with
// refused ones only when showRefused is set.
func (s TaskSnapshot) Visible(showRefused bool) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		switch task.Status {
		case TaskRewarded:
			continue
		case TaskRefused:
			if !showRefused {
				continue
			}
		}
		out = append(out, task.clone())
	}

	return out
}

func (s TaskSnapshot) Rewarded() []Task {
	return s.ByStatus(TaskRewarded)
}

func (s TaskSnapshot) Find(id TaskID) (Task, bool) {
	for _, task := range s.tasks {
		if task.ID == id {
			return task.clone(), true
		}
	}

	return Task{}, false
}

// WithOptimistic returns a copy of the snapshot where msg is appended to the
// task's history as a pending entry. An unknown task is added as requested.
func (s TaskSnapshot) WithOptimistic(id TaskID, msg Message) TaskSnapshot {
	msg.Pending = true
	tasks := cloneTasks(s.tasks)

	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].MessageHistory = append(tasks[i].MessageHistory, msg)
			return TaskSnapshot{tasks: tasks}
		}
	}

	tasks = append(tasks, Task{ID: id, Status: TaskRequested, MessageHistory: []Message{msg}})
	SortNewestFirst(tasks)

	return TaskSnapshot{tasks: tasks}
}

type ReconcileNotice struct {
	TaskID  TaskID
	Message string
}

// Reconcile adopts next as the authoritative state. Pending entries of
// previous are never carried over. A pending task yields a notice when next
// no longer has it, or still shows it in the same status without the
// pending message.
func Reconcile(previous, next TaskSnapshot) (TaskSnapshot, []ReconcileNotice) {
	var notices []ReconcileNotice
	for _, task := range previous.tasks {
		if !task.HasPending() {
			continue
		}
		current, ok := next.Find(task.ID)
		if ok && (current.Status != task.Status || confirmsPending(current, task)) {
			continue
		}
		notices = append(notices, ReconcileNotice{TaskID: task.ID, Message: NoticeActionMayNotHaveApplied})
	}

	return next, notices
}

// confirmsPending reports whether every pending message of optimistic made it
// into the server history of current.
func confirmsPending(current, optimistic Task) bool {
	for _, pending := range optimistic.MessageHistory {
		if !pending.Pending {
			continue
		}
		confirmed := slices.ContainsFunc(current.MessageHistory, func(msg Message) bool {
			return !msg.Pending && msg.Data == pending.Data
		})
		if !confirmed {
			return false
		}
	}

	return true
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.clone()
	}

	return out
}
