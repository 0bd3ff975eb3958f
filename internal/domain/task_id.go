package domain

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// TaskID follows the backend scheme "<YYYY-MM-DD>_<HH:MM>__<code>", e.g.
// "2025-01-22_17:18__FN84". The prefix is the only ordering key the backend
// provides.
type TaskID string

const (
	taskIDSeparator = "__"
	taskIDLayout    = "2006-01-02T15:04:05"
	taskIDPrefix    = "2006-01-02_15:04"
	codeLetters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits      = "0123456789"
)

func (id TaskID) String() string {
	return string(id)
}

// Timestamp parses the creation instant embedded in the id, in UTC.
func (id TaskID) Timestamp() (time.Time, error) {
	prefix, _, found := strings.Cut(string(id), taskIDSeparator)
	if !found || prefix == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTaskID, id)
	}

	instant := strings.Replace(prefix, "_", "T", 1) + ":00"
	ts, err := time.Parse(taskIDLayout, instant)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTaskID, id)
	}

	return ts, nil
}

// NewTaskID builds an id for a client-originated task request. The code is
// two letters followed by two digits drawn from rand.
func NewTaskID(now time.Time, rand io.Reader) (TaskID, error) {
	var raw [4]byte
	if _, err := io.ReadFull(rand, raw[:]); err != nil {
		return "", fmt.Errorf("read task id entropy: %w", err)
	}

	code := []byte{
		codeLetters[int(raw[0])%len(codeLetters)],
		codeLetters[int(raw[1])%len(codeLetters)],
		codeDigits[int(raw[2])%len(codeDigits)],
		codeDigits[int(raw[3])%len(codeDigits)],
	}

	return TaskID(now.UTC().Format(taskIDPrefix) + taskIDSeparator + string(code)), nil
}

// SortNewestFirst orders tasks by their id timestamp, newest first.
// Malformed ids sort after every well-formed one, ordered by id.
func SortNewestFirst(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, leftErr := tasks[i].ID.Timestamp()
		right, rightErr := tasks[j].ID.Timestamp()

		switch {
		case leftErr != nil && rightErr != nil:
			return tasks[i].ID < tasks[j].ID
		case leftErr != nil:
			return false
		case rightErr != nil:
			return true
		default:
			return left.After(right)
		}
	})
}
