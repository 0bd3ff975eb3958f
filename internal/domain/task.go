package domain

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskRequested  TaskStatus = "requested"
	TaskProposed   TaskStatus = "proposed"
	TaskAccepted   TaskStatus = "accepted"
	TaskChallenged TaskStatus = "challenged"
	TaskRefused    TaskStatus = "refused"
	TaskRewarded   TaskStatus = "rewarded"
)

var taskStatuses = []TaskStatus{
	TaskRequested,
	TaskProposed,
	TaskAccepted,
	TaskChallenged,
	TaskRefused,
	TaskRewarded,
}

func TaskStatuses() []TaskStatus {
	return append([]TaskStatus(nil), taskStatuses...)
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	normalized := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range taskStatuses {
		if status == normalized {
			return status, nil
		}
	}

	return "", &UnknownTaskStatusError{Status: raw}
}

func (s TaskStatus) IsTerminal() bool {
	return s == TaskRefused || s == TaskRewarded
}

type Action string

const (
	ActionAccept                  Action = "accept"
	ActionRefuse                  Action = "refuse"
	ActionSubmitVerification      Action = "submit-verification"
	ActionSubmitFinalVerification Action = "submit-final-verification"
)

var permittedActions = map[TaskStatus][]Action{
	TaskRequested:  nil,
	TaskProposed:   {ActionAccept, ActionRefuse},
	TaskAccepted:   {ActionSubmitVerification, ActionRefuse},
	TaskChallenged: {ActionSubmitFinalVerification, ActionRefuse},
	TaskRefused:    nil,
	TaskRewarded:   nil,
}

// PermittedActions returns the client-initiated actions allowed in status.
func (s TaskStatus) PermittedActions() []Action {
	return append([]Action(nil), permittedActions[s]...)
}

func (s TaskStatus) Permits(action Action) bool {
	for _, permitted := range permittedActions[s] {
		if permitted == action {
			return true
		}
	}

	return false
}

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type Message struct {
	Direction Direction
	Data      string
	// Pending marks a locally synthesized message awaiting the next poll.
	Pending bool
}

type Task struct {
	ID             TaskID
	Status         TaskStatus
	MessageHistory []Message
	RewardOffered  float64
	RewardPaid     *float64
}

func (t Task) Permits(action Action) error {
	if t.Status.Permits(action) {
		return nil
	}

	return &ActionNotPermittedError{TaskID: t.ID, Status: t.Status, Action: action}
}

// Reward is the paid amount when known, the offered amount otherwise.
func (t Task) Reward() float64 {
	if t.RewardPaid != nil && *t.RewardPaid != 0 {
		return *t.RewardPaid
	}

	return t.RewardOffered
}

// MainMessage picks the proposal text to show for a task.
func (t Task) MainMessage() string {
	if len(t.MessageHistory) == 0 {
		return "No message available"
	}
	for _, msg := range t.MessageHistory {
		if strings.HasPrefix(msg.Data, "PROPOSED PF") {
			return msg.Data
		}
	}
	if len(t.MessageHistory) >= 2 {
		return t.MessageHistory[1].Data
	}

	return t.MessageHistory[0].Data
}

// VerificationPrompt is the node's verification question for a challenged
// task.
func (t Task) VerificationPrompt() string {
	if len(t.MessageHistory) >= 5 {
		return t.MessageHistory[4].Data
	}
	for i := len(t.MessageHistory) - 1; i >= 0; i-- {
		if t.MessageHistory[i].Direction == DirectionInbound {
			return t.MessageHistory[i].Data
		}
	}

	return ""
}

func (t Task) HasPending() bool {
	for _, msg := range t.MessageHistory {
		if msg.Pending {
			return true
		}
	}

	return false
}

func (t Task) clone() Task {
	cloned := t
	cloned.MessageHistory = append([]Message(nil), t.MessageHistory...)
	if t.RewardPaid != nil {
		paid := *t.RewardPaid
		cloned.RewardPaid = &paid
	}

	return cloned
}

func (t Task) String() string {
	return fmt.Sprintf("%s (%s)", t.ID, t.Status)
}
