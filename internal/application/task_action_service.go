package application

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
)

// TaskActionService submits task lifecycle transactions for the signed-in
// account.
type TaskActionService struct {
	api      ports.WalletAPI
	sessions *SessionService
	board    *TaskRefreshCoordinator
	clock    ports.Clock
	random   io.Reader
}

func NewTaskActionService(api ports.WalletAPI, sessions *SessionService, board *TaskRefreshCoordinator, clock ports.Clock) *TaskActionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TaskActionService{
		api:      api,
		sessions: sessions,
		board:    board,
		clock:    clock,
		random:   rand.Reader,
	}
}

func (s *TaskActionService) Accept(ctx context.Context, id domain.TaskID, message string) error {
	return s.perform(ctx, domain.ActionAccept, id, message)
}

func (s *TaskActionService) Refuse(ctx context.Context, id domain.TaskID, reason string) error {
	return s.perform(ctx, domain.ActionRefuse, id, reason)
}

func (s *TaskActionService) SubmitVerification(ctx context.Context, id domain.TaskID, details string) error {
	return s.perform(ctx, domain.ActionSubmitVerification, id, details)
}

func (s *TaskActionService) SubmitFinalVerification(ctx context.Context, id domain.TaskID, details string) error {
	return s.perform(ctx, domain.ActionSubmitFinalVerification, id, details)
}

// RequestTask asks the node for a new task and returns the id it was filed
// under.
func (s *TaskActionService) RequestTask(ctx context.Context, text string) (domain.TaskID, error) {
	id, err := domain.NewTaskID(s.clock.Now(), s.random)
	if err != nil {
		return "", fmt.Errorf("generate task id: %w", err)
	}

	if err := s.perform(ctx, domain.ActionRequest, id, text); err != nil {
		return "", err
	}

	return id, nil
}

// Task returns the task from the local snapshot, fetching the list when it
// is not known yet.
func (s *TaskActionService) Task(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	return s.lookup(ctx, session.Address, id)
}

// Tasks fetches the task list once and installs it as the local snapshot.
// Unknown status groups are skipped; the remaining groups are still returned.
func (s *TaskActionService) Tasks(ctx context.Context) (domain.TaskSnapshot, error) {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return domain.TaskSnapshot{}, err
	}

	snapshot, err := s.api.Tasks(ctx, session.Address)
	if err != nil && !errors.Is(err, domain.ErrUnknownTaskStatus) {
		return domain.TaskSnapshot{}, err
	}
	if s.board != nil {
		s.board.Adopt(session.Address, snapshot)
	}

	return snapshot, err
}

func (s *TaskActionService) perform(ctx context.Context, action domain.Action, id domain.TaskID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%s: text is required", action)
	}

	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return err
	}

	if action != domain.ActionRequest {
		task, err := s.lookup(ctx, session.Address, id)
		if err != nil {
			return err
		}
		if err := task.Permits(action); err != nil {
			return err
		}
	}

	txType, err := domain.TxTypeForAction(action)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("%s %s", action, id)
	err = s.sessions.WithSecret(ctx, reason, func(session domain.Session, secret domain.Secret) error {
		return s.api.SendTransaction(ctx, domain.NewTaskTransaction(session.Address, session.Username, txType, id, text, secret))
	})
	if err != nil {
		return fmt.Errorf("%s task %s: %w", action, id, err)
	}

	if s.board != nil && s.sessions.IsCurrentAccount(session.Address) {
		s.board.ApplyOptimistic(session.Address, id, domain.Message{
			Direction: domain.DirectionOutbound,
			Data:      txType.Memo(text),
		})
	}

	return nil
}

func (s *TaskActionService) lookup(ctx context.Context, address domain.Address, id domain.TaskID) (domain.Task, error) {
	if s.board != nil {
		if task, ok := s.board.Snapshot().Find(id); ok {
			return task, nil
		}
	}

	snapshot, err := s.api.Tasks(ctx, address)
	if err != nil && snapshot.Len() == 0 {
		return domain.Task{}, err
	}
	if s.board != nil {
		s.board.Adopt(address, snapshot)
	}

	task, ok := snapshot.Find(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}

	return task, nil
}
