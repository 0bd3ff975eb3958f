package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultAccountPollInterval = 10 * time.Second

// AccountService covers balances, onboarding, payments and node messaging.
type AccountService struct {
	api      ports.WalletAPI
	sessions *SessionService
	clock    ports.Clock
	interval time.Duration
	logger   zerolog.Logger
}

func NewAccountService(api ports.WalletAPI, sessions *SessionService, clock ports.Clock, interval time.Duration) *AccountService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultAccountPollInterval
	}

	return &AccountService{
		api:      api,
		sessions: sessions,
		clock:    clock,
		interval: interval,
		logger:   log.Logger.With().Str("component", "account").Logger(),
	}
}

func (s *AccountService) Health(ctx context.Context) error {
	return s.api.Health(ctx)
}

func (s *AccountService) Summary(ctx context.Context) (domain.AccountSummary, error) {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return domain.AccountSummary{}, err
	}

	return s.api.AccountSummary(ctx, session.Address)
}

// Status fetches onboarding status. On failure the status reads UNSTARTED
// and the error is returned alongside it.
func (s *AccountService) Status(ctx context.Context) (domain.AccountStatus, error) {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return domain.AccountStatus{InitRiteStatus: domain.InitRiteUnstarted}, err
	}

	status, err := s.api.AccountStatus(ctx, session.Address)
	if err != nil {
		return domain.AccountStatus{InitRiteStatus: domain.InitRiteUnstarted}, err
	}

	return status, nil
}

// PollStatus delivers the account status now and then on every interval
// until ctx ends. Results for a superseded account are dropped.
func (s *AccountService) PollStatus(ctx context.Context, onStatus func(domain.AccountStatus)) error {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return err
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	deliver := func() {
		status, err := s.api.AccountStatus(ctx, session.Address)
		if ctx.Err() != nil || !s.sessions.IsCurrentAccount(session.Address) {
			return
		}
		if err != nil {
			if domain.IsSilent(err) {
				return
			}
			s.logger.Debug().Err(err).Str("account", session.Address.String()).Msg("status poll failed")
			status = domain.AccountStatus{InitRiteStatus: domain.InitRiteUnstarted}
		}
		onStatus(status)
	}

	deliver()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			deliver()
		}
	}
}

func (s *AccountService) SubmitInitiationRite(ctx context.Context, rite string) error {
	rite = strings.TrimSpace(rite)
	if rite == "" {
		return errors.New("initiation rite text is required")
	}
	if _, err := s.sessions.RequireSession(ctx); err != nil {
		return err
	}

	err := s.sessions.WithSecret(ctx, "submit initiation rite", func(session domain.Session, secret domain.Secret) error {
		return s.api.SendTransaction(ctx, domain.NewInitiationRite(session.Address, session.Username, rite, secret))
	})
	if err != nil {
		return fmt.Errorf("submit initiation rite: %w", err)
	}

	return nil
}

func (s *AccountService) Payments(ctx context.Context) ([]domain.Payment, error) {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.api.Payments(ctx, session.Address)
}

type PaymentInput struct {
	To       domain.Address
	Amount   float64
	Currency domain.Currency
	MemoID   string
	Memo     string
}

func (s *AccountService) SendPayment(ctx context.Context, in PaymentInput) error {
	session, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return err
	}

	req := domain.PaymentRequest{
		From:     session.Address,
		To:       in.To,
		Amount:   in.Amount,
		Currency: in.Currency,
		MemoID:   in.MemoID,
		Memo:     in.Memo,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	reason := fmt.Sprintf("send %g %s to %s", in.Amount, in.Currency, in.To)
	return s.sessions.WithSecret(ctx, reason, func(_ domain.Session, secret domain.Secret) error {
		return s.api.SendPayment(ctx, req, secret)
	})
}

func (s *AccountService) SendNodeMessage(ctx context.Context, text string, amountPFT float64) error {
	return s.sendToNode(ctx, "send node message", text, amountPFT, s.api.SendNodeMessage)
}

func (s *AccountService) SendNodeLog(ctx context.Context, text string, amountPFT float64) error {
	return s.sendToNode(ctx, "send node log", text, amountPFT, s.api.SendNodeLog)
}

func (s *AccountService) NodeMessages(ctx context.Context) ([]domain.NodeMessage, error) {
	if _, err := s.sessions.RequireSession(ctx); err != nil {
		return nil, err
	}

	var messages []domain.NodeMessage
	err := s.sessions.WithSecret(ctx, "read node messages", func(session domain.Session, secret domain.Secret) error {
		var err error
		messages, err = s.api.NodeMessages(ctx, session.Address, secret)
		return err
	})

	return messages, err
}

func (s *AccountService) sendToNode(
	ctx context.Context,
	reason string,
	text string,
	amountPFT float64,
	send func(context.Context, ports.NodeMessageRequest) error,
) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("message text is required")
	}
	if amountPFT < 0 {
		return errors.New("amount must not be negative")
	}
	if _, err := s.sessions.RequireSession(ctx); err != nil {
		return err
	}

	return s.sessions.WithSecret(ctx, reason, func(session domain.Session, secret domain.Secret) error {
		return send(ctx, ports.NodeMessageRequest{
			Account:   session.Address,
			Secret:    secret,
			Text:      text,
			AmountPFT: amountPFT,
		})
	})
}
