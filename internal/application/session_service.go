package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxSecretAttempts bounds re-prompts after the backend rejects a secret.
const MaxSecretAttempts = 3

type SessionConfig struct {
	API         ports.WalletAPI
	Marker      *AccountMarker
	Credentials *CredentialHolder
	Profiles    ports.ProfileRepository
	Cache       ports.RequestCache
	Aborts      ports.RequestAborter
	Monitor     ports.ConnectionMonitor
	Clock       ports.Clock
	Logger      *zerolog.Logger
}

type SessionService struct {
	api         ports.WalletAPI
	marker      *AccountMarker
	credentials *CredentialHolder
	profiles    ports.ProfileRepository
	cache       ports.RequestCache
	aborts      ports.RequestAborter
	monitor     ports.ConnectionMonitor
	clock       ports.Clock
	logger      zerolog.Logger
}

func NewSessionService(cfg SessionConfig) (*SessionService, error) {
	switch {
	case cfg.API == nil:
		return nil, errors.New("wallet api is required")
	case cfg.Marker == nil:
		return nil, errors.New("account marker is required")
	case cfg.Credentials == nil:
		return nil, errors.New("credential holder is required")
	case cfg.Profiles == nil:
		return nil, errors.New("profile repository is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &SessionService{
		api:         cfg.API,
		marker:      cfg.Marker,
		credentials: cfg.Credentials,
		profiles:    cfg.Profiles,
		cache:       cfg.Cache,
		aborts:      cfg.Aborts,
		monitor:     cfg.Monitor,
		clock:       cfg.Clock,
		logger:      logger.With().Str("component", "session").Logger(),
	}, nil
}

// Current returns the active session with the cached secret, if any.
func (s *SessionService) Current() domain.Session {
	session := s.marker.Session()
	if secret, ok := s.credentials.Cached(); ok && session.Authenticated {
		session.Secret = secret
	}

	return session
}

func (s *SessionService) IsCurrentAccount(address domain.Address) bool {
	return s.marker.IsCurrentAccount(address)
}

// SetSecret caches secret in memory for later signed actions.
func (s *SessionService) SetSecret(secret domain.Secret) {
	s.credentials.Set(secret)
}

func (s *SessionService) SignIn(ctx context.Context, username string, secret domain.Secret) (domain.Session, error) {
	if username == "" {
		return domain.Session{}, errors.New("username is required")
	}
	if secret.IsZero() {
		return domain.Session{}, domain.ErrSecretRequired
	}

	result, err := s.api.SignIn(ctx, username, secret)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{Authenticated: true, Address: result.Address, Username: result.Username}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}

	s.adoptPersisted(ctx)
	s.switchTo(ctx, session)
	s.credentials.Set(secret)

	if err := s.api.InitializeTasks(ctx, session.Address); err != nil {
		s.logger.Warn().Err(err).Str("account", session.Address.String()).Msg("initialize tasks failed")
	}

	if err := s.profiles.Save(ctx, domain.Profile{
		Address:   session.Address,
		Username:  session.Username,
		UpdatedAt: s.clock.Now(),
	}); err != nil {
		return session, fmt.Errorf("save profile: %w", err)
	}

	if s.monitor != nil {
		s.monitor.StartMonitoring(true)
	}
	s.logger.Info().Str("account", session.Address.String()).Str("username", session.Username).Msg("signed in")

	session.Secret = secret
	return session, nil
}

type CreateAccountInput struct {
	Username string
	Secret   domain.Secret
	// Generate requests a fresh keypair from the backend first.
	Generate   bool
	Address    domain.Address
	PrivateKey domain.Secret
}

type CreateAccountResult struct {
	Session domain.Session
	// Keypair is set when Generate was requested.
	Keypair *domain.Keypair
}

func (s *SessionService) CreateAccount(ctx context.Context, in CreateAccountInput) (CreateAccountResult, error) {
	if in.Username == "" {
		return CreateAccountResult{}, errors.New("username is required")
	}
	if in.Secret.IsZero() {
		return CreateAccountResult{}, domain.ErrSecretRequired
	}

	var result CreateAccountResult
	if in.Generate {
		keypair, err := s.api.GenerateWallet(ctx)
		if err != nil {
			return CreateAccountResult{}, err
		}
		in.Address = keypair.Address
		in.PrivateKey = keypair.PrivateKey
		result.Keypair = &keypair
	}

	if _, err := s.api.CreateAccount(ctx, ports.CreateAccountRequest{
		Username:   in.Username,
		Secret:     in.Secret,
		PrivateKey: in.PrivateKey,
		Address:    in.Address,
	}); err != nil {
		return result, err
	}

	session, err := s.SignIn(ctx, in.Username, in.Secret)
	if err != nil {
		return result, fmt.Errorf("sign in new account: %w", err)
	}
	if err := s.api.ClearState(ctx, session.Address); err != nil {
		s.logger.Warn().Err(err).Str("account", session.Address.String()).Msg("clear state failed")
	}

	result.Session = session
	return result, nil
}

func (s *SessionService) GenerateWallet(ctx context.Context) (domain.Keypair, error) {
	return s.api.GenerateWallet(ctx)
}

// Restore re-activates the persisted profile without a secret; signed actions
// prompt for it. It returns an unauthenticated session when nothing is stored.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("load profile: %w", err)
	}

	session := domain.Session{Authenticated: true, Address: profile.Address, Username: profile.Username}
	if current := s.marker.Session(); current.Authenticated && current.Address == session.Address {
		return s.Current(), nil
	}

	s.switchTo(ctx, session)
	return session, nil
}

// RequireSession restores if needed and fails when nobody is signed in.
func (s *SessionService) RequireSession(ctx context.Context) (domain.Session, error) {
	session := s.Current()
	if session.Authenticated {
		return session, nil
	}

	session, err := s.Restore(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.Authenticated {
		return domain.Session{}, domain.ErrNotAuthenticated
	}

	return session, nil
}

// ClearAuth signs out. Server-side teardown is best-effort; the local state
// is always reset.
func (s *SessionService) ClearAuth(ctx context.Context) error {
	session := s.marker.Session()
	address := session.Address

	if session.Authenticated {
		if err := s.api.StopRefresh(ctx, address); err != nil {
			s.logger.Warn().Err(err).Str("account", address.String()).Msg("stop refresh failed")
		}
		if err := s.api.ClearState(ctx, address); err != nil {
			s.logger.Warn().Err(err).Str("account", address.String()).Msg("clear state failed")
		}
	}

	s.resetLocal(address)
	s.marker.Switch(domain.Session{})

	if s.monitor != nil {
		s.monitor.StartMonitoring(false)
	}

	if err := s.profiles.Clear(ctx); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	s.logger.Info().Str("account", address.String()).Msg("signed out")

	return nil
}

// FollowProfile aligns the session with the persisted profile after another
// process changed it. It reports whether the active account changed.
func (s *SessionService) FollowProfile(ctx context.Context) (bool, error) {
	current := s.marker.Session()

	profile, err := s.profiles.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		if !current.Authenticated {
			return false, nil
		}
		s.logger.Info().Str("account", current.Address.String()).Msg("profile removed elsewhere, signing out locally")
		s.resetLocal(current.Address)
		s.marker.Switch(domain.Session{})
		return true, nil
	case err != nil:
		return false, fmt.Errorf("load profile: %w", err)
	}

	if current.Authenticated && current.Address == profile.Address {
		return false, nil
	}

	s.logger.Info().Str("account", profile.Address.String()).Msg("profile switched elsewhere, following")
	s.switchTo(ctx, domain.Session{Authenticated: true, Address: profile.Address, Username: profile.Username})
	return true, nil
}

// WithSecret runs fn with the signing secret, re-prompting when the backend
// rejects it. A rejected secret is never submitted twice.
func (s *SessionService) WithSecret(ctx context.Context, reason string, fn func(domain.Session, domain.Secret) error) error {
	session := s.marker.Session()
	if !session.Authenticated {
		return domain.ErrNotAuthenticated
	}

	var lastErr error
	for attempt := 0; attempt < MaxSecretAttempts; attempt++ {
		secret, err := s.credentials.ObtainSecret(ctx, ports.SecretPrompt{
			Account:  session.Address,
			Username: session.Username,
			Reason:   reason,
			Retry:    attempt > 0,
		})
		if err != nil {
			return err
		}

		err = fn(session, secret)
		if err == nil {
			return nil
		}
		if !domain.IsSecretRejection(err) {
			return err
		}

		s.logger.Warn().Str("account", session.Address.String()).Int("attempt", attempt+1).Msg("secret rejected")
		s.credentials.Reject(secret)
		lastErr = err
	}

	return fmt.Errorf("secret rejected %d times: %w", MaxSecretAttempts, lastErr)
}

// switchTo activates session. Leaving another account stops its
// server-side refresh and tears down its local state first; stop-refresh is
// sent while that account is still active so the client does not drop it.
func (s *SessionService) switchTo(ctx context.Context, session domain.Session) {
	previous := s.marker.Session()
	if previous.Authenticated && previous.Address != session.Address {
		if err := s.api.StopRefresh(ctx, previous.Address); err != nil && !domain.IsSilent(err) {
			s.logger.Warn().Err(err).Str("account", previous.Address.String()).Msg("stop refresh failed")
		}
		s.resetLocal(previous.Address)
	} else {
		s.credentials.Clear()
	}

	s.marker.Switch(session)
}

// adoptPersisted activates the account an earlier process left signed in,
// so signing in elsewhere switches away from it like an in-process switch.
func (s *SessionService) adoptPersisted(ctx context.Context) {
	if s.marker.IsAuthenticated() {
		return
	}
	if _, err := s.Restore(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("previous profile unreadable")
	}
}

func (s *SessionService) resetLocal(address domain.Address) {
	if s.aborts != nil && !address.IsZero() {
		s.aborts.AbortAll(string(address))
	}
	if s.cache != nil {
		if address.IsZero() {
			s.cache.Clear()
		} else {
			s.cache.InvalidateAccount(string(address))
		}
	}
	s.credentials.Clear()
}
