package ports

import (
	"context"

	"github.com/bnema/pft-wallet-cli/internal/domain"
)

type SignInResult struct {
	Address  domain.Address
	Username string
}

type CreateAccountRequest struct {
	Username   string
	Secret     domain.Secret
	PrivateKey domain.Secret
	Address    domain.Address
}

type NodeMessageRequest struct {
	Account   domain.Address
	Secret    domain.Secret
	Text      string
	AmountPFT float64
}

// WalletAPI is the typed surface of the wallet backend.
type WalletAPI interface {
	Health(ctx context.Context) error
	SignIn(ctx context.Context, username string, secret domain.Secret) (SignInResult, error)
	CreateAccount(ctx context.Context, req CreateAccountRequest) (domain.Address, error)
	GenerateWallet(ctx context.Context) (domain.Keypair, error)

	AccountSummary(ctx context.Context, address domain.Address) (domain.AccountSummary, error)
	AccountStatus(ctx context.Context, address domain.Address) (domain.AccountStatus, error)

	Tasks(ctx context.Context, address domain.Address) (domain.TaskSnapshot, error)
	InitializeTasks(ctx context.Context, address domain.Address) error
	StartRefresh(ctx context.Context, address domain.Address) error
	StopRefresh(ctx context.Context, address domain.Address) error
	ClearState(ctx context.Context, address domain.Address) error

	SendTransaction(ctx context.Context, req domain.TransactionRequest) error
	SendPayment(ctx context.Context, req domain.PaymentRequest, secret domain.Secret) error
	Payments(ctx context.Context, address domain.Address) ([]domain.Payment, error)

	SendNodeMessage(ctx context.Context, req NodeMessageRequest) error
	SendNodeLog(ctx context.Context, req NodeMessageRequest) error
	NodeMessages(ctx context.Context, address domain.Address, secret domain.Secret) ([]domain.NodeMessage, error)
}

// RequestCache invalidation surface used by session teardown.
type RequestCache interface {
	InvalidateAccount(account string)
	Clear()
}

// RequestAborter cancels in-flight requests of an account.
type RequestAborter interface {
	AbortAll(account string)
}

// ConnectionMonitor is the control surface of the liveness probe loop.
type ConnectionMonitor interface {
	StartMonitoring(authenticated bool)
	StopMonitoring()
	ManualCheck(ctx context.Context) bool
	Status() bool
}
