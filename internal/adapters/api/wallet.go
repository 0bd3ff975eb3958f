package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	json "github.com/goccy/go-json"
)

// WalletClient maps the wallet backend endpoints onto ports.WalletAPI.
type WalletClient struct {
	client *Client
}

var _ ports.WalletAPI = (*WalletClient)(nil)

func NewWalletClient(client *Client) *WalletClient {
	return &WalletClient{client: client}
}

func (w *WalletClient) Health(ctx context.Context) error {
	var resp healthResponse
	if err := w.client.Get(ctx, "/health", &resp, WithoutCache()); err != nil {
		return fmt.Errorf("check health: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("check health: unexpected status %q", resp.Status)
	}

	return nil
}

func (w *WalletClient) SignIn(ctx context.Context, username string, secret domain.Secret) (ports.SignInResult, error) {
	var resp signInResponse
	err := w.client.Post(ctx, "/auth/signin", signInRequest{Username: username, Password: secret.Reveal()}, &resp)
	if err != nil {
		return ports.SignInResult{}, fmt.Errorf("sign in: %w", err)
	}
	if resp.Address == "" {
		return ports.SignInResult{}, errors.New("sign in: response missing address")
	}
	if resp.Username == "" {
		resp.Username = username
	}

	return ports.SignInResult{Address: domain.Address(resp.Address), Username: resp.Username}, nil
}

func (w *WalletClient) CreateAccount(ctx context.Context, req ports.CreateAccountRequest) (domain.Address, error) {
	var resp createAccountResponse
	err := w.client.Post(ctx, "/auth/create", createAccountRequest{
		Username:   req.Username,
		Password:   req.Secret.Reveal(),
		PrivateKey: req.PrivateKey.Reveal(),
		Address:    string(req.Address),
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}

	address := domain.Address(resp.Address)
	if address.IsZero() {
		address = req.Address
	}
	if address.IsZero() {
		return "", errors.New("create account: response missing address")
	}

	return address, nil
}

func (w *WalletClient) GenerateWallet(ctx context.Context) (domain.Keypair, error) {
	var resp keypairResponse
	if err := w.client.Post(ctx, "/wallet/generate", nil, &resp); err != nil {
		return domain.Keypair{}, fmt.Errorf("generate wallet: %w", err)
	}
	if resp.Address == "" || resp.PrivateKey == "" {
		return domain.Keypair{}, errors.New("generate wallet: response missing keypair fields")
	}

	return domain.Keypair{Address: domain.Address(resp.Address), PrivateKey: domain.NewSecret(resp.PrivateKey)}, nil
}

func (w *WalletClient) AccountSummary(ctx context.Context, address domain.Address) (domain.AccountSummary, error) {
	var resp summaryResponse
	if err := w.client.Get(ctx, "/account/"+string(address)+"/summary", &resp); err != nil {
		return domain.AccountSummary{}, fmt.Errorf("get account summary: %w", err)
	}

	return domain.AccountSummary{
		Address:    address,
		XRPBalance: resp.XRPBalance.Value,
		PFTBalance: resp.PFTBalance.Value,
	}, nil
}

func (w *WalletClient) AccountStatus(ctx context.Context, address domain.Address) (domain.AccountStatus, error) {
	var resp statusResponse
	if err := w.client.Get(ctx, "/account/"+string(address)+"/status", &resp, WithoutCache()); err != nil {
		return domain.AccountStatus{}, fmt.Errorf("get account status: %w", err)
	}

	return resp.toDomain(), nil
}

// Tasks always fetches live data; polling must observe fresh state.
func (w *WalletClient) Tasks(ctx context.Context, address domain.Address) (domain.TaskSnapshot, error) {
	var raw json.RawMessage
	if err := w.client.Get(ctx, "/tasks/"+string(address), &raw, WithoutCache()); err != nil {
		return domain.TaskSnapshot{}, fmt.Errorf("get tasks: %w", err)
	}

	groups, err := decodeTaskGroups(raw)
	if err != nil {
		return domain.TaskSnapshot{}, fmt.Errorf("decode tasks: %w", err)
	}

	snapshot, err := domain.NewTaskSnapshot(groups)
	if err != nil {
		return snapshot, fmt.Errorf("classify tasks: %w", err)
	}

	return snapshot, nil
}

func (w *WalletClient) InitializeTasks(ctx context.Context, address domain.Address) error {
	return w.taskControl(ctx, "initialize", address)
}

func (w *WalletClient) StartRefresh(ctx context.Context, address domain.Address) error {
	return w.taskControl(ctx, "start-refresh", address)
}

func (w *WalletClient) StopRefresh(ctx context.Context, address domain.Address) error {
	return w.taskControl(ctx, "stop-refresh", address)
}

func (w *WalletClient) ClearState(ctx context.Context, address domain.Address) error {
	return w.taskControl(ctx, "clear-state", address)
}

func (w *WalletClient) taskControl(ctx context.Context, verb string, address domain.Address) error {
	if err := w.client.Post(ctx, "/tasks/"+verb+"/"+string(address), nil, nil); err != nil {
		return fmt.Errorf("%s tasks: %w", strings.ReplaceAll(verb, "-", " "), err)
	}

	return nil
}

func (w *WalletClient) SendTransaction(ctx context.Context, req domain.TransactionRequest) error {
	if req.Secret.IsZero() {
		return domain.ErrSecretRequired
	}

	err := w.client.Post(ctx, "/transaction/send", transactionRequest{
		Account:  string(req.Account),
		TxType:   string(req.Type),
		Password: req.Secret.Reveal(),
		Data:     req.Data,
	}, nil, WithAccount(req.Account))
	if err != nil {
		return fmt.Errorf("send %s transaction: %w", req.Type, err)
	}

	return nil
}

func (w *WalletClient) SendPayment(ctx context.Context, req domain.PaymentRequest, secret domain.Secret) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validate payment: %w", err)
	}
	if secret.IsZero() {
		return domain.ErrSecretRequired
	}

	body := paymentRequest{
		FromAccount: string(req.From),
		ToAddress:   string(req.To),
		Amount:      strconv.FormatFloat(req.Amount, 'f', -1, 64),
		Currency:    string(req.Currency),
		Password:    secret.Reveal(),
	}
	if req.MemoID != "" {
		body.MemoID = &req.MemoID
	}
	if req.Memo != "" {
		body.Memo = &req.Memo
	}

	if err := w.client.Post(ctx, "/transaction/payment", body, nil, WithAccount(req.From)); err != nil {
		return fmt.Errorf("send payment: %w", err)
	}

	return nil
}

func (w *WalletClient) Payments(ctx context.Context, address domain.Address) ([]domain.Payment, error) {
	var resp paymentsResponse
	if err := w.client.Get(ctx, "/payments/"+string(address), &resp); err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(resp.Payments))
	for _, payment := range resp.Payments {
		payments = append(payments, payment.toDomain())
	}

	return payments, nil
}

func (w *WalletClient) SendNodeMessage(ctx context.Context, req ports.NodeMessageRequest) error {
	if req.Secret.IsZero() {
		return domain.ErrSecretRequired
	}

	err := w.client.Post(ctx, "/odv/send_message", nodeMessageRequest{
		Account:   string(req.Account),
		Password:  req.Secret.Reveal(),
		Message:   req.Text,
		AmountPFT: req.AmountPFT,
	}, nil, WithAccount(req.Account))
	if err != nil {
		return fmt.Errorf("send node message: %w", err)
	}

	return nil
}

func (w *WalletClient) SendNodeLog(ctx context.Context, req ports.NodeMessageRequest) error {
	if req.Secret.IsZero() {
		return domain.ErrSecretRequired
	}

	err := w.client.Post(ctx, "/odv/send_log", nodeMessageRequest{
		Account:    string(req.Account),
		Password:   req.Secret.Reveal(),
		LogContent: req.Text,
		AmountPFT:  req.AmountPFT,
	}, nil, WithAccount(req.Account))
	if err != nil {
		return fmt.Errorf("send node log: %w", err)
	}

	return nil
}

// NodeMessages decrypts the message history server-side, so it needs the
// secret and is never cached.
func (w *WalletClient) NodeMessages(ctx context.Context, address domain.Address, secret domain.Secret) ([]domain.NodeMessage, error) {
	if secret.IsZero() {
		return nil, domain.ErrSecretRequired
	}

	var resp nodeMessagesResponse
	err := w.client.Post(ctx, "/odv/messages/"+string(address), nodeMessagesRequest{Password: secret.Reveal()}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get node messages: %w", err)
	}

	messages := make([]domain.NodeMessage, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		messages = append(messages, msg.toDomain())
	}

	return messages, nil
}
