package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/adapters/api/apitest"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tasksFixture = `{
  "requested": [],
  "proposed": [
    {"id": "2025-01-18_15:08__ZB22", "status": "proposed", "pft_offered": "900", "pft_rewarded": null,
     "message_history": [{"direction": "outbound", "data": "REQUEST_POST_FIAT ___ work"}, {"direction": "inbound", "data": "PROPOSED PF ___ do it"}]}
  ],
  "accepted": [
    {"id": "2025-01-22_17:18__FN84", "status": "accepted", "pft_offered": 500, "pft_rewarded": null, "message_history": []}
  ],
  "challenged": [],
  "refused": [],
  "rewarded": [
    {"id": "2025-01-10_08:00__RW01", "status": "rewarded", "pft_offered": "100", "pft_rewarded": "120", "message_history": []}
  ]
}`

func newWalletClient(t *testing.T, backend *apitest.Backend, gate *stubGate) *WalletClient {
	t.Helper()
	return NewWalletClient(newTestClient(t, backend, gate))
}

func TestWalletSignIn(t *testing.T) {
	backend := apitest.New(t)
	backend.AddUser("alice", "pw", "rA")
	wallet := newWalletClient(t, backend, newStubGate(""))

	result, err := wallet.SignIn(context.Background(), "alice", domain.NewSecret("pw"))
	require.NoError(t, err)
	assert.Equal(t, ports.SignInResult{Address: "rA", Username: "alice"}, result)

	call, ok := backend.LastCall(http.MethodPost, "/auth/signin")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"username": "alice", "password": "pw"}, call.Body)

	_, err = wallet.SignIn(context.Background(), "alice", domain.NewSecret("wrong"))
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestWalletTasksDecodesGroupsNewestFirst(t *testing.T) {
	backend := apitest.New(t)
	backend.SetTasks("rA", tasksFixture)
	wallet := newWalletClient(t, backend, newStubGate("rA"))

	snapshot, err := wallet.Tasks(context.Background(), "rA")
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Len())

	visible := snapshot.Visible(false)
	require.Len(t, visible, 2)
	assert.Equal(t, domain.TaskID("2025-01-22_17:18__FN84"), visible[0].ID)
	assert.Equal(t, domain.TaskAccepted, visible[0].Status)
	assert.InDelta(t, 500.0, visible[0].RewardOffered, 0.001)
	assert.Equal(t, "PROPOSED PF ___ do it", visible[1].MainMessage())
	assert.Equal(t, domain.DirectionInbound, visible[1].MessageHistory[1].Direction)

	rewarded := snapshot.Rewarded()
	require.Len(t, rewarded, 1)
	require.NotNil(t, rewarded[0].RewardPaid)
	assert.InDelta(t, 120.0, rewarded[0].Reward(), 0.001)

	assert.Equal(t, 1, backend.Count(http.MethodGet, "/tasks/rA"))
	_, err = wallet.Tasks(context.Background(), "rA")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.Count(http.MethodGet, "/tasks/rA"), "task polls bypass the cache")
}

func TestWalletTasksKeepsKnownGroupsOnUnknownStatus(t *testing.T) {
	backend := apitest.New(t)
	backend.SetTasks("rA", `{"proposed":[{"id":"2025-01-18_15:08__ZB22","message_history":[]}],"escalated":[{"id":"2025-01-19_15:08__XX00","message_history":[]}]}`)
	wallet := newWalletClient(t, backend, newStubGate("rA"))

	snapshot, err := wallet.Tasks(context.Background(), "rA")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTaskStatus)
	assert.Equal(t, 1, snapshot.Len())
}

func TestWalletTaskControlEndpoints(t *testing.T) {
	backend := apitest.New(t)
	wallet := newWalletClient(t, backend, newStubGate("rA"))
	ctx := context.Background()

	require.NoError(t, wallet.InitializeTasks(ctx, "rA"))
	require.NoError(t, wallet.StartRefresh(ctx, "rA"))
	require.NoError(t, wallet.StopRefresh(ctx, "rA"))
	require.NoError(t, wallet.ClearState(ctx, "rA"))

	for _, path := range []string{"/tasks/initialize/rA", "/tasks/start-refresh/rA", "/tasks/stop-refresh/rA", "/tasks/clear-state/rA"} {
		assert.Equal(t, 1, backend.Count(http.MethodPost, path), path)
	}
}

func TestWalletSendTransactionBody(t *testing.T) {
	backend := apitest.New(t)
	backend.AddUser("alice", "pw", "rA")
	wallet := newWalletClient(t, backend, newStubGate("rA"))

	req := domain.NewTaskTransaction("rA", "alice", domain.TxTaskAcceptance, "2025-01-18_15:08__ZB22", "on it", domain.NewSecret("pw"))
	require.NoError(t, wallet.SendTransaction(context.Background(), req))

	call, ok := backend.LastCall(http.MethodPost, "/transaction/send")
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"account":  "rA",
		"tx_type":  "task_acceptance",
		"password": "pw",
		"data": map[string]any{
			"message":  "on it",
			"task_id":  "2025-01-18_15:08__ZB22",
			"username": "alice",
		},
	}, call.Body)

	req.Secret = domain.NewSecret("bad")
	err := wallet.SendTransaction(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsSecretRejection(err))

	req.Secret = domain.Secret{}
	assert.ErrorIs(t, wallet.SendTransaction(context.Background(), req), domain.ErrSecretRequired)
}

func TestWalletPayments(t *testing.T) {
	backend := apitest.New(t)
	backend.AddUser("alice", "pw", "rA")
	backend.SetPayments("rA", `{"payments":[{"ledger_index":42,"timestamp":"2025-01-18T15:08:00","hash":"H1","from_address":"rB","to_address":"rA","amount_xrp":1.5,"amount_pft":0,"memo_data":"thanks"}]}`)
	wallet := newWalletClient(t, backend, newStubGate("rA"))
	ctx := context.Background()

	payments, err := wallet.Payments(ctx, "rA")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(42), payments[0].LedgerIndex)
	assert.Equal(t, time.Date(2025, 1, 18, 15, 8, 0, 0, time.UTC), payments[0].Timestamp)
	assert.Equal(t, "From", payments[0].Direction("rA"))
	assert.InDelta(t, 1.5, payments[0].AmountXRP, 0.0001)

	err = wallet.SendPayment(ctx, domain.PaymentRequest{From: "rA", To: "rB", Amount: 2.25, Currency: domain.CurrencyPFT, Memo: "rent"}, domain.NewSecret("pw"))
	require.NoError(t, err)

	call, ok := backend.LastCall(http.MethodPost, "/transaction/payment")
	require.True(t, ok)
	assert.Equal(t, "2.25", call.Body["amount"])
	assert.Equal(t, "PFT", call.Body["currency"])
	assert.Equal(t, "rent", call.Body["memo"])
	assert.NotContains(t, call.Body, "memo_id")

	err = wallet.SendPayment(ctx, domain.PaymentRequest{From: "rA", To: "rB", Amount: -1, Currency: domain.CurrencyPFT}, domain.NewSecret("pw"))
	require.Error(t, err)
}

func TestWalletNodeMessages(t *testing.T) {
	backend := apitest.New(t)
	backend.AddUser("alice", "pw", "rA")
	backend.SetMessages("rA", `{"messages":[{"message_id":"m1","direction":"USER_TO_NODE","message":"hi","timestamp":1737212880,"amount_pft":1}]}`)
	wallet := newWalletClient(t, backend, newStubGate("rA"))
	ctx := context.Background()

	messages, err := wallet.NodeMessages(ctx, "rA", domain.NewSecret("pw"))
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].FromUser)
	assert.Equal(t, time.Unix(1737212880, 0).UTC(), messages[0].Timestamp)

	_, err = wallet.NodeMessages(ctx, "rA", domain.NewSecret("nope"))
	assert.True(t, domain.IsSecretRejection(err))

	require.NoError(t, wallet.SendNodeMessage(ctx, ports.NodeMessageRequest{Account: "rA", Secret: domain.NewSecret("pw"), Text: "status?", AmountPFT: 1}))
	require.NoError(t, wallet.SendNodeLog(ctx, ports.NodeMessageRequest{Account: "rA", Secret: domain.NewSecret("pw"), Text: "did things"}))

	call, ok := backend.LastCall(http.MethodPost, "/odv/send_log")
	require.True(t, ok)
	assert.Equal(t, "did things", call.Body["log_content"])
}

func TestWalletGenerateAndCreateAccount(t *testing.T) {
	backend := apitest.New(t)
	wallet := newWalletClient(t, backend, newStubGate(""))
	ctx := context.Background()

	keypair, err := wallet.GenerateWallet(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("rGeneratedWallet"), keypair.Address)
	assert.Equal(t, "sEdGeneratedSeed", keypair.PrivateKey.Reveal())

	address, err := wallet.CreateAccount(ctx, ports.CreateAccountRequest{
		Username:   "bob",
		Secret:     domain.NewSecret("pw"),
		PrivateKey: keypair.PrivateKey,
		Address:    keypair.Address,
	})
	require.NoError(t, err)
	assert.Equal(t, keypair.Address, address)

	require.NoError(t, wallet.Health(ctx))
	backend.SetHealthy(false)
	assert.Error(t, wallet.Health(ctx))
}
