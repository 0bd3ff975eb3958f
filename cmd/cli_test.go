package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/pft-wallet-cli/internal/adapters/api/apitest"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/bnema/pft-wallet-cli/internal/version"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	proposedID = "2026-03-14_08:00__PR01"
	acceptedID = "2026-03-13_08:00__AC01"
)

const tasksFixture = `{
  "requested": [],
  "proposed": [
    {"id": "2026-03-14_08:00__PR01", "status": "proposed", "pft_offered": "900", "pft_rewarded": null,
     "message_history": [{"direction": "outbound", "data": "REQUEST_POST_FIAT ___ docs"}, {"direction": "inbound", "data": "PROPOSED PF ___ write the changelog"}]}
  ],
  "accepted": [
    {"id": "2026-03-13_08:00__AC01", "status": "accepted", "pft_offered": 500, "pft_rewarded": null, "message_history": []}
  ],
  "challenged": [],
  "refused": [],
  "rewarded": [
    {"id": "2026-03-01_08:00__RW01", "status": "rewarded", "pft_offered": "100", "pft_rewarded": "120", "message_history": []}
  ]
}`

// scriptedPrompter answers secret prompts from a script; the last answer
// repeats.
type scriptedPrompter struct {
	mu      sync.Mutex
	secrets []string
	prompts []ports.SecretPrompt
}

func newScriptedPrompter(secrets ...string) *scriptedPrompter {
	return &scriptedPrompter{secrets: secrets}
}

func (p *scriptedPrompter) PromptSecret(_ context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prompts = append(p.prompts, req)
	if len(p.secrets) == 0 {
		return domain.Secret{}, errors.New("no scripted secret")
	}
	secret := p.secrets[0]
	if len(p.secrets) > 1 {
		p.secrets = p.secrets[1:]
	}

	return domain.NewSecret(secret), nil
}

func (p *scriptedPrompter) Prompts() []ports.SecretPrompt {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]ports.SecretPrompt(nil), p.prompts...)
}

type testEnv struct {
	home    string
	backend *apitest.Backend
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	home := t.TempDir()
	backend := apitest.New(t)
	backend.AddUser("alice", "pw", "rAlice")

	t.Setenv("HOME", home)
	t.Setenv("PFW_API_BASE_URL", backend.URL())
	t.Setenv("PFW_PASSWORD", "")
	t.Setenv("PASSWORD_STORE_DIR", filepath.Join(home, "no-pass-store"))

	return testEnv{home: home, backend: backend}
}

func (e testEnv) profilePath() string {
	return filepath.Join(e.home, ".pfw", "profile.toml")
}

func executeCLI(t *testing.T, prompter ports.SecretPrompter, args ...string) (string, string, error) {
	t.Helper()

	c := newCLI(prompter)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	c.root.SetOut(stdout)
	c.root.SetErr(stderr)
	c.root.SetArgs(args)

	err := c.execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func signIn(t *testing.T) {
	t.Helper()

	stdout, stderr, err := executeCLI(t, newScriptedPrompter("pw"), "auth", "signin", "--username", "alice")
	require.NoError(t, err, "stderr: %s", stderr)
	require.Contains(t, stdout, "signed in as alice (rAlice)")
}

func TestVersionRunsWithoutWiring(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PFW_API_BASE_URL", "not a url")

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestSignInPersistsProfileAndInitializesTasks(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	raw, err := os.ReadFile(env.profilePath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "rAlice")
	assert.NotContains(t, string(raw), "pw", "the secret is never persisted")
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/initialize/rAlice"))
}

func TestSignInWithWrongPasswordKeepsSignedOut(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCLI(t, newScriptedPrompter("nope"), "auth", "signin", "--username", "alice")
	require.Error(t, err)
	assert.True(t, domain.IsSecretRejection(err))

	_, statErr := os.Stat(env.profilePath())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	_, _, err = executeCLI(t, newScriptedPrompter(), "account", "summary", "--json")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSignInRequiresUsername(t *testing.T) {
	newTestEnv(t)

	_, _, err := executeCLI(t, newScriptedPrompter("pw"), "auth", "signin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"username\" not set")
}

func TestAccountSummaryJSON(t *testing.T) {
	newTestEnv(t)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "account", "summary", "--json")
	require.NoError(t, err)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, summaryOutput{Address: "rAlice", XRPBalance: 12.5, PFTBalance: 3000}, got)
}

func TestAccountStatusFlagsOnboarding(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetStatus("rAlice", `{"init_rite_status":"PENDING_INITIATION","is_blacklisted":false}`)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "account", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "init rite:   PENDING_INITIATION")
	assert.Contains(t, stdout, "onboarding incomplete")

	stdout, _, err = executeCLI(t, newScriptedPrompter(), "account", "status", "--json")
	require.NoError(t, err)
	var got statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.True(t, got.NeedsOnboarding)
}

func TestAccountRiteSignsWithPromptedSecret(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	prompter := newScriptedPrompter("pw")
	stdout, _, err := executeCLI(t, prompter, "account", "rite", "--text", "I commit to ship")
	require.NoError(t, err)
	assert.Contains(t, stdout, "initiation rite submitted")
	require.Len(t, prompter.Prompts(), 1)
	assert.Equal(t, domain.Address("rAlice"), prompter.Prompts()[0].Account)

	call, ok := env.backend.LastCall(http.MethodPost, "/transaction/send")
	require.True(t, ok)
	assert.Equal(t, "initiation_rite", call.Body["tx_type"])
}

func TestTasksListJSONIsNewestFirstWithoutRewarded(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "tasks", "list", "--json")
	require.NoError(t, err)

	var got []taskOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, proposedID, got[0].ID)
	assert.Equal(t, "PROPOSED PF ___ write the changelog", got[0].Message)
	assert.Equal(t, []string{"accept", "refuse"}, got[0].Actions)
	assert.Equal(t, acceptedID, got[1].ID)
}

func TestTasksListRendersTable(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tasks: 2")
	assert.Contains(t, stdout, proposedID)
	assert.NotContains(t, stdout, "RW01")
}

func TestTasksRewardsJSON(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "tasks", "rewards", "--json")
	require.NoError(t, err)

	var got []taskOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].RewardPaid)
	assert.InDelta(t, 120.0, *got[0].RewardPaid, 0.001)
}

func TestTaskAcceptSubmitsTransaction(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter("pw"), "task", "accept", proposedID, "--message", "on it")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accepted "+proposedID)

	call, ok := env.backend.LastCall(http.MethodPost, "/transaction/send")
	require.True(t, ok)
	assert.Equal(t, "task_acceptance", call.Body["tx_type"])
	assert.Equal(t, map[string]any{"message": "on it", "task_id": proposedID, "username": "alice"}, call.Body["data"])
}

func TestTaskActionRejectedForStatusNeverPrompts(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	prompter := newScriptedPrompter("pw")
	_, _, err := executeCLI(t, prompter, "task", "final-verify", acceptedID, "--details", "done")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrActionNotPermitted)
	assert.Empty(t, prompter.Prompts())
	assert.Zero(t, env.backend.Count(http.MethodPost, "/transaction/send"))
}

func TestTaskRequestPrintsGeneratedID(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter("pw"), "task", "request", "--text", "more docs work")
	require.NoError(t, err)
	assert.Contains(t, stdout, "requested task ")

	call, ok := env.backend.LastCall(http.MethodPost, "/transaction/send")
	require.True(t, ok)
	assert.Equal(t, "task_request", call.Body["tx_type"])
}

func TestTaskShowJSONIncludesHistory(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetTasks("rAlice", tasksFixture)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "task", "show", proposedID, "--json")
	require.NoError(t, err)

	var got taskOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.MessageHistory, 2)
	assert.Equal(t, "inbound", got.MessageHistory[1].Direction)
}

func TestPaySendRepromptsAfterRejectedSecret(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	prompter := newScriptedPrompter("wrong", "pw")
	stdout, _, err := executeCLI(t, prompter, "pay", "send", "--to", "rBob", "--amount", "2.5", "--currency", "xrp", "--memo", "rent")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sent 2.5 XRP to rBob")

	prompts := prompter.Prompts()
	require.Len(t, prompts, 2)
	assert.False(t, prompts[0].Retry)
	assert.True(t, prompts[1].Retry)

	call, ok := env.backend.LastCall(http.MethodPost, "/transaction/payment")
	require.True(t, ok)
	assert.Equal(t, "pw", call.Body["password"])
	assert.Equal(t, "XRP", call.Body["currency"])
	assert.Equal(t, 2, env.backend.Count(http.MethodPost, "/transaction/payment"))
}

func TestPaySendValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	_, _, err := executeCLI(t, newScriptedPrompter("pw"), "pay", "send", "--to", "rBob", "--amount", "1", "--currency", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported currency")

	_, _, err = executeCLI(t, newScriptedPrompter("pw"), "pay", "send", "--to", "rBob", "--amount", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be positive")
	assert.Zero(t, env.backend.Count(http.MethodPost, "/transaction/payment"))
}

func TestPayListJSON(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetPayments("rAlice", `{"payments":[{"ledger_index":42,"timestamp":"2026-03-14T09:00:00","hash":"H1","from_address":"rBob","to_address":"rAlice","amount_xrp":1.5,"amount_pft":0,"memo_data":"thanks"}]}`)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "pay", "list", "--json")
	require.NoError(t, err)

	var got []paymentOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "From", got[0].Direction)
	assert.Equal(t, "rBob", got[0].Counterparty)
	assert.Equal(t, "thanks", got[0].Memo)
}

func TestODVCommands(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetMessages("rAlice", `{"messages":[{"message_id":"m1","direction":"NODE_TO_USER","message":"welcome","timestamp":1773478800,"amount_pft":0}]}`)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter("pw"), "odv", "send", "--message", "status?", "--amount", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "message sent")

	stdout, _, err = executeCLI(t, newScriptedPrompter("pw"), "odv", "log", "--content", "shipped the changelog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "log sent")
	call, ok := env.backend.LastCall(http.MethodPost, "/odv/send_log")
	require.True(t, ok)
	assert.Equal(t, "shipped the changelog", call.Body["log_content"])

	stdout, _, err = executeCLI(t, newScriptedPrompter("pw"), "odv", "history", "--json")
	require.NoError(t, err)
	var got []nodeMessageOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.False(t, got[0].FromUser)
	assert.Equal(t, "welcome", got[0].Text)
}

func TestSignInAsAnotherAccountStopsPreviousRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddUser("bob", "pw", "rBob")
	signIn(t)

	stdout, stderr, err := executeCLI(t, newScriptedPrompter("pw"), "auth", "signin", "--username", "bob")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "signed in as bob (rBob)")
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/stop-refresh/rAlice"))
	assert.Zero(t, env.backend.Count(http.MethodPost, "/tasks/stop-refresh/rBob"))

	signIn(t)
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/stop-refresh/rBob"))
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/stop-refresh/rAlice"))
}

func TestSignOutTearsDownServerStateAndProfile(t *testing.T) {
	env := newTestEnv(t)
	signIn(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "auth", "signout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "signed out of rAlice")
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/stop-refresh/rAlice"))
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/clear-state/rAlice"))

	_, statErr := os.Stat(env.profilePath())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	stdout, _, err = executeCLI(t, newScriptedPrompter(), "auth", "signout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "not signed in")
}

func TestCreateWithGeneratedKeypair(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, err := executeCLI(t, newScriptedPrompter("s3cret"), "auth", "create", "--username", "bob", "--generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "address:     rGeneratedWallet")
	assert.Contains(t, stdout, "private key: sEdGeneratedSeed")
	assert.Contains(t, stdout, "created bob (rGeneratedWallet)")
	assert.Contains(t, stderr, "will not be shown again")
	assert.Equal(t, 1, env.backend.Count(http.MethodPost, "/tasks/clear-state/rGeneratedWallet"))

	raw, err := os.ReadFile(env.profilePath())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sEdGeneratedSeed")
}

func TestCreateExistingUsernameFails(t *testing.T) {
	newTestEnv(t)

	_, _, err := executeCLI(t, newScriptedPrompter("pw"), "auth", "create", "--username", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already exists")
}

func TestWalletGenerateJSON(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "wallet", "generate", "--json")
	require.NoError(t, err)

	var got keypairOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, keypairOutput{Address: "rGeneratedWallet", PrivateKey: "sEdGeneratedSeed"}, got)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "health", "--json")
	require.NoError(t, err)
	var got healthOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.True(t, got.Reachable)
	assert.True(t, got.Healthy)

	env.backend.SetHealthy(false)
	stdout, _, err = executeCLI(t, newScriptedPrompter(), "health")
	require.Error(t, err)
	assert.Contains(t, stdout, "unreachable")
}

func TestAPIURLFlagOverridesEnvironment(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("PFW_API_BASE_URL", "http://127.0.0.1:1/api")

	stdout, _, err := executeCLI(t, newScriptedPrompter(), "--api-url", env.backend.URL(), "health", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, env.backend.URL())
}

func TestConfigFileSetsAPIURL(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("PFW_API_BASE_URL", "")
	require.NoError(t, os.Unsetenv("PFW_API_BASE_URL"))

	configDir := filepath.Join(env.home, ".pfw")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	config := "[api]\nbase_url = \"" + env.backend.URL() + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))

	_, _, err := executeCLI(t, newScriptedPrompter(), "health", "--json")
	require.NoError(t, err)
	assert.Equal(t, 2, env.backend.Count(http.MethodGet, "/health"), "one probe plus one health call")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "silent", err: domain.ErrStaleAccountResponse, want: ""},
		{name: "cancelled", err: context.Canceled, want: ""},
		{name: "offline", err: domain.ErrNetworkUnreachable, want: "Error: server unavailable\n"},
		{name: "signed out", err: domain.ErrNotAuthenticated, want: "Error: not signed in (run `pfw auth signin`)\n"},
		{name: "other", err: errors.New("boom"), want: "Error: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			reportError(&out, tt.err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	assert.Equal(t, "evil[2J", sanitizeForTerminal("evil\x1b[2J"))
	assert.Equal(t, "plain", sanitizeForTerminal("plain"))
}
