// Package apitest serves an in-memory wallet backend for tests.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

const Prefix = "/api"

type Call struct {
	Method string
	Path   string
	Body   map[string]any
}

type user struct {
	password string
	address  string
}

type failure struct {
	status int
	body   string
}

type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    []Call
	users    map[string]user
	tasks    map[string]string
	statuses map[string]string
	payments map[string]string
	messages map[string]string
	failures map[string][]failure
	blocks   map[string]chan struct{}
	entered  map[string]chan struct{}
	healthy  bool
}

// New starts a backend that is closed with the test.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		users:    make(map[string]user),
		tasks:    make(map[string]string),
		statuses: make(map[string]string),
		payments: make(map[string]string),
		messages: make(map[string]string),
		failures: make(map[string][]failure),
		blocks:   make(map[string]chan struct{}),
		entered:  make(map[string]chan struct{}),
		healthy:  true,
	}
	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)

	return b
}

// URL is the API base URL, including the /api prefix.
func (b *Backend) URL() string {
	return b.server.URL + Prefix
}

func (b *Backend) Close() {
	b.server.Close()
}

func (b *Backend) AddUser(username, password, address string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.users[username] = user{password: password, address: address}
}

// SetTasks sets the raw JSON body served by GET /tasks/{address}.
func (b *Backend) SetTasks(address, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks[address] = body
}

func (b *Backend) SetStatus(address, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.statuses[address] = body
}

func (b *Backend) SetPayments(address, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.payments[address] = body
}

func (b *Backend) SetMessages(address, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages[address] = body
}

func (b *Backend) SetHealthy(healthy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.healthy = healthy
}

// FailNext makes the next request to path answer status with body.
func (b *Backend) FailNext(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures[path] = append(b.failures[path], failure{status: status, body: body})
}

// Block holds requests to path until the returned release is called.
// entered is closed once the first blocked request arrived.
func (b *Backend) Block(path string) (entered <-chan struct{}, release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gate := make(chan struct{})
	arrived := make(chan struct{})
	b.blocks[path] = gate
	b.entered[path] = arrived

	var once sync.Once
	return arrived, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.blocks, path)
			b.mu.Unlock()
			close(gate)
		})
	}
}

// Count returns how many requests hit method and path.
func (b *Backend) Count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for _, call := range b.calls {
		if call.Method == method && call.Path == path {
			count++
		}
	}

	return count
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Call(nil), b.calls...)
}

// LastCall returns the most recent request to method and path.
func (b *Backend) LastCall(method, path string) (Call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].Method == method && b.calls[i].Path == path {
			return b.calls[i], true
		}
	}

	return Call{}, false
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route(Prefix, func(r chi.Router) {
		r.Get("/health", b.health)
		r.Post("/auth/signin", b.signIn)
		r.Post("/auth/create", b.createAccount)
		r.Post("/wallet/generate", b.generateWallet)
		r.Get("/account/{address}/summary", b.summary)
		r.Get("/account/{address}/status", b.status)
		r.Get("/tasks/{address}", b.listTasks)
		r.Post("/tasks/{verb}/{address}", b.taskControl)
		r.Post("/transaction/send", b.signed("account"))
		r.Post("/transaction/payment", b.signed("from_account"))
		r.Get("/payments/{address}", b.listPayments)
		r.Post("/odv/send_message", b.signed("account"))
		r.Post("/odv/send_log", b.signed("account"))
		r.Post("/odv/messages/{address}", b.nodeMessages)
	})

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, Prefix)

		var body map[string]any
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &body)
			}
			r.Body = io.NopCloser(strings.NewReader(string(raw)))
		}

		b.mu.Lock()
		b.calls = append(b.calls, Call{Method: r.Method, Path: path, Body: body})
		gate := b.blocks[path]
		arrived := b.entered[path]
		delete(b.entered, path)
		var fail *failure
		if queued := b.failures[path]; len(queued) > 0 {
			fail = &queued[0]
			b.failures[path] = queued[1:]
		}
		b.mu.Unlock()

		if arrived != nil {
			close(arrived)
		}
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if fail != nil {
			writeRaw(w, fail.status, fail.body)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	healthy := b.healthy
	b.mu.Unlock()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (b *Backend) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	u, ok := b.users[req.Username]
	b.mu.Unlock()

	if !ok || u.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "address": u.address, "username": req.Username})
}

func (b *Backend) createAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		PrivateKey string `json:"private_key"`
		Address    string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	address := req.Address
	if address == "" {
		address = "rCreated" + req.Username
	}
	b.users[req.Username] = user{password: req.Password, address: address}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "address": address})
}

func (b *Backend) generateWallet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"address": "rGeneratedWallet", "private_key": "sEdGeneratedSeed"})
}

func (b *Backend) summary(w http.ResponseWriter, r *http.Request) {
	if !b.knownAddress(chi.URLParam(r, "address")) {
		writeDetail(w, http.StatusNotFound, "Account not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"xrp_balance": "12.5", "pft_balance": 3000})
}

func (b *Backend) status(w http.ResponseWriter, r *http.Request) {
	b.serveStored(w, b.statuses, chi.URLParam(r, "address"),
		`{"init_rite_status":"COMPLETE","is_blacklisted":false,"context_doc_link":"https://docs.example/ctx","sweep_address":null,"initiation_rite":"I commit"}`)
}

func (b *Backend) listTasks(w http.ResponseWriter, r *http.Request) {
	b.serveStored(w, b.tasks, chi.URLParam(r, "address"),
		`{"requested":[],"proposed":[],"accepted":[],"challenged":[],"refused":[],"rewarded":[]}`)
}

func (b *Backend) listPayments(w http.ResponseWriter, r *http.Request) {
	b.serveStored(w, b.payments, chi.URLParam(r, "address"), `{"payments":[]}`)
}

func (b *Backend) taskControl(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "verb") {
	case "initialize", "start-refresh", "stop-refresh", "clear-state":
		writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (b *Backend) nodeMessages(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !b.passwordMatches(address, req.Password) {
		writeDetail(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	b.serveStored(w, b.messages, address, `{"messages":[]}`)
}

// signed verifies the password of the account named by accountField.
func (b *Backend) signed(accountField string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid body")
			return
		}

		account, _ := req[accountField].(string)
		password, _ := req["password"].(string)
		if !b.passwordMatches(account, password) {
			writeDetail(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "response": map[string]any{"hash": "ABC123"}})
	}
}

func (b *Backend) passwordMatches(address, password string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.address == address {
			return u.password == password
		}
	}

	return false
}

func (b *Backend) knownAddress(address string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.address == address {
			return true
		}
	}

	return false
}

func (b *Backend) serveStored(w http.ResponseWriter, store map[string]string, address, fallback string) {
	b.mu.Lock()
	body, ok := store[address]
	b.mu.Unlock()

	if !ok {
		body = fallback
	}
	writeRaw(w, http.StatusOK, body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, string(encoded))
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
