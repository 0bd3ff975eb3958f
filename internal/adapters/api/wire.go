package api

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	json "github.com/goccy/go-json"
)

// flexFloat accepts numbers, numeric strings and null; the backend emits
// all three for amounts.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = flexFloat{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("decode amount %s: %w", raw, err)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*f = flexFloat{}
			return nil
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("decode amount %s: %w", raw, err)
	}
	*f = flexFloat{Value: value, Valid: true}

	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.Valid {
		return nil
	}
	value := f.Value
	return &value
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Status   string `json:"status"`
	Address  string `json:"address"`
	Username string `json:"username"`
}

type createAccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	PrivateKey string `json:"private_key,omitempty"`
	Address    string `json:"address,omitempty"`
}

type createAccountResponse struct {
	Status  string `json:"status"`
	Address string `json:"address"`
}

type keypairResponse struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type summaryResponse struct {
	XRPBalance flexFloat `json:"xrp_balance"`
	PFTBalance flexFloat `json:"pft_balance"`
}

type statusResponse struct {
	InitRiteStatus    string `json:"init_rite_status"`
	IsBlacklisted     bool   `json:"is_blacklisted"`
	ContextDocLink    string `json:"context_doc_link"`
	SweepAddress      string `json:"sweep_address"`
	InitiationRite    string `json:"initiation_rite"`
	InitRiteStatement string `json:"init_rite_statement"`
}

type wireMessage struct {
	Direction string `json:"direction"`
	Data      string `json:"data"`
}

type wireTask struct {
	ID             string        `json:"id"`
	Status         string        `json:"status"`
	PFTOffered     flexFloat     `json:"pft_offered"`
	PFTRewarded    flexFloat     `json:"pft_rewarded"`
	MessageHistory []wireMessage `json:"message_history"`
}

type transactionRequest struct {
	Account  string            `json:"account"`
	TxType   string            `json:"tx_type"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data"`
}

type paymentRequest struct {
	FromAccount string  `json:"from_account"`
	ToAddress   string  `json:"to_address"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Password    string  `json:"password"`
	MemoID      *string `json:"memo_id,omitempty"`
	Memo        *string `json:"memo,omitempty"`
}

type wirePayment struct {
	LedgerIndex int64     `json:"ledger_index"`
	Timestamp   string    `json:"timestamp"`
	Hash        string    `json:"hash"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	AmountXRP   flexFloat `json:"amount_xrp"`
	AmountPFT   flexFloat `json:"amount_pft"`
	MemoData    string    `json:"memo_data"`
}

type paymentsResponse struct {
	Payments []wirePayment `json:"payments"`
}

type nodeMessageRequest struct {
	Account    string  `json:"account"`
	Password   string  `json:"password"`
	Message    string  `json:"message,omitempty"`
	LogContent string  `json:"log_content,omitempty"`
	AmountPFT  float64 `json:"amount_pft"`
}

type nodeMessagesRequest struct {
	Password string `json:"password"`
}

type wireNodeMessage struct {
	MessageID string    `json:"message_id"`
	Direction string    `json:"direction"`
	Message   string    `json:"message"`
	Timestamp flexFloat `json:"timestamp"`
	AmountPFT flexFloat `json:"amount_pft"`
}

type nodeMessagesResponse struct {
	Messages []wireNodeMessage `json:"messages"`
}

func (r statusResponse) toDomain() domain.AccountStatus {
	rite := r.InitiationRite
	if rite == "" {
		rite = r.InitRiteStatement
	}

	status := domain.InitRiteStatus(strings.ToUpper(strings.TrimSpace(r.InitRiteStatus)))
	if status == "" {
		status = domain.InitRiteUnstarted
	}

	return domain.AccountStatus{
		InitRiteStatus: status,
		IsBlacklisted:  r.IsBlacklisted,
		ContextDocLink: r.ContextDocLink,
		SweepAddress:   r.SweepAddress,
		InitiationRite: rite,
	}
}

func (t wireTask) toDomain() domain.Task {
	history := make([]domain.Message, 0, len(t.MessageHistory))
	for _, msg := range t.MessageHistory {
		history = append(history, domain.Message{
			Direction: domain.Direction(strings.ToLower(msg.Direction)),
			Data:      msg.Data,
		})
	}

	return domain.Task{
		ID:             domain.TaskID(t.ID),
		MessageHistory: history,
		RewardOffered:  t.PFTOffered.Value,
		RewardPaid:     t.PFTRewarded.ptr(),
	}
}

func decodeTaskGroups(payload []byte) (map[string][]domain.Task, error) {
	var groups map[string][]wireTask
	if err := json.Unmarshal(payload, &groups); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.Task, len(groups))
	for status, tasks := range groups {
		converted := make([]domain.Task, 0, len(tasks))
		for _, task := range tasks {
			converted = append(converted, task.toDomain())
		}
		out[status] = converted
	}

	return out, nil
}

func (p wirePayment) toDomain() domain.Payment {
	var ts time.Time
	if p.Timestamp != "" {
		if parsed, err := parseTimestamp(p.Timestamp); err == nil {
			ts = parsed
		}
	}

	return domain.Payment{
		LedgerIndex: p.LedgerIndex,
		Timestamp:   ts,
		Hash:        p.Hash,
		From:        domain.Address(p.FromAddress),
		To:          domain.Address(p.ToAddress),
		AmountXRP:   p.AmountXRP.Value,
		AmountPFT:   p.AmountPFT.Value,
		Memo:        p.MemoData,
	}
}

func (m wireNodeMessage) toDomain() domain.NodeMessage {
	var ts time.Time
	if m.Timestamp.Valid && m.Timestamp.Value > 0 {
		sec := int64(m.Timestamp.Value)
		nsec := int64((m.Timestamp.Value - float64(sec)) * float64(time.Second))
		ts = time.Unix(sec, nsec).UTC()
	}

	return domain.NodeMessage{
		ID:        m.MessageID,
		FromUser:  strings.EqualFold(m.Direction, "USER_TO_NODE"),
		Text:      m.Message,
		Timestamp: ts,
		AmountPFT: m.AmountPFT.Value,
	}
}

// parseTimestamp accepts the ISO forms the backend emits, with or without
// a zone offset.
func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("parse timestamp %q", raw)
}
