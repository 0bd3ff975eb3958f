package cmd

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeRendered(cmd *cobra.Command, rendered string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}

type summaryOutput struct {
	Address    string  `json:"address"`
	XRPBalance float64 `json:"xrp_balance"`
	PFTBalance float64 `json:"pft_balance"`
}

type statusOutput struct {
	InitRiteStatus  string `json:"init_rite_status"`
	NeedsOnboarding bool   `json:"needs_onboarding"`
	IsBlacklisted   bool   `json:"is_blacklisted"`
	ContextDocLink  string `json:"context_doc_link,omitempty"`
	SweepAddress    string `json:"sweep_address,omitempty"`
	InitiationRite  string `json:"initiation_rite,omitempty"`
}

type messageOutput struct {
	Direction string `json:"direction"`
	Data      string `json:"data"`
	Pending   bool   `json:"pending,omitempty"`
}

type taskOutput struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	RewardOffered  float64         `json:"pft_offered"`
	RewardPaid     *float64        `json:"pft_rewarded,omitempty"`
	Actions        []string        `json:"actions"`
	MessageHistory []messageOutput `json:"message_history,omitempty"`
}

type paymentOutput struct {
	LedgerIndex  int64     `json:"ledger_index"`
	Timestamp    time.Time `json:"timestamp"`
	Hash         string    `json:"hash"`
	Direction    string    `json:"direction"`
	Counterparty string    `json:"counterparty"`
	AmountXRP    float64   `json:"amount_xrp"`
	AmountPFT    float64   `json:"amount_pft"`
	Memo         string    `json:"memo,omitempty"`
}

type nodeMessageOutput struct {
	ID        string    `json:"message_id"`
	FromUser  bool      `json:"from_user"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	AmountPFT float64   `json:"amount_pft"`
}

func toSummaryOutput(summary domain.AccountSummary) summaryOutput {
	return summaryOutput{
		Address:    summary.Address.String(),
		XRPBalance: summary.XRPBalance,
		PFTBalance: summary.PFTBalance,
	}
}

func toStatusOutput(status domain.AccountStatus) statusOutput {
	return statusOutput{
		InitRiteStatus:  string(status.InitRiteStatus),
		NeedsOnboarding: status.NeedsOnboarding(),
		IsBlacklisted:   status.IsBlacklisted,
		ContextDocLink:  status.ContextDocLink,
		SweepAddress:    status.SweepAddress,
		InitiationRite:  status.InitiationRite,
	}
}

func toTaskOutput(task domain.Task, withHistory bool) taskOutput {
	actions := make([]string, 0, 2)
	for _, action := range task.Status.PermittedActions() {
		actions = append(actions, string(action))
	}

	out := taskOutput{
		ID:            task.ID.String(),
		Status:        string(task.Status),
		Message:       task.MainMessage(),
		RewardOffered: task.RewardOffered,
		RewardPaid:    task.RewardPaid,
		Actions:       actions,
	}
	if withHistory {
		for _, msg := range task.MessageHistory {
			out.MessageHistory = append(out.MessageHistory, messageOutput{
				Direction: string(msg.Direction),
				Data:      msg.Data,
				Pending:   msg.Pending,
			})
		}
	}

	return out
}

func toTaskOutputs(tasks []domain.Task) []taskOutput {
	out := make([]taskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskOutput(task, false))
	}

	return out
}

func toPaymentOutputs(owner domain.Address, payments []domain.Payment) []paymentOutput {
	out := make([]paymentOutput, 0, len(payments))
	for _, payment := range payments {
		out = append(out, paymentOutput{
			LedgerIndex:  payment.LedgerIndex,
			Timestamp:    payment.Timestamp,
			Hash:         payment.Hash,
			Direction:    payment.Direction(owner),
			Counterparty: payment.Counterparty(owner).String(),
			AmountXRP:    payment.AmountXRP,
			AmountPFT:    payment.AmountPFT,
			Memo:         payment.Memo,
		})
	}

	return out
}

func toNodeMessageOutputs(messages []domain.NodeMessage) []nodeMessageOutput {
	out := make([]nodeMessageOutput, 0, len(messages))
	for _, msg := range messages {
		out = append(out, nodeMessageOutput{
			ID:        msg.ID,
			FromUser:  msg.FromUser,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			AmountPFT: msg.AmountPFT,
		})
	}

	return out
}
