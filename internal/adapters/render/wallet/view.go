// Package wallet renders wallet state for the terminal.
package wallet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultMessageWidth = 72

type Options struct {
	Now         time.Time
	ShowRefused bool
	// MessageWidth truncates message text; zero uses the default.
	MessageWidth int
	Notices      []domain.ReconcileNotice
	Offline      bool
}

func RenderTasks(snapshot domain.TaskSnapshot, opts Options) (string, error) {
	return render(func(s styles) string { return tasksView(snapshot, opts, s) })
}

// TasksView renders the task list without running a program, for embedding
// in a live view.
func TasksView(snapshot domain.TaskSnapshot, opts Options) string {
	return tasksView(snapshot, opts, newStyles())
}

func RenderRewards(snapshot domain.TaskSnapshot, opts Options) (string, error) {
	return render(func(s styles) string { return rewardsView(snapshot.Rewarded(), opts, s) })
}

func RenderTask(task domain.Task, opts Options) (string, error) {
	return render(func(s styles) string { return taskDetailView(task, opts, s) })
}

func RenderSummary(summary domain.AccountSummary, status domain.AccountStatus) (string, error) {
	return render(func(s styles) string { return summaryView(summary, status, s) })
}

func RenderPayments(owner domain.Address, payments []domain.Payment, opts Options) (string, error) {
	return render(func(s styles) string { return paymentsView(owner, payments, opts, s) })
}

func RenderNodeMessages(messages []domain.NodeMessage, opts Options) (string, error) {
	return render(func(s styles) string { return nodeMessagesView(messages, opts, s) })
}

func tasksView(snapshot domain.TaskSnapshot, opts Options, s styles) string {
	tasks := snapshot.Visible(opts.ShowRefused)
	lines := []string{
		s.title.Render("Tasks"),
		s.header.Render(fmt.Sprintf("tasks: %d", len(tasks))),
	}
	if opts.Offline {
		lines = append(lines, s.warning.Render("server unavailable"))
	}
	for _, notice := range opts.Notices {
		lines = append(lines, s.warning.Render(fmt.Sprintf("%s: %s", notice.TaskID, notice.Message)))
	}

	if len(tasks) == 0 {
		lines = append(lines, s.empty.Render("No tasks available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, task := range tasks {
		lines = append(lines, s.section.Render(taskBlock(task, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func taskBlock(task domain.Task, opts Options, s styles) string {
	idStyle := s.taskID.Foreground(ageColor(task.ID, opts.Now))
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		idStyle.Render(string(task.ID)),
		" ",
		s.statusBadge(task.Status),
		" ",
		s.reward.Render(formatPFT(task.Reward())),
	)
	if task.HasPending() {
		header += " " + s.pending.Render("(pending)")
	}

	parts := []string{header, s.detail.Render(truncate(task.MainMessage(), messageWidth(opts)))}
	if task.Status == domain.TaskChallenged {
		if prompt := task.VerificationPrompt(); prompt != "" {
			parts = append(parts, s.key.Render("verify: ")+s.detail.Render(truncate(prompt, messageWidth(opts))))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func taskDetailView(task domain.Task, opts Options, s styles) string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.taskID.Render(string(task.ID)), " ", s.statusBadge(task.Status)),
		s.key.Render("reward: ") + s.reward.Render(formatPFT(task.Reward())),
	}
	if ts, err := task.ID.Timestamp(); err == nil {
		lines = append(lines, s.key.Render("requested: ")+s.meta.Render(ts.Format("2006-01-02 15:04")))
	}
	if actions := task.Status.PermittedActions(); len(actions) > 0 {
		names := make([]string, 0, len(actions))
		for _, action := range actions {
			names = append(names, string(action))
		}
		lines = append(lines, s.key.Render("actions: ")+s.meta.Render(strings.Join(names, ", ")))
	}

	if len(task.MessageHistory) == 0 {
		lines = append(lines, s.empty.Render("No messages."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(s.title.Render("Messages")))
	for _, msg := range task.MessageHistory {
		arrow, style := "<-", s.inbound
		if msg.Direction == domain.DirectionOutbound {
			arrow, style = "->", s.outbound
		}
		line := style.Render(arrow + " " + msg.Data)
		if msg.Pending {
			line += " " + s.pending.Render("(pending)")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func rewardsView(tasks []domain.Task, opts Options, s styles) string {
	total := 0.0
	for _, task := range tasks {
		total += task.Reward()
	}

	lines := []string{
		s.title.Render("Rewards"),
		s.header.Render(fmt.Sprintf("rewarded: %d  total: %s", len(tasks), formatPFT(total))),
	}
	if len(tasks) == 0 {
		lines = append(lines, s.empty.Render("No rewarded tasks yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, task := range tasks {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.taskID.Render(string(task.ID))+" "+s.reward.Render(formatPFT(task.Reward())),
			s.detail.Render(truncate(task.MainMessage(), messageWidth(opts))),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryView(summary domain.AccountSummary, status domain.AccountStatus, s styles) string {
	lines := []string{
		s.title.Render("Account"),
		s.key.Render("address: ") + s.taskID.Render(string(summary.Address)),
		s.key.Render("XRP:     ") + s.detail.Render(strconv.FormatFloat(summary.XRPBalance, 'f', -1, 64)),
		s.key.Render("PFT:     ") + s.reward.Render(strconv.FormatFloat(summary.PFTBalance, 'f', -1, 64)),
	}

	if status.InitRiteStatus != "" {
		lines = append(lines, s.key.Render("rite:    ")+s.meta.Render(string(status.InitRiteStatus)))
	}
	if status.IsBlacklisted {
		lines = append(lines, s.warning.Render("account is blacklisted"))
	}
	if status.NeedsOnboarding() {
		lines = append(lines, s.warning.Render("initiation rite not complete: run `pfw account rite`"))
	}
	if status.ContextDocLink != "" {
		lines = append(lines, s.key.Render("context: ")+s.meta.Render(status.ContextDocLink))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func paymentsView(owner domain.Address, payments []domain.Payment, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Payments"),
		s.header.Render(fmt.Sprintf("payments: %d", len(payments))),
	}
	if len(payments) == 0 {
		lines = append(lines, s.empty.Render("No payments."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, payment := range payments {
		amounts := make([]string, 0, 2)
		if payment.AmountPFT != 0 {
			amounts = append(amounts, formatPFT(payment.AmountPFT))
		}
		if payment.AmountXRP != 0 {
			amounts = append(amounts, strconv.FormatFloat(payment.AmountXRP, 'f', -1, 64)+" XRP")
		}

		when := "unknown"
		if !payment.Timestamp.IsZero() {
			when = payment.Timestamp.Format("2006-01-02 15:04")
		}

		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.meta.Render(when),
			" ",
			s.key.Render(fmt.Sprintf("%-4s", payment.Direction(owner))),
			" ",
			s.detail.Render(string(payment.Counterparty(owner))),
			" ",
			s.reward.Render(strings.Join(amounts, " + ")),
		)
		if payment.Memo != "" {
			line += " " + s.meta.Render(truncate(payment.Memo, messageWidth(opts)))
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func nodeMessagesView(messages []domain.NodeMessage, opts Options, s styles) string {
	lines := []string{s.title.Render("Node messages")}
	if len(messages) == 0 {
		lines = append(lines, s.empty.Render("No messages."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, msg := range messages {
		who, style := "node", s.inbound
		if msg.FromUser {
			who, style = "you", s.outbound
		}
		stamp := ""
		if !msg.Timestamp.IsZero() {
			stamp = msg.Timestamp.Format("2006-01-02 15:04") + " "
		}
		lines = append(lines, s.meta.Render(stamp)+s.key.Render(who+": ")+style.Render(truncate(msg.Text, messageWidth(opts))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatPFT(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + " PFT"
}

func messageWidth(opts Options) int {
	if opts.MessageWidth > 0 {
		return opts.MessageWidth
	}

	return defaultMessageWidth
}

func truncate(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}

	return string(runes[:width-3]) + "..."
}

// ageColor fades task ids from bright to grey over a week.
func ageColor(id domain.TaskID, now time.Time) lipgloss.Color {
	ts, err := id.Timestamp()
	if err != nil || now.IsZero() {
		return lipgloss.Color("39")
	}

	const window = 7 * 24 * time.Hour
	age := now.Sub(ts)
	return interpolateColor(window.Seconds()-age.Seconds(), 0, window.Seconds())
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	normalized = math.Max(0, math.Min(1, normalized))

	// ANSI 256 greyscale ramp, 240 faded to 255 bright.
	colorCode := int(240.0 + 15.0*normalized)

	return lipgloss.Color(strconv.Itoa(colorCode))
}
