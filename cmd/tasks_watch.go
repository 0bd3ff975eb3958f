package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/bnema/pft-wallet-cli/internal/adapters/watcher"
	"github.com/bnema/pft-wallet-cli/internal/application"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	watchHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	watchErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	watchHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type taskUpdateMsg application.TaskUpdate

type connectivityMsg bool

type profileChangedMsg struct{}

type followResultMsg struct {
	session domain.Session
	changed bool
	err     error
}

type refreshDoneMsg struct{}

// watchSources are the event streams the live view listens on. Each channel
// holds at most one pending value; newer values replace unread ones.
type watchSources struct {
	updates      chan application.TaskUpdate
	connectivity chan bool
	profile      chan struct{}
}

func newWatchSources() watchSources {
	return watchSources{
		updates:      make(chan application.TaskUpdate, 1),
		connectivity: make(chan bool, 1),
		profile:      make(chan struct{}, 1),
	}
}

func offerLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func waitFor[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		value, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(value)
	}
}

type watchModel struct {
	ctx     context.Context
	app     *app
	sources watchSources

	session     domain.Session
	snapshot    domain.TaskSnapshot
	notices     []domain.ReconcileNotice
	err         error
	offline     bool
	showRefused bool
	signedOut   bool
	lastUpdate  time.Time
}

func newWatchModel(ctx context.Context, app *app, session domain.Session, sources watchSources, showRefused bool) watchModel {
	return watchModel{
		ctx:         ctx,
		app:         app,
		sources:     sources,
		session:     session,
		snapshot:    app.tasks.Snapshot(),
		showRefused: showRefused,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.waitUpdate(), m.waitConnectivity(), m.waitProfile())
}

func (m watchModel) waitUpdate() tea.Cmd {
	return waitFor(m.sources.updates, func(u application.TaskUpdate) tea.Msg { return taskUpdateMsg(u) })
}

func (m watchModel) waitConnectivity() tea.Cmd {
	return waitFor(m.sources.connectivity, func(connected bool) tea.Msg { return connectivityMsg(connected) })
}

func (m watchModel) waitProfile() tea.Cmd {
	return waitFor(m.sources.profile, func(struct{}) tea.Msg { return profileChangedMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			ctx, tasks := m.ctx, m.app.tasks
			return m, func() tea.Msg {
				tasks.RefreshNow(ctx)
				return refreshDoneMsg{}
			}
		case "f":
			m.showRefused = !m.showRefused
		}
		return m, nil
	case taskUpdateMsg:
		if msg.Address == m.session.Address {
			m.snapshot = msg.Snapshot
			m.notices = msg.Notices
			m.err = msg.Err
			m.lastUpdate = m.app.now()
		}
		return m, m.waitUpdate()
	case connectivityMsg:
		m.offline = !bool(msg)
		return m, m.waitConnectivity()
	case profileChangedMsg:
		ctx, sessions := m.ctx, m.app.sessions
		return m, tea.Batch(m.waitProfile(), func() tea.Msg {
			changed, err := sessions.FollowProfile(ctx)
			return followResultMsg{session: sessions.Current(), changed: changed, err: err}
		})
	case followResultMsg:
		return m.follow(msg)
	default:
		return m, nil
	}
}

// follow reacts to another pfw process signing out or switching accounts.
func (m watchModel) follow(msg followResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	if !msg.session.Authenticated {
		m.signedOut = true
		return m, tea.Quit
	}
	if !msg.changed {
		return m, nil
	}

	m.session = msg.session
	m.snapshot = domain.TaskSnapshot{}
	m.notices = nil
	m.err = nil

	ctx, tasks, address := m.ctx, m.app.tasks, msg.session.Address
	return m, func() tea.Msg {
		if err := tasks.Start(ctx, address); err != nil {
			return followResultMsg{session: msg.session, err: fmt.Errorf("restart task refresh: %w", err)}
		}
		return nil
	}
}

func (m watchModel) View() string {
	if m.signedOut {
		return "signed out elsewhere\n"
	}

	var b strings.Builder
	b.WriteString(watchHeaderStyle.Render(fmt.Sprintf("%s (%s)", sanitizeForTerminal(m.session.Username), m.session.Address)))
	b.WriteString("\n")
	b.WriteString(wallet.TasksView(m.snapshot, wallet.Options{
		Now:         m.app.now(),
		ShowRefused: m.showRefused,
		Notices:     m.notices,
		Offline:     m.offline,
	}))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(watchErrorStyle.Render("refresh failed: " + sanitizeForTerminal(m.err.Error())))
		b.WriteString("\n")
	}
	help := "q quit | r refresh | f toggle refused"
	if !m.lastUpdate.IsZero() {
		help += " | updated " + m.lastUpdate.Format(time.Kitchen)
	}
	b.WriteString(watchHelpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func newTasksWatchCmd(app *app) *cobra.Command {
	var showRefused bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the task list live",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasksWatch(cmd, app, showRefused)
		},
	}

	cmd.Flags().BoolVar(&showRefused, "show-refused", false, "Include refused tasks")

	return cmd
}

func runTasksWatch(cmd *cobra.Command, app *app, showRefused bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := app.sessions.RequireSession(ctx)
	if err != nil {
		return err
	}

	sources := newWatchSources()
	defer app.tasks.Subscribe(func(update application.TaskUpdate) { offerLatest(sources.updates, update) })()
	defer app.monitor.Subscribe(func(connected bool) { offerLatest(sources.connectivity, connected) })()

	profileWatcher, err := watcher.New(app.profiles.Path(), func() { offerLatest(sources.profile, struct{}{}) })
	if err != nil {
		return fmt.Errorf("watch profile: %w", err)
	}
	if err := profileWatcher.Start(); err != nil {
		return fmt.Errorf("watch profile: %w", err)
	}
	defer func() { _ = profileWatcher.Stop() }()

	app.monitor.StartMonitoring(true)
	if err := app.tasks.Start(ctx, session.Address); err != nil {
		return err
	}

	program := tea.NewProgram(
		newWatchModel(ctx, app, session, sources, showRefused),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run task view: %w", err)
	}
	if result, ok := final.(watchModel); ok && result.signedOut {
		_, err = fmt.Fprintln(cmd.ErrOrStderr(), "signed out by another pfw process")
		return err
	}

	return nil
}
