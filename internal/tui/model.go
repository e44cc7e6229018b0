// Package tui provides the Bubble Tea live word count view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/verte-zerg/wcplus/internal/logging"
	"github.com/verte-zerg/wcplus/internal/model"
	"github.com/verte-zerg/wcplus/internal/source"
	"github.com/verte-zerg/wcplus/internal/stats"
)

// DefaultPollInterval is how often the document is checked for changes.
const DefaultPollInterval = 500 * time.Millisecond

const helpText = "j/k: move  v: select  esc: clear  s: panel  1-4: metrics  m: markdown  c: code  p: side  r: report  q: quit"

// SettingsSaver persists a single setting.
type SettingsSaver interface {
	SaveSetting(ctx context.Context, key, value string) error
}

// Config configures the live view.
type Config struct {
	Path         string
	Format       string
	Settings     model.Settings
	Saver        SettingsSaver
	PollInterval time.Duration
	// Limiter coalesces refreshes. Nil uses a limiter allowing two refreshes
	// per 100ms.
	Limiter *rate.Limiter
	Logger  *slog.Logger
	// OpenPanel forces the stats panel open regardless of
	// Settings.ShowSidebarOnStartup.
	OpenPanel bool
}

type tickMsg time.Time

// Model implements the Bubble Tea live view.
type Model struct {
	path     string
	format   string
	settings model.Settings
	saver    SettingsSaver
	poll     time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger

	lines   []string
	info    source.Info
	loadErr error

	cursor int
	anchor int

	panelOpen  bool
	showReport bool
	report     stats.Report
	dirty      bool

	status string
	errMsg string

	width      int
	height     int
	viewport   viewport.Model
	rowOffsets []int
}

// NewModel loads the document at cfg.Path and computes its first report.
func NewModel(cfg Config) (*Model, error) {
	if cfg.Path == "" || cfg.Path == "-" {
		return nil, errors.New("live view needs a file path")
	}
	m := &Model{
		path:      cfg.Path,
		format:    cfg.Format,
		settings:  cfg.Settings,
		saver:     cfg.Saver,
		poll:      cfg.PollInterval,
		limiter:   cfg.Limiter,
		logger:    cfg.Logger,
		anchor:    -1,
		panelOpen: cfg.OpenPanel || cfg.Settings.ShowSidebarOnStartup,
		viewport:  viewport.New(0, 0),
	}
	if m.poll <= 0 {
		m.poll = DefaultPollInterval
	}
	if m.limiter == nil {
		m.limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 2)
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	info, err := source.Stat(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	doc, err := source.Load(m.path, source.LoadOptions{Format: m.format})
	if err != nil {
		return nil, err
	}
	m.info = info
	m.setText(doc.Text)
	m.refresh()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tickMsg:
		m.checkDocument()
		if m.dirty && m.limiter.Allow() {
			m.refresh()
		}
		return m, m.tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showReport {
			m.showReport = false
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		m.moveCursor(maxInt(m.viewport.Height, 1))
	case "pgup", "ctrl+u":
		m.moveCursor(-maxInt(m.viewport.Height, 1))
	case "g", "home":
		m.moveCursor(-len(m.lines))
	case "G", "end":
		m.moveCursor(len(m.lines))
	case "v":
		if m.anchor >= 0 {
			m.anchor = -1
		} else {
			m.anchor = m.cursor
		}
		m.requestRefresh()
		m.renderContent()
	case "esc":
		if m.anchor >= 0 {
			m.anchor = -1
			m.requestRefresh()
			m.renderContent()
		}
	case "s":
		m.panelOpen = !m.panelOpen
		m.updateLayout()
	case "r":
		m.refresh()
		m.showReport = true
	case "1":
		m.toggle(model.KeyShowWords)
	case "2":
		m.toggle(model.KeyShowCharsWithSpaces)
	case "3":
		m.toggle(model.KeyShowCharsWithoutSpaces)
	case "4":
		m.toggle(model.KeyShowCharsWithoutPunctuation)
	case "m":
		m.toggle(model.KeyExcludeMarkdown)
	case "c":
		m.toggle(model.KeyExcludeCodeBlocks)
	case "p":
		if m.settings.SidebarPosition == model.SidebarLeft {
			m.settings.SidebarPosition = model.SidebarRight
		} else {
			m.settings.SidebarPosition = model.SidebarLeft
		}
		m.persist(model.KeySidebarPosition)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showReport {
		card := stats.RenderCard(m.report, m.width)
		hint := footerStyle.Render("press any key to close")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card+"\n\n"+hint)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return header + "\n" + body + "\n" + footer
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 1
	footerHeight = 1
	if m.status != "" || m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) panelWidth() int {
	if !m.panelOpen {
		return 0
	}
	return panelWidth(m.width)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	docWidth := m.width
	if pw := m.panelWidth(); pw > 0 {
		docWidth -= pw + panelGap
	}
	m.viewport.Width = docWidth
	m.viewport.Height = bodyHeight
	m.renderContent()
}

func (m *Model) renderContent() {
	if m.viewport.Width <= 0 {
		return
	}
	selStart, selEnd := m.selectedRange()
	content, offsets := renderDocument(m.lines, m.cursor, selStart, selEnd, m.viewport.Width)
	m.viewport.SetContent(content)
	m.rowOffsets = offsets
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor >= len(m.rowOffsets) {
		return
	}
	row := m.rowOffsets[m.cursor]
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func (m *Model) renderHeader() string {
	parts := []string{m.path, fmt.Sprintf("line %d/%d", m.cursor+1, len(m.lines))}
	if start, end := m.selectedRange(); start >= 0 {
		parts = append(parts, fmt.Sprintf("selected %d-%d", start+1, end+1))
	}
	return headerStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderBody(height int) string {
	doc := fitLines(m.viewport.View(), m.viewport.Width, height)
	pw := m.panelWidth()
	if pw == 0 {
		return doc
	}
	panel := fitLines(m.renderPanel(pw), pw, height)
	gap := fitLines("", panelGap, height)
	if m.settings.SidebarPosition == model.SidebarLeft {
		return lipgloss.JoinHorizontal(lipgloss.Top, panel, gap, doc)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, doc, gap, panel)
}

func (m *Model) renderPanel(width int) string {
	if m.loadErr != nil {
		return errorStyle.Render("Document unavailable") + "\n" + footerStyle.Width(width).Render(m.loadErr.Error())
	}
	return stats.RenderPanel(m.report, width)
}

func (m *Model) renderFooter() string {
	help := footerStyle.Render(helpText)
	switch {
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(m.errMsg)
	case m.status != "":
		return help + "\n" + footerStyle.Render(m.status)
	}
	return help
}

func (m *Model) setText(text string) {
	m.lines = strings.Split(text, "\n")
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.anchor >= len(m.lines) {
		m.anchor = len(m.lines) - 1
	}
	m.renderContent()
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.lines)-1 {
		next = len(m.lines) - 1
	}
	if next == m.cursor {
		return
	}
	m.cursor = next
	if m.anchor >= 0 {
		m.requestRefresh()
	}
	m.renderContent()
}

// selectedRange returns the inclusive line range of the selection, or -1, -1
// when nothing is selected.
func (m *Model) selectedRange() (int, int) {
	if m.anchor < 0 {
		return -1, -1
	}
	return minInt(m.anchor, m.cursor), maxInt(m.anchor, m.cursor)
}

func (m *Model) selectionText() string {
	start, end := m.selectedRange()
	if start < 0 {
		return ""
	}
	return strings.Join(m.lines[start:end+1], "\n")
}

func (m *Model) document() source.Document {
	return source.Document{
		Path:      m.path,
		Text:      strings.Join(m.lines, "\n"),
		Selection: m.selectionText(),
	}
}

// requestRefresh recomputes the report when the limiter allows it and
// otherwise leaves it for the next tick.
func (m *Model) requestRefresh() {
	if m.limiter.Allow() {
		m.refresh()
		return
	}
	m.dirty = true
}

func (m *Model) refresh() {
	m.report = stats.BuildReport(m.document(), m.settings)
	m.dirty = false
}

// checkDocument reloads the document when its size or modification time
// changed since the last load.
func (m *Model) checkDocument() {
	info, err := source.Stat(m.path)
	if err != nil {
		if m.loadErr == nil {
			m.logger.Warn("document unavailable", "path", m.path, "err", err)
		}
		m.loadErr = err
		return
	}
	if m.loadErr == nil && info.ModTime.Equal(m.info.ModTime) && info.Size == m.info.Size {
		return
	}
	doc, err := source.Load(m.path, source.LoadOptions{Format: m.format})
	if err != nil {
		m.loadErr = err
		m.logger.Warn("failed to reload document", "path", m.path, "err", err)
		return
	}
	m.logger.Debug("document changed", "path", m.path, "size", info.Size)
	m.info = info
	m.loadErr = nil
	m.setText(doc.Text)
	m.requestRefresh()
}

func (m *Model) toggle(key string) {
	if _, err := m.settings.Toggle(key); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.refresh()
	m.persist(key)
}

func (m *Model) persist(key string) {
	value, err := m.settings.Get(key)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("%s = %s", key, value)
	if m.saver != nil {
		if err := m.saver.SaveSetting(context.Background(), key, value); err != nil {
			m.errMsg = fmt.Sprintf("failed to save %s: %v", key, err)
			m.logger.Warn("failed to save setting", "key", key, "err", err)
		}
	}
	m.updateLayout()
}
