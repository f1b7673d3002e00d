// Package ui is the terminal front end: a form that collects a vehicle and
// its ratings, and a result screen with editable prices.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/domain/override"
	"github.com/okian/appraisal/internal/domain/session"
	"github.com/okian/appraisal/internal/money"
	"github.com/okian/appraisal/pkg/logger"
)

// Result screen inputs.
const (
	buyInput = iota
	sellInput
	repairInput
	resultInputs
)

// Model is the bubbletea model driving one session.
type Model struct {
	formulas []appraisal.Formula
	preset   int
	session  *session.Session
	money    *money.Formatter
	keys     KeyMap
	styles   Styles
	help     help.Model
	log      logger.Logger

	fields []field
	focus  int

	prices     [resultInputs]textinput.Model
	priceFocus int
	message    string
	width      int
	height     int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for session events.
func WithLogger(l logger.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// NewModel starts on the first formula. formulas must not be empty.
func NewModel(formulas []appraisal.Formula, f *money.Formatter, opts ...Option) *Model {
	if len(formulas) == 0 {
		panic("ui: no formulas")
	}
	m := &Model{
		formulas: formulas,
		session:  session.New(formulas[0]),
		money:    f,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resetForm()
	return m
}

// Session exposes the underlying session.
func (m *Model) Session() *session.Session { return m.session }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
			m.resetForm()
			m.logDebug("session reset")
			return m, nil
		}
		if m.session.State() == session.ShowingResult {
			return m, m.updateResult(msg)
		}
		return m, m.updateForm(msg)
	}

	if m.session.State() == session.ShowingResult {
		var cmd tea.Cmd
		m.prices[m.priceFocus], cmd = m.prices[m.priceFocus].Update(msg)
		return m, cmd
	}
	if f := m.focused(); f != nil && f.kind == kindText {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) focused() *field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Preset):
		m.preset = (m.preset + 1) % len(m.formulas)
		m.session.SwitchFormula(m.formulas[m.preset])
		m.resetForm()
		return nil
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return nil
	}

	f := m.focused()
	if f == nil {
		return nil
	}
	switch f.kind {
	case kindOption, kindRating:
		switch {
		case key.Matches(msg, m.keys.Left):
			f.step(-1)
		case key.Matches(msg, m.keys.Right):
			f.step(1)
		case f.kind == kindRating && msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			if v, err := strconv.Atoi(string(msg.Runes)); err == nil && v >= appraisal.MinRating && v <= appraisal.MaxRating {
				f.rating = v
			}
		default:
			return nil
		}
		m.store(f)
		return nil
	default:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		m.store(f)
		return cmd
	}
}

// store copies a row's value into the session.
func (m *Model) store(f *field) {
	var err error
	if f.kind == kindRating {
		err = m.session.SetRating(f.name, f.rating)
	} else {
		err = m.session.SetField(f.name, f.value())
	}
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *Model) setFocus(i int) tea.Cmd {
	if n := len(m.fields); n > 0 {
		i = (i + n) % n
	}
	if f := m.focused(); f != nil && f.kind == kindText {
		f.input.Blur()
	}
	m.focus = i
	if f := m.focused(); f != nil && f.kind == kindText {
		return f.input.Focus()
	}
	return nil
}

func (m *Model) submit() {
	if missing := m.session.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, name := range missing {
			names[i] = labels[name]
		}
		m.message = "missing: " + strings.Join(names, ", ")
		return
	}
	res, err := m.session.Submit()
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""

	o := m.session.Overrides()
	for i, v := range []int64{o.BuyPrice, o.SellPrice, o.RepairCost} {
		m.prices[i] = newTextInput("0")
		m.prices[i].SetValue(strconv.FormatInt(v, 10))
	}
	m.priceFocus = buyInput
	m.prices[buyInput].Focus()

	m.logDebug("appraisal submitted",
		logger.String("preset", string(res.Preset)),
		logger.Int64("marketPrice", res.MarketPrice),
		logger.Int64("profit", res.PotentialProfit))
}

func (m *Model) updateResult(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.setPriceFocus(m.priceFocus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.setPriceFocus(m.priceFocus - 1)
	}

	var cmd tea.Cmd
	m.prices[m.priceFocus], cmd = m.prices[m.priceFocus].Update(msg)
	text := m.prices[m.priceFocus].Value()

	var err error
	switch m.priceFocus {
	case buyInput:
		err = m.session.EditBuyPrice(text)
	case sellInput:
		err = m.session.EditSellPrice(text)
	case repairInput:
		err = m.session.EditRepairCost(text)
	}
	if err != nil {
		m.message = err.Error()
	}
	return cmd
}

func (m *Model) setPriceFocus(i int) tea.Cmd {
	m.prices[m.priceFocus].Blur()
	m.priceFocus = (i + resultInputs) % resultInputs
	return m.prices[m.priceFocus].Focus()
}

// resetForm rebuilds the form for the session's formula.
func (m *Model) resetForm() {
	m.fields = buildFields(m.session.Formula())
	m.focus = 0
	m.message = ""
	m.prices = [resultInputs]textinput.Model{}
	m.priceFocus = buyInput
	if f := m.focused(); f != nil && f.kind == kindText {
		f.input.Focus()
	}
}

func (m *Model) logDebug(msg string, fields ...logger.Field) {
	if m.log != nil {
		m.log.Debug(context.Background(), msg, fields...)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.session.State() == session.ShowingResult {
		return m.resultView()
	}
	return m.formView()
}

func (m *Model) formView() string {
	var b strings.Builder
	preset := m.session.Formula().Preset()
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Vehicle appraisal · %s preset", preset)))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.Focused
		}
		b.WriteString(label.Render(labels[f.name]))
		b.WriteString(m.fieldView(f, i == m.focus))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(m.styles.Error.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.FormHelp())))
	return b.String()
}

func (m *Model) fieldView(f field, focused bool) string {
	switch f.kind {
	case kindOption:
		v := f.value()
		if v == "" {
			return m.styles.Muted.Render("< choose >")
		}
		return m.styles.Value.Render("< " + v + " >")
	case kindRating:
		if f.rating == 0 {
			return m.styles.Muted.Render("☆☆☆☆☆")
		}
		stars := strings.Repeat("★", f.rating) + strings.Repeat("☆", appraisal.MaxRating-f.rating)
		return m.styles.Value.Render(fmt.Sprintf("%s %d/%d", stars, f.rating, appraisal.MaxRating))
	default:
		return f.input.View()
	}
}

func (m *Model) resultView() string {
	res := m.session.Result()
	o := m.session.Overrides()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Appraisal result · %s preset", res.Preset)))
	b.WriteString("\n")
	b.WriteString(m.row("Market price", m.money.Format(res.MarketPrice)))

	if res.WorthinessEvaluated {
		badge := m.styles.NoBadge.Render("NOT WORTH BUYING")
		if res.IsPurchaseWorthy {
			badge = m.styles.Badge.Render("WORTH BUYING")
		}
		b.WriteString(m.row("Verdict", badge))
	}

	if res.NeedsRepairs {
		var items strings.Builder
		for _, it := range res.RepairItems {
			items.WriteString(fmt.Sprintf("%s  %s\n", it.Name, m.money.Format(it.Cost)))
		}
		b.WriteString(m.styles.Panel.Render(strings.TrimRight(items.String(), "\n")))
		b.WriteString("\n")
	}

	names := [resultInputs]string{"Buy price", "Sell price", "Repair cost"}
	values := [resultInputs]int64{o.BuyPrice, o.SellPrice, o.RepairCost}
	for i := range resultInputs {
		label := m.styles.Label
		if i == m.priceFocus {
			label = m.styles.Focused
		}
		b.WriteString(label.Render(names[i]))
		b.WriteString(m.prices[i].View())
		b.WriteString(m.styles.Muted.Render("  " + m.money.Format(values[i])))
		b.WriteString("\n")
	}

	profit := m.tierStyle(o.Tier()).Render(m.money.Format(o.Profit()))
	b.WriteString(m.row("Profit", profit))
	b.WriteString(m.row("Margin", m.money.Percent(o.Margin())))

	if m.message != "" {
		b.WriteString(m.styles.Error.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.ResultHelp())))
	return b.String()
}

func (m *Model) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Label.Render(label), value) + "\n"
}

func (m *Model) tierStyle(t override.Tier) lipgloss.Style {
	switch t {
	case override.TierGood:
		return m.styles.Good
	case override.TierModerate:
		return m.styles.Moderate
	default:
		return m.styles.Negative
	}
}
