package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/ingest"
	"github.com/apresai/vidblueprint/internal/render"
)

// menuItem represents a single configurable option in the TUI.
type menuItem struct {
	label   string
	value   string
	options []menuOption
	editing bool
	cursor  int // cursor within options when editing
}

type menuOption struct {
	label string
	value string
}

// menuState tracks which phase the TUI is in.
type menuState int

const (
	stateMenu menuState = iota
	stateEditing
)

// tuiModel is the Bubble Tea model for the interactive menu.
type tuiModel struct {
	items     []menuItem
	cursor    int
	state     menuState
	width     int
	err       error
	confirmed bool
	cancelled bool
	catalogOK bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	menuLabelStyle = lipgloss.NewStyle().
			Width(12).
			Align(lipgloss.Right).
			MarginRight(2)

	menuValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	menuValueDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true).
				PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 3)

	buttonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 3)

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")).
			PaddingLeft(16)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	headerBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			MarginBottom(1).
			PaddingBottom(0)
)

const (
	idxIdea     = 0
	idxOutput   = 1
	idxFormat   = 2
	idxPublish  = 3
	idxGenerate = 4
)

func defaultOutputFilename(f render.Format) string {
	ext := map[render.Format]string{
		render.FormatJSON:     ".json",
		render.FormatYAML:     ".yaml",
		render.FormatMarkdown: ".md",
	}[f]
	if ext == "" {
		return "-"
	}
	return time.Now().Format("blueprint-20060102-1504") + ext
}

func formatOptions() []menuOption {
	opts := make([]menuOption, 0, len(render.FormatNames()))
	for _, name := range render.FormatNames() {
		f := render.Format(name)
		label := render.FormatLabel(f)
		if f == render.FormatJSON {
			label += " (default)"
		}
		opts = append(opts, menuOption{label: label, value: name})
	}
	return opts
}

func buildMenuItems(catalogOK bool) []menuItem {
	format := flagFormat
	if format == "" {
		format = string(render.FormatJSON)
	}
	outputVal := flagOutput
	if outputVal == "" {
		outputVal = defaultOutputFilename(render.Format(format))
	}
	publishVal := "no"
	if flagPublish && catalogOK {
		publishVal = "yes"
	}
	publishOpts := []menuOption{{label: "No, keep it local (default)", value: "no"}}
	if catalogOK {
		publishOpts = append(publishOpts, menuOption{label: "Yes, upload to the catalog", value: "yes"})
	}

	items := []menuItem{
		{label: "Idea", value: flagInput},
		{label: "Output", value: outputVal},
		{label: "Format", value: format, options: formatOptions()},
		{label: "Publish", value: publishVal, options: publishOpts},
		{label: ">>> Generate <<<"},
	}

	for i := range items {
		for j, opt := range items[i].options {
			if opt.value == items[i].value {
				items[i].cursor = j
				break
			}
		}
	}
	return items
}

func initialTUIModel(catalogOK bool) tuiModel {
	return tuiModel{
		items:     buildMenuItems(catalogOK),
		cursor:    idxIdea,
		state:     stateMenu,
		catalogOK: catalogOK,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) isTextInput(idx int) bool {
	return idx == idxIdea || idx == idxOutput
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateEditing:
			return m.updateEditing(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.cursor == idxGenerate {
			if m.items[idxOutput].value == "" {
				m.err = fmt.Errorf("Output is required (use - for stdout)")
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
		m.state = stateEditing
		m.items[m.cursor].editing = true
		m.err = nil
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.cursor
	item := &m.items[idx]

	if m.isTextInput(idx) {
		switch msg.String() {
		case "enter":
			item.editing = false
			m.state = stateMenu
			m.cursor++
			return m, nil
		case "esc":
			item.editing = false
			m.state = stateMenu
			return m, nil
		case "backspace":
			if r := []rune(item.value); len(r) > 0 {
				item.value = string(r[:len(r)-1])
			}
			return m, nil
		case "ctrl+u":
			item.value = ""
			return m, nil
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				item.value += string(msg.Runes)
			}
			return m, nil
		}
	}

	switch msg.String() {
	case "enter", " ":
		if item.cursor >= 0 && item.cursor < len(item.options) {
			item.value = item.options[item.cursor].value
		}
		item.editing = false
		m.state = stateMenu

		// Keep an auto-named output file in step with the chosen format.
		if idx == idxFormat && flagOutput == "" {
			m.items[idxOutput].value = defaultOutputFilename(render.Format(item.value))
		}
		m.cursor++
		return m, nil

	case "esc":
		item.editing = false
		m.state = stateMenu
		return m, nil

	case "up", "k":
		if item.cursor > 0 {
			item.cursor--
		}

	case "down", "j":
		if item.cursor < len(item.options)-1 {
			item.cursor++
		}
	}
	return m, nil
}

// preview describes what the generator will make of the current idea.
func (m tuiModel) preview() string {
	idea := m.items[idxIdea].value
	if ingest.DetectSource(idea) != ingest.SourceLiteral {
		return fmt.Sprintf("idea will be read from %s", ingest.DetectSource(idea))
	}
	f := blueprint.ParseIdea(idea)
	themes := make([]string, len(f.Themes))
	for i, t := range f.Themes {
		themes[i] = string(t)
	}
	return fmt.Sprintf("themes: %s | hero: %s | threat: %s | setting: %s",
		strings.Join(themes, ", "), f.Hero.Name, f.Threat.Name, f.Setting.Name)
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(headerBorder.Render(titleStyle.Render("Video Blueprint")))
	b.WriteString("\n")

	for i, item := range m.items {
		isActive := m.cursor == i

		if i == idxGenerate {
			b.WriteString("\n")
			if isActive {
				b.WriteString(cursorStyle.Render("> ") + buttonStyle.Render(" Generate "))
			} else {
				b.WriteString("  " + buttonDimStyle.Render(" Generate "))
			}
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		if isActive {
			cursor = cursorStyle.Render("> ")
		}
		renderedLabel := menuLabelStyle.Render(item.label)

		var renderedValue string
		switch {
		case item.editing && m.isTextInput(i):
			renderedValue = menuValueStyle.Render(item.value + "_")
		case item.value == "" && i == idxIdea:
			renderedValue = menuValueDimStyle.Render("(empty: superhero family story)")
		case item.value == "":
			renderedValue = menuValueDimStyle.Render("(not set)")
		case item.value == "-" && i == idxOutput:
			renderedValue = menuValueStyle.Render("stdout")
		default:
			displayVal := item.value
			for _, opt := range item.options {
				if opt.value == item.value {
					displayVal = opt.label
					break
				}
			}
			renderedValue = menuValueStyle.Render(displayVal)
		}

		b.WriteString(cursor + renderedLabel + " " + renderedValue + "\n")
		if i == idxIdea {
			b.WriteString(previewStyle.Render(m.preview()) + "\n")
		}

		if item.editing && len(item.options) > 0 {
			for j, opt := range item.options {
				if j == item.cursor {
					b.WriteString(selectedOptionStyle.Render("> "+opt.label) + "\n")
				} else {
					b.WriteString(optionStyle.Render("  "+opt.label) + "\n")
				}
			}
		}
	}

	if !m.catalogOK {
		b.WriteString("\n" + menuValueDimStyle.Render("  Publishing needs S3_BUCKET and DYNAMODB_TABLE") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	switch m.state {
	case stateMenu:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | enter to edit | q to quit"))
	case stateEditing:
		if m.isTextInput(m.cursor) {
			b.WriteString(helpStyle.Render("  type value | enter to confirm | esc to cancel | ctrl+u to clear"))
		} else {
			b.WriteString(helpStyle.Render("  j/k or arrows to pick | enter to select | esc to cancel"))
		}
	}
	b.WriteString("\n")

	return b.String()
}

// applySelections copies the confirmed menu values back into the flags.
func applySelections(final tuiModel) {
	flagInput = final.items[idxIdea].value
	flagOutput = final.items[idxOutput].value
	flagFormat = final.items[idxFormat].value
	flagPublish = final.items[idxPublish].value == "yes"
}

func runInteractiveSetup() error {
	m := initialTUIModel(cfg.Catalog.Enabled())

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tuiModel)
	if final.cancelled || !final.confirmed {
		return fmt.Errorf("cancelled")
	}
	applySelections(final)
	return nil
}
