package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/chore/internal/converter"
	"github.com/nconklindev/chore/internal/inspector"
	"github.com/nconklindev/chore/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateProcessing
	stateComplete
	stateQuery
	stateMatches
	stateError
)

type Model struct {
	state        state
	filepicker   filepicker.Model
	selectedFile string
	opts         converter.Options
	result       *types.ConversionResult
	records      []*types.Record
	query        textinput.Model
	inspection   *inspector.Result
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionResultMsg
}

type conversionResultMsg struct {
	result *types.ConversionResult
	err    error
}

type recordsLoadedMsg struct {
	records []*types.Record
	err     error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel builds the browser. Conversions write to the output paths in
// opts; its InputFile is replaced by the picked file.
func InitialModel(opts converter.Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xlsx", ".csv", ".json"}
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	prog := progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"))

	ti := textinput.New()
	ti.Placeholder = "object name"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(inspector.DefaultQuery)

	return Model{
		state:      stateFilePicker,
		filepicker: fp,
		opts:       opts,
		query:      ti,
		progress:   prog,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for the title, subtitle and help line.
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}

		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateProcessing:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case stateQuery:
			switch msg.String() {
			case "ctrl+c", "esc":
				return m, tea.Quit
			case "enter":
				m.inspection = inspector.Inspect(m.records, m.query.Value())
				m.inspection.File = m.selectedFile
				m.state = stateMatches
				m.query.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.query, cmd = m.query.Update(msg)
			return m, cmd

		case stateMatches:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter", "esc":
				m.state = stateQuery
				cmd := m.query.Focus()
				return m, cmd
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.records = msg.records
		m.state = stateQuery
		cmd := m.query.Focus()
		return m, tea.Batch(cmd, textinput.Blink)

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateQuery {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			if strings.EqualFold(filepath.Ext(path), ".json") {
				return m, m.loadRecords(path)
			}
			m.state = stateProcessing
			return m.convertFile()
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) loadRecords(path string) tea.Cmd {
	return func() tea.Msg {
		records, err := inspector.Load(path)
		return recordsLoadedMsg{records: records, err: err}
	}
}

func (m Model) convertFile() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionResultMsg, 1)

	opts := m.opts
	opts.InputFile = m.selectedFile
	opts.Progress = m.progressChan

	progressChan := m.progressChan
	resultChan := m.resultChan

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				result, err := converter.Convert(opts)

				resultChan <- conversionResultMsg{result: result, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		m.progress.Init(),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan conversionResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateQuery:
		return m.viewQuery()
	case stateMatches:
		return m.viewMatches()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧹 Chore - Cleaning Objects Data"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Pick a spreadsheet to convert or a JSON file to inspect"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧹 Processing..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Converting %s to JSON...", filepath.Base(m.selectedFile)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Conversion Complete!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", shortenPath(m.result.InputFile, maxPathLen)))
	s.WriteString(fmt.Sprintf("Rows: %d • Columns: %d\n", m.result.RowsProcessed, len(m.result.ColumnsFound)))
	s.WriteString("\n")
	s.WriteString(renderStats(m.result.Stats))
	if len(m.result.MixedColumns) > 0 {
		s.WriteString(WarningStyle.Render(fmt.Sprintf("! Columns mixing text and numbers: %s", strings.Join(m.result.MixedColumns, ", "))))
		s.WriteString("\n\n")
	}
	s.WriteString(renderSaved(m.result))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewQuery() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🔍 Search Objects"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s • %d records", filepath.Base(m.selectedFile), len(m.records))))
	s.WriteString("\n\n")
	s.WriteString(m.query.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: search • esc: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewMatches() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🔍 Matches"))
	s.WriteString("\n\n")
	s.WriteString(RenderInspection(m.inspection))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter/esc: new search • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func shortenPath(path string, maxLen int) string {
	if len(path) > maxLen {
		return "..." + path[len(path)-maxLen+3:]
	}
	return path
}
