// Package tui implements the interactive terminal view of the task list.
//
// The view is a thin subscriber: it calls manager operations in response
// to key presses and rebuilds its lists from fresh manager snapshots
// whenever the manager broadcasts a change.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmarsh/tally/task"
)

type tabKind int

const (
	tabActive tabKind = iota
	tabHistory
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
)

// changeMsg is delivered after the manager broadcasts a change.
type changeMsg struct{}

type model struct {
	manager *task.Manager
	changes chan struct{}

	width  int
	height int

	activeTab   tabKind
	activeList  list.Model
	historyList list.Model

	input  textinput.Model
	mode   inputMode
	editID int

	status string
}

// Run starts the interactive view and blocks until the user quits.
func Run(manager *task.Manager) error {
	if manager == nil {
		return fmt.Errorf("task manager is required")
	}

	m := newModel(manager)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newModel(manager *task.Manager) model {
	activeList := newTaskList("Tasks")
	historyList := newTaskList("History")

	input := textinput.New()
	input.Placeholder = "task text"
	input.CharLimit = 500

	m := model{
		manager:     manager,
		changes:     make(chan struct{}, 1),
		activeTab:   tabActive,
		activeList:  activeList,
		historyList: historyList,
		input:       input,
	}

	// The manager notifies synchronously after each mutation; coalesce
	// the signal into a buffered channel the Update loop drains.
	changes := m.changes
	manager.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m.reload()
	return m
}

func newTaskList(title string) list.Model {
	l := list.New(nil, newItemDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	return l
}

func (m model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange delivers the next manager notification as a message.
func (m model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return changeMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case changeMsg:
		m.reload()
		return m, m.waitForChange()

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}

	return m.updateList(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.activeTab == tabActive {
			m.activeTab = tabHistory
		} else {
			m.activeTab = tabActive
		}
		return m, nil

	case "n":
		m.mode = inputAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		selected, ok := m.selectedTask()
		if !ok || m.activeTab != tabActive {
			return m, nil
		}
		m.mode = inputEdit
		m.editID = selected.ID
		m.input.SetValue(selected.Text)
		m.input.Focus()
		return m, textinput.Blink

	case " ", "x":
		if selected, ok := m.selectedTask(); ok {
			m.manager.Toggle(selected.ID)
		}
		return m, nil

	case "d":
		if selected, ok := m.selectedTask(); ok {
			m.manager.Delete(selected.ID)
		}
		return m, nil

	case "a":
		moved := m.manager.ArchiveCompleted()
		m.status = fmt.Sprintf("archived %d", moved)
		return m, nil

	case "r":
		if m.activeTab != tabHistory {
			return m, nil
		}
		if selected, ok := m.selectedTask(); ok {
			m.manager.Revert(selected.ID)
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.input.Blur()
		return m, nil

	case "enter":
		text := m.input.Value()
		switch m.mode {
		case inputAdd:
			if created := m.manager.Add(text); created != nil {
				m.status = fmt.Sprintf("added #%d", created.ID)
			}
		case inputEdit:
			if m.manager.UpdateText(m.editID, text) {
				m.status = fmt.Sprintf("updated #%d", m.editID)
			}
		}
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.activeTab == tabActive {
		m.activeList, cmd = m.activeList.Update(msg)
	} else {
		m.historyList, cmd = m.historyList.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTabs(),
		m.currentList().View(),
	}
	if m.mode != inputNone {
		sections = append(sections, m.renderInput())
	}
	sections = append(sections, m.renderHelp())

	return strings.Join(sections, "\n")
}

func (m model) currentList() *list.Model {
	if m.activeTab == tabActive {
		return &m.activeList
	}
	return &m.historyList
}

func (m model) selectedTask() (task.Task, bool) {
	item, ok := m.currentList().SelectedItem().(taskItem)
	if !ok {
		return task.Task{}, false
	}
	return item.task, true
}

// reload rebuilds both lists from fresh manager snapshots.
func (m *model) reload() {
	m.activeList.SetItems(taskItems(m.manager.Active(), false))
	m.historyList.SetItems(taskItems(m.manager.Archived(), true))
}

func (m *model) resize() {
	listHeight := m.height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	m.activeList.SetSize(m.width, listHeight)
	m.historyList.SetSize(m.width, listHeight)
}

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m model) renderTabs() string {
	counts := m.manager.Counts()
	active := fmt.Sprintf("Tasks (%d open, %d done)", counts.Pending, counts.Completed)
	history := fmt.Sprintf("History (%d)", counts.Archived)

	if m.activeTab == tabActive {
		return tabActiveStyle.Render(active) + tabInactiveStyle.Render(history)
	}
	return tabInactiveStyle.Render(active) + tabActiveStyle.Render(history)
}

func (m model) renderInput() string {
	label := "add"
	if m.mode == inputEdit {
		label = fmt.Sprintf("edit #%d", m.editID)
	}
	return fmt.Sprintf("%s> %s", label, m.input.View())
}

func (m model) renderHelp() string {
	help := "n new  space toggle  e edit  a archive  d delete  tab history  q quit"
	if m.activeTab == tabHistory {
		help = "r restore  space restore  d delete  tab tasks  q quit"
	}
	if m.status != "" {
		help = m.status + "  |  " + help
	}
	return helpStyle.Render(help)
}
