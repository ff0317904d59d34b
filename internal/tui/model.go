package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
)

// Studier is the session subset the study screen needs.
type Studier interface {
	Answer(question string) (domain.Answer, error)
}

type mode int

const (
	modeAsk mode = iota
	modeCards
	modeTopics
)

var modeNames = []string{"Ask", "Flashcards", "Topics"}

// passageChars bounds one page of a topic summary.
const passageChars = 320

type exchange struct {
	question string
	answer   domain.Answer
	err      error
}

// answerMsg is sent when a question has been answered.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Model is the Bubble Tea model of the study screen: a question prompt, a
// flashcard deck and paged topic summaries, switched with tab.
type Model struct {
	studier Studier
	name    string
	mode    mode

	input    textinput.Model
	viewport viewport.Model
	history  []exchange
	asking   bool

	deck    domain.Deck
	card    int
	flipped bool

	summaries domain.TopicSummaries
	topic     int
	page      int

	width  int
	height int
	ready  bool
	status string
}

func New(studier Studier, name string, deck domain.Deck, summaries domain.TopicSummaries) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the course and press Enter"
	ti.CharLimit = 500
	ti.Focus()

	return Model{
		studier:   studier,
		name:      name,
		input:     ti,
		viewport:  viewport.New(0, 0),
		deck:      deck,
		summaries: summaries,
		status:    "Loaded " + name,
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func askQuestion(s Studier, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := s.Answer(question)
		return answerMsg{question: question, answer: ans, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		_, frame := inputBoxStyle.GetFrameSize()
		// header, tabs, status and help lines plus the input box
		vh := msg.Height - 4 - (1 + frame)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh)
		m.input.Width = max(10, msg.Width-6)
		m.refreshHistory()
		return m, nil

	case answerMsg:
		m.asking = false
		m.history = append(m.history, exchange{question: msg.question, answer: msg.answer, err: msg.err})
		switch {
		case msg.err != nil:
			m.status = "Error: " + msg.err.Error()
		case msg.answer.Found():
			m.status = fmt.Sprintf("Answered from %d passage(s)", len(msg.answer.Sources))
		default:
			m.status = "Nothing relevant in the course materials"
		}
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.mode = (m.mode + 1) % mode(len(modeNames))
			return m, nil
		case tea.KeyShiftTab:
			m.mode = (m.mode + mode(len(modeNames)) - 1) % mode(len(modeNames))
			return m, nil
		}

		switch m.mode {
		case modeAsk:
			return m.updateAsk(msg)
		case modeCards:
			return m.updateCards(msg), nil
		case modeTopics:
			return m.updateTopics(msg), nil
		}
	}

	var cmd tea.Cmd
	if m.mode == modeAsk {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAsk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		question := strings.TrimSpace(m.input.Value())
		if question == "" || m.asking {
			return m, nil
		}
		m.input.Reset()
		m.asking = true
		m.status = "Searching the course materials..."
		return m, askQuestion(m.studier, question)
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateCards(msg tea.KeyMsg) Model {
	n := len(m.deck.Cards)
	if n == 0 {
		return m
	}

	switch msg.String() {
	case " ", "enter", "f":
		m.flipped = !m.flipped
	case "right", "l", "n":
		m.card = (m.card + 1) % n
		m.flipped = false
	case "left", "h", "p":
		m.card = (m.card - 1 + n) % n
		m.flipped = false
	}
	return m
}

func (m Model) updateTopics(msg tea.KeyMsg) Model {
	n := len(m.summaries)
	if n == 0 {
		return m
	}

	switch msg.String() {
	case "down", "j":
		m.topic = (m.topic + 1) % n
		m.page = 0
	case "up", "k":
		m.topic = (m.topic - 1 + n) % n
		m.page = 0
	case "right", "l":
		if m.page < len(m.pages())-1 {
			m.page++
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
		}
	}
	return m
}

func (m Model) pages() []string {
	if len(m.summaries) == 0 {
		return nil
	}
	return analyzer.PackSentences(m.summaries[m.topic].Text, passageChars)
}

func (m *Model) refreshHistory() {
	if len(m.history) == 0 {
		m.viewport.SetContent(dimStyle.Render("Ask anything about " + m.name + "."))
		return
	}

	width := max(20, m.viewport.Width-2)
	var b strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("Q: " + ex.question))
		b.WriteString("\n")
		switch {
		case ex.err != nil:
			b.WriteString(errorStyle.Width(width).Render(ex.err.Error()))
		case ex.answer.Found():
			b.WriteString(answerStyle.Width(width).Render(ex.answer.Text))
		default:
			b.WriteString(fallbackStyle.Width(width).Render(ex.answer.Text))
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var tabs []string
	for i, name := range modeNames {
		if mode(i) == m.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	var body, help string
	switch m.mode {
	case modeAsk:
		body = m.viewport.View() + "\n" + inputBoxStyle.Render(m.input.View())
		help = "enter ask • pgup/pgdown scroll • tab switch • esc quit"
	case modeCards:
		body = m.cardView()
		help = "space flip • ←/→ previous/next • tab switch • esc quit"
	case modeTopics:
		body = m.topicView()
		help = "↑/↓ topic • ←/→ page • tab switch • esc quit"
	}

	return titleStyle.Render("coursekit · "+m.name) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" +
		body + "\n" +
		statusBarStyle.Render(m.status) + "\n" +
		dimStyle.Render(help)
}

func (m Model) cardView() string {
	if len(m.deck.Cards) == 0 {
		return dimStyle.Render("No flashcards could be generated from this document.")
	}

	c := m.deck.Cards[m.card]
	face := questionStyle.Render(c.Question)
	side := "question"
	if m.flipped {
		face = answerStyle.Render(c.Answer)
		side = "answer"
	}

	width := max(20, min(m.width-4, 72))
	header := dimStyle.Render(fmt.Sprintf("Card %d/%d (%s)", m.card+1, len(m.deck.Cards), side))
	return header + "\n" + cardStyle.Width(width).Render(face)
}

func (m Model) topicView() string {
	if len(m.summaries) == 0 {
		return dimStyle.Render("No topics were found in this document.")
	}

	var b strings.Builder
	for i, s := range m.summaries {
		if i == m.topic {
			b.WriteString(activeTabStyle.Render("› " + s.Topic))
		} else {
			b.WriteString(tabStyle.Render("  " + s.Topic))
		}
		b.WriteString("\n")
	}

	pages := m.pages()
	sum := m.summaries[m.topic]
	style := answerStyle
	if !sum.Found() {
		style = fallbackStyle
	}
	width := max(20, min(m.width-4, 72))

	var text string
	if len(pages) > 0 {
		text = pages[m.page]
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, max(1, len(pages)))))
	b.WriteString("\n")
	b.WriteString(cardStyle.Width(width).Render(style.Render(text)))
	return b.String()
}
