// Console host for the proposal conversation engine. Runs the same flow as
// the Telegram bot against a terminal, which keeps the engine honest about
// being UI-agnostic.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ProposalBot/conversation"
	"ProposalBot/model"
	"ProposalBot/repo"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	optionStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func main() {
	ctx := context.Background()

	var api repo.ProposalService
	if apiURL := os.Getenv("PROPOSAL_API_URL"); apiURL != "" {
		api = repo.NewProposalClient(apiURL)
	} else {
		api = &offlineService{}
	}

	destinations, err := api.Destinations(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching destinations: %v\n", err)
		os.Exit(1)
	}
	resorts, err := api.Resorts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching resorts: %v\n", err)
		os.Exit(1)
	}

	engine := conversation.NewEngine(destinations, resorts)

	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	m := chatModel{
		ctx:    ctx,
		engine: engine,
		store:  repo.NewMemoryStore(),
		api:    api,
		state:  engine.NewConversation(),
		input:  ti,
	}
	if err := m.store.Set(ctx, m.state.SessionID, m.state); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type chatModel struct {
	ctx    context.Context
	engine *conversation.Engine
	store  repo.SessionStore
	api    repo.ProposalService
	state  *model.ConversationState
	input  textinput.Model
	err    error
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.submitTurn(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submitTurn(text string) {
	if text == "" {
		return
	}

	next, effect := m.engine.Advance(m.state, m.inputFor(text))

	switch effect {
	case conversation.EffectSubmit:
		proposalID, err := m.api.CreateProposal(m.ctx, m.engine.Payload(next))
		if err != nil {
			m.err = err
			next = m.engine.SubmitFailed(next)
		} else {
			next = m.engine.Submitted(next, proposalID)
		}
	case conversation.EffectReset:
		if err := m.store.Delete(m.ctx, m.state.SessionID); err != nil {
			m.err = err
		}
	}

	m.state = next
	if err := m.store.Set(m.ctx, next.SessionID, next); err != nil {
		m.err = err
	}
}

// inputFor maps typed text to an engine input. A bare number picks the
// numbered option from the pending prompt; a comma list answers multi-select
// prompts.
func (m *chatModel) inputFor(text string) model.Input {
	last := m.state.LastMessage()
	if last == nil {
		return model.Input{Text: text}
	}
	if last.InputHint == model.InputMultiSelect {
		var selections []string
		for _, part := range strings.Split(text, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			} else if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= len(last.Options) {
				selections = append(selections, last.Options[n-1])
			} else {
				selections = append(selections, part)
			}
		}
		return model.Input{Selections: selections}
	}
	if n, err := strconv.Atoi(text); err == nil && last.InputHint == model.InputSingleSelect {
		if n >= 1 && n <= len(last.Options) {
			return model.Input{Text: last.Options[n-1]}
		}
	}
	return model.Input{Text: text}
}

func (m chatModel) View() string {
	var b strings.Builder
	for _, msg := range m.state.Messages {
		switch msg.Author {
		case model.AuthorBot:
			b.WriteString(botStyle.Render("bot") + "  " + msg.Content + "\n")
			for i, opt := range msg.Options {
				b.WriteString(optionStyle.Render(fmt.Sprintf("     %d. %s", i+1, opt)) + "\n")
			}
		case model.AuthorUser:
			b.WriteString(userStyle.Render("you") + "  " + msg.Content + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(optionStyle.Render("enter to send, esc to quit") + "\n")
	return b.String()
}

// offlineService serves canned snapshots and accepts every proposal locally,
// so the console host works without a running booking service.
type offlineService struct{}

func (o *offlineService) Destinations(context.Context) ([]model.Destination, error) {
	return []model.Destination{
		{ID: "dest-cancun", Name: "Cancun"},
		{ID: "dest-los-cabos", Name: "Los Cabos"},
		{ID: "dest-punta-cana", Name: "Punta Cana"},
		{ID: "dest-riviera-maya", Name: "Riviera Maya"},
		{ID: "dest-montego-bay", Name: "Montego Bay"},
		{ID: "dest-aruba", Name: "Aruba"},
		{ID: "dest-nassau", Name: "Nassau"},
	}, nil
}

func (o *offlineService) Resorts(context.Context) ([]model.Resort, error) {
	return []model.Resort{
		{ID: "resort-grand-azul", Name: "Grand Azul", Description: "Beachfront all-inclusive with 40,000 sq ft of meeting space"},
		{ID: "resort-villa-sol", Name: "Villa Sol", Description: "Boutique property suited to executive retreats"},
		{ID: "resort-palma-real", Name: "Palma Real", Description: "Golf and spa resort with oceanview ballrooms"},
	}, nil
}

func (o *offlineService) CreateProposal(context.Context, model.ProposalPayload) (string, error) {
	return uuid.NewString(), nil
}
