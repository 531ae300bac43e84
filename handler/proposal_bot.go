package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ProposalBot/conversation"
	"ProposalBot/model"
	"ProposalBot/repo"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type ProposalBotHandler struct {
	Store  repo.SessionStore
	API    repo.ProposalService
	Engine *conversation.Engine
}

func NewProposalBotHandler(
	store repo.SessionStore,
	api repo.ProposalService,
	engine *conversation.Engine,
) *ProposalBotHandler {
	return &ProposalBotHandler{
		Store:  store,
		API:    api,
		Engine: engine,
	}
}

func (h *ProposalBotHandler) Handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	log.Debug().
		Str("user", update.Message.From.Username).
		Str("text", update.Message.Text).
		Msg("update received")

	chatID := update.Message.Chat.ID
	sessionID := fmt.Sprintf("tg-%d", update.Message.From.ID)
	text := strings.TrimSpace(update.Message.Text)

	if text == "/start" || text == "/restart" {
		if err := h.Store.Delete(ctx, sessionID); err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("error deleting session")
		}
		state := h.Engine.NewConversation()
		h.saveAndSend(ctx, b, chatID, sessionID, state, state.Messages)
		return
	}

	state, err := h.Store.Get(ctx, sessionID)
	if errors.Is(err, model.ErrSessionNotFound) {
		// No session yet: open one and show the first prompt instead of
		// feeding the stray text into the flow.
		state = h.Engine.NewConversation()
		h.saveAndSend(ctx, b, chatID, sessionID, state, state.Messages)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("error loading session")
		h.send(ctx, b, chatID, model.Message{Content: "Something went wrong. Please try again."})
		return
	}

	before := len(state.Messages)
	next, effect := h.Engine.Advance(state, inputFor(state, text))

	switch effect {
	case conversation.EffectSubmit:
		payload := h.Engine.Payload(next)
		proposalID, err := h.API.CreateProposal(ctx, payload)
		if err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("error creating proposal")
			next = h.Engine.SubmitFailed(next)
		} else {
			log.Info().Str("session", sessionID).Str("proposal", proposalID).Msg("proposal created")
			next = h.Engine.Submitted(next, proposalID)
		}
	case conversation.EffectReset:
		if err := h.Store.Delete(ctx, sessionID); err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("error deleting session")
		}
		before = 0
	}

	h.saveAndSend(ctx, b, chatID, sessionID, next, newBotMessages(next, before))
}

// inputFor maps raw Telegram text to an engine input. When the pending prompt
// is multi-select the text is a comma-separated list of choices.
func inputFor(state *model.ConversationState, text string) model.Input {
	if last := state.LastMessage(); last != nil && last.InputHint == model.InputMultiSelect {
		return model.Input{Selections: splitSelections(text)}
	}
	return model.Input{Text: text}
}

func splitSelections(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newBotMessages returns the bot messages appended after the given transcript
// position; user echoes are skipped since Telegram already shows them.
func newBotMessages(state *model.ConversationState, since int) []model.Message {
	var out []model.Message
	for _, msg := range state.Messages[since:] {
		if msg.Author == model.AuthorBot {
			out = append(out, msg)
		}
	}
	return out
}

func (h *ProposalBotHandler) saveAndSend(ctx context.Context, b *bot.Bot, chatID int64, sessionID string, state *model.ConversationState, msgs []model.Message) {
	if err := h.Store.Set(ctx, sessionID, state); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("error saving session")
	}
	for _, msg := range msgs {
		h.send(ctx, b, chatID, msg)
	}
}

func (h *ProposalBotHandler) send(ctx context.Context, b *bot.Bot, chatID int64, msg model.Message) {
	_, err := b.SendMessage(ctx, sendParams(chatID, msg))
	if err != nil {
		log.Error().Err(err).Msg("error sending message")
	}
}

// sendParams renders a bot message; options become a one-time reply keyboard.
func sendParams(chatID int64, msg model.Message) *bot.SendMessageParams {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   msg.Content,
	}
	if len(msg.Options) > 0 {
		keyboard := make([][]models.KeyboardButton, len(msg.Options))
		for i, opt := range msg.Options {
			keyboard[i] = []models.KeyboardButton{{Text: opt}}
		}
		params.ReplyMarkup = &models.ReplyKeyboardMarkup{
			Keyboard:        keyboard,
			OneTimeKeyboard: true,
			ResizeKeyboard:  true,
		}
	}
	return params
}
