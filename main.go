package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ProposalBot/conversation"
	"ProposalBot/handler"
	"ProposalBot/repo"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	apiURL := os.Getenv("PROPOSAL_API_URL")
	if apiURL == "" {
		log.Fatal().Msg("PROPOSAL_API_URL environment variable not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := newSessionStore(ctx)
	client := repo.NewProposalClient(apiURL)

	// Snapshots are fetched once; the engine treats them as immutable for
	// every conversation it advances.
	destinations, err := client.Destinations(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error fetching destinations")
	}
	resorts, err := client.Resorts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error fetching resorts")
	}
	log.Info().Int("destinations", len(destinations)).Int("resorts", len(resorts)).Msg("snapshots loaded")

	engine := conversation.NewEngine(destinations, resorts)
	proposalBot := handler.NewProposalBotHandler(store, client, engine)

	opts := []bot.Option{
		bot.WithDefaultHandler(proposalBot.Handler),
	}

	b, err := bot.New(botToken, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bot")
	}

	b.Start(ctx)
	<-ctx.Done()
	log.Info().Msg("Bot stopped")
}

// newSessionStore picks the session backend from the environment: Redis if
// REDIS_ADDR is set, Firebase if the Firebase variables are set, otherwise an
// in-process store.
func newSessionStore(ctx context.Context) repo.SessionStore {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		log.Info().Str("addr", addr).Msg("using Redis session store")
		return repo.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), db)
	}

	if os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH") != "" {
		store, err := repo.InitializeFirebase(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing Firebase")
		}
		log.Info().Msg("using Firebase session store")
		return store
	}

	log.Warn().Msg("no session backend configured, sessions will not survive restarts")
	return repo.NewMemoryStore()
}
