package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"taskdesk/internal/api"
	"taskdesk/internal/busy"
	"taskdesk/internal/config"
	"taskdesk/internal/repository"
	"taskdesk/internal/session"
)

// App holds the process-wide client state shared by the web surface and
// the command line.
type App struct {
	DB      *gorm.DB
	Tokens  *repository.ProfileTokens
	Client  *api.Client
	Session *session.Store
	Busy    *busy.Tracker
}

// NewApp opens the credential store and connects the session to the
// external system. The session is still resolving when it returns.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := repository.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	credentials := repository.NewCredentialRepository(db)
	if err := credentials.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate credential store: %w", err)
	}
	log.Debug().Str("driver", cfg.StoreDriver).Str("profile", cfg.Profile).Msg("credential store ready")

	tokens := credentials.Profile(cfg.Profile)
	client, err := api.NewClient(cfg.APIBaseURL, tokens, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(tokens, client)

	// A rejected credential anywhere ends the session.
	client.OnUnauthorized(func() {
		log.Info().Msg("credential rejected, clearing session")
		if err := store.Clear(context.Background()); err != nil {
			log.Err(err).Msg("error clearing session")
		}
	})

	return &App{
		DB:      db,
		Tokens:  tokens,
		Client:  client,
		Session: store,
		Busy:    busy.New(),
	}, nil
}

// Close releases the credential store.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
