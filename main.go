package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/profile-concierge/agent/concierge"
	profilex "github.com/tanpawarit/profile-concierge/agent/profile"
	promptx "github.com/tanpawarit/profile-concierge/agent/prompt"
	statex "github.com/tanpawarit/profile-concierge/agent/state"
	toolx "github.com/tanpawarit/profile-concierge/agent/tool"
	configx "github.com/tanpawarit/profile-concierge/pkg/config"
	_ "github.com/tanpawarit/profile-concierge/pkg/logger/autoload"
	openaix "github.com/tanpawarit/profile-concierge/pkg/openai"
	pushoverx "github.com/tanpawarit/profile-concierge/pkg/pushover"
	"github.com/tanpawarit/profile-concierge/server"
)

type AppConfig struct {
	Port           string `envconfig:"PORT" default:"8080"`
	AppTitle       string `envconfig:"APP_TITLE" default:"Profile Concierge"`
	AppDescription string `envconfig:"APP_DESCRIPTION" default:"Chat about my career, background, skills and experience"`
	MaxToolRounds  int    `envconfig:"MAX_TOOL_ROUNDS" default:"5"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, err := configx.New[AppConfig]("")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid application configuration")
	}

	openaiCfg, err := configx.New[openaix.Config]("OPENAI")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid model configuration, check OPENAI_* environment variables")
	}

	pushoverCfg, err := configx.New[pushoverx.Config]("PUSHOVER")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid pushover configuration")
	}

	profileCfg, err := configx.New[profilex.Config]("PROFILE")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid profile configuration, check PROFILE_* environment variables")
	}

	prof, err := profilex.Load(*profileCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load profile files")
	}
	log.Info().
		Str("name", prof.Name).
		Int("summary_bytes", len(prof.Summary)).
		Int("document_bytes", len(prof.Document)).
		Msg("profile loaded")

	notifier := pushoverx.MustNew(*pushoverCfg)
	if notifier.Enabled() {
		log.Info().Msg("push notifications enabled")
	} else {
		log.Info().Msg("push notifications disabled, set PUSHOVER_TOKEN and PUSHOVER_USER to enable")
	}

	chatModel, err := openaiCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat model")
	}

	gateway := toolx.NewGateway(notifier)
	store := statex.NewMemoryStore()

	svc, err := concierge.New(store, chatModel, gateway, promptx.RenderConcierge(prof), concierge.Config{
		MaxToolRounds: appCfg.MaxToolRounds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create concierge service")
	}

	srv := server.New(svc, store, gateway, openaix.NewClient(*openaiCfg), server.Meta{
		Title:       appCfg.AppTitle,
		Description: appCfg.AppDescription,
	})

	startServer(ctx, listenAddr(appCfg.Port), srv.Router())
}

func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func startServer(ctx context.Context, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("profile concierge listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
