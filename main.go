package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/scoreai-client/agent/catalog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	"github.com/tanpawarit/scoreai-client/agent/journal"
	"github.com/tanpawarit/scoreai-client/agent/session"
	configx "github.com/tanpawarit/scoreai-client/pkg/config"
	logx "github.com/tanpawarit/scoreai-client/pkg/logger"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

type AppConfig struct {
	Username string `envconfig:"SCOREAI_USERNAME" required:"true"`
	Password string `envconfig:"SCOREAI_PASSWORD" required:"true"`
}

func main() {
	flag.Parse()
	logx.Init(*configx.MustNew[logx.Config]("LOG"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("")
	apiCfg := configx.MustNew[scoreapi.Config]("SCOREAI_API")
	journalCfg := configx.MustNew[journal.Config]("SCOREAI_JOURNAL")

	client := scoreapi.MustNew(*apiCfg)
	if _, err := client.Login(ctx, appCfg.Username, appCfg.Password); err != nil {
		log.Fatal().Err(err).Str("username", appCfg.Username).Msg("login failed")
	}

	accessor, err := catalog.New(client)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog")
	}

	var turnJournal contractx.TurnJournal = journal.Noop{}
	var turns turnLog
	if journalCfg.Enabled() {
		store, err := journal.Open(*journalCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open turn journal")
		}
		defer store.Close()
		if err := store.CreateSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create turn journal schema")
		}
		turnJournal = store
		turns = store
	}

	sess, err := session.New(accessor, client, session.WithJournal(turnJournal))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session")
	}
	log.Info().Str("session_id", sess.ID()).Str("api", apiCfg.URL).Msg("session ready")

	r := newREPL(sess, client, turns, os.Stdout)
	if err := r.Run(ctx, os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("repl stopped")
	}
}
