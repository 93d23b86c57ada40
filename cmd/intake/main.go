package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/ai"
	server "github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/http_server"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/observability"
	redisad "github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/redis"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/app"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/shared"
	mysqlrepo "github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/storage/mysql"
)

// logWriter stands in for the reservation-creation collaborator: it logs
// every candidate the pipeline would hand over. The real application plugs
// its own domain.ReservationWriter here.
type logWriter struct{}

func (logWriter) CreateReservation(_ context.Context, r domain.ConsolidatedReservation, v domain.ValidationResult) error {
	log.Info().
		Str("guest", strOr(r.GuestName, "?")).
		Str("property", r.Match.MatchedName).
		Str("check_in", strOr(r.CheckIn, "")).
		Str("check_out", strOr(r.CheckOut, "")).
		Str("status", string(v.Status)).
		Msg("reservation candidate ready")
	return nil
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func main() {
	serve := flag.Bool("serve", false, "keep the ops server running after the batch completes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal().Msg("usage: intake [-serve] <document files...>")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	catalog := mysqlrepo.New(db)
	if err := catalog.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	extractor, err := ai.New(cfg.OpenAIKey, cfg.OpenAIBase, cfg.Model, cfg.ProviderRPS, cfg.ExtractTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize extraction provider")
	}
	var cache domain.Cache
	if rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB); rc.Ping(ctx) == nil {
		cache = rc
	} else {
		log.Warn().Str("addr", cfg.RedisAddr).Msg("redis unreachable, extraction cache disabled for this run")
	}

	svc := app.NewIntakeService(extractor, logWriter{}, catalog, cache, cfg.Workers, int(cfg.CacheTTL.Seconds()))

	// ops surface: health, metrics, latest report
	reports := &server.ReportStore{}
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&server.Handlers{Reports: reports})
	go func() {
		log.Info().Str("addr", cfg.OpsAddr).Msg("ops server listening")
		if err := http.ListenAndServe(cfg.OpsAddr, srv.Mux()); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ops server failed")
		}
	}()

	docs, err := loadDocuments(files)
	if err != nil {
		log.Fatal().Err(err).Msg("loading documents failed")
	}
	log.Info().Int("documents", len(docs)).Int("workers", cfg.Workers).Msg("intake starting")

	result, err := svc.ProcessBatch(ctx, docs)
	if err != nil {
		log.Error().Err(err).Msg("batch aborted")
	}
	reports.Publish(result)

	s := result.Summary
	log.Info().
		Int("documents", s.Documents).
		Int("failed", s.Failed).
		Int("records", s.Records).
		Int("valid", s.Valid).
		Int("incomplete", s.Incomplete).
		Int("invalid", s.Invalid).
		Str("match_rate", fmt.Sprintf("%.1f%%", s.MatchRate)).
		Strs("unmatched", s.UnmatchedNames).
		Msg("intake completed")

	if *serve {
		<-ctx.Done()
	}
}

func loadDocuments(paths []string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(paths))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		docs = append(docs, domain.Document{
			ID:    fmt.Sprintf("doc-%d", i+1),
			Name:  filepath.Base(p),
			MIME:  mimeFor(p),
			Bytes: b,
		})
	}
	return docs, nil
}

func mimeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
