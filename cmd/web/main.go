package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/ojalehto/fitplan/internal/catalog"
	"github.com/ojalehto/fitplan/internal/envstruct"
	"github.com/ojalehto/fitplan/internal/errors"
	"github.com/ojalehto/fitplan/internal/logging"
	"github.com/ojalehto/fitplan/internal/planner"
	"github.com/ojalehto/fitplan/internal/profile"
	"github.com/ojalehto/fitplan/internal/recommend"
	"github.com/ojalehto/fitplan/internal/sqlite"
	"github.com/ojalehto/fitplan/internal/tracking"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	catalog         *catalog.Catalog
	assembler       *planner.Assembler
	profileService  *profile.Service
	trackingService *tracking.Service
	engine          *recommend.Engine
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITPLAN_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITPLAN_SQLITE_URL" envDefault:"./fitplan.sqlite3"`
	// CatalogPath points to a YAML exercise catalog. Empty uses the embedded catalog.
	CatalogPath string `env:"FITPLAN_CATALOG_PATH" envDefault:""`
	// PanelSeed seeds the synthetic recommendation panel. The same seed
	// always produces the same panel.
	PanelSeed string `env:"FITPLAN_PANEL_SEED" envDefault:"1"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	panelSeed, err := strconv.ParseUint(cfg.PanelSeed, 10, 64)
	if err != nil {
		return errors.Wrap(err, "parse panel seed", slog.String("seed", cfg.PanelSeed))
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return errors.Wrap(err, "load catalog", slog.String("path", cfg.CatalogPath))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	sessionManager := initializeSessionManager(db)

	profileService := profile.NewService(db, logger)
	panelUsers, panelWorkouts := recommend.DefaultPanel(panelSeed)

	app := application{
		logger:          logger,
		sessionManager:  sessionManager,
		catalog:         cat,
		assembler:       planner.New(cat, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		profileService:  profileService,
		trackingService: tracking.NewService(db, profileService, logger),
		engine:          recommend.NewEngine(panelUsers, panelWorkouts),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 30 * 24 * time.Hour                                           //nolint:mnd // month
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
