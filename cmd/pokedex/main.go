package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/wkgunawan/pokedex"
	"github.com/wkgunawan/pokedex/catalog"
	pokehttp "github.com/wkgunawan/pokedex/http"
	pokeslog "github.com/wkgunawan/pokedex/slog"
	"github.com/wkgunawan/pokedex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, pokedex.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CacheStore  pokedex.CacheStore
	UserService pokedex.UserService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pokedex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pokedex --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set POKEDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var client pokedex.Client = pokehttp.NewClient()
	m.CacheStore = sqlite.NewCacheService(m.DB)
	m.UserService = sqlite.NewUserService(m.DB)

	cache := m.CacheStore
	if cli.Verbose {
		client = pokeslog.NewLoggingClient(client, logger)
		cache = pokeslog.NewLoggingCacheStore(cache, logger)
	}

	// Status events go to stderr so command output stays pipeable.
	notify := func(event catalog.Event) {
		if event.Message != "" {
			fmt.Fprintln(stderr, event.Message)
		}
	}

	deps.DB = m.DB
	deps.Client = client
	deps.Cache = cache
	deps.Users = m.UserService
	deps.Catalog = catalog.NewController(client, cache,
		catalog.WithLogger(logger),
		catalog.WithNotify(notify),
	)
	deps.Finder = catalog.NewCoordinator(deps.Catalog)
	deps.Details = catalog.NewDetailLoader(client, cache,
		catalog.WithDetailLogger(logger),
		catalog.WithDetailNotify(notify),
	)

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("POKEDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pokedex.db"
	}
	dir := filepath.Join(home, ".pokedex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pokedex.db")
}
