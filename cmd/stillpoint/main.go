package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/jask/stillpoint/internal/auth"
	"github.com/jask/stillpoint/internal/config"
	"github.com/jask/stillpoint/internal/database"
	"github.com/jask/stillpoint/internal/database/repository"
	"github.com/jask/stillpoint/internal/logging"
	"github.com/jask/stillpoint/internal/service"
	"github.com/jask/stillpoint/internal/timer"
	"github.com/jask/stillpoint/internal/tui"
)

var logger = logging.Get("stillpoint")

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stillpoint",
		Usage: "a quiet meditation timer for the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.toml",
				EnvVars: []string{"STILLPOINT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "no-journal",
				Usage: "do not record finished sittings",
			},
			&cli.BoolFlag{
				Name:  "home",
				Usage: "open on the home page",
			},
			&cli.BoolFlag{
				Name:  "remember",
				Usage: "save --home and --no-journal to the config file",
			},
		},
		Before: func(c *cli.Context) error {
			if p := c.String("config"); p != "" {
				return os.Setenv("STILLPOINT_CONFIG", p)
			}
			return nil
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "list recent sittings",
				Action: history,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of sittings to show"},
				},
			},
			{
				Name:   "clear-history",
				Usage:  "delete every recorded sitting",
				Action: clearHistory,
			},
			{
				Name:   "signin",
				Usage:  "store a session token issued by the authentication service",
				Action: signIn,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Usage: "session token", EnvVars: []string{"STILLPOINT_TOKEN"}, Required: true},
				},
			},
			{
				Name:   "signout",
				Usage:  "forget the stored session",
				Action: signOut,
			},
		},
	}
}

// loadConfig reads config and applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if c.Bool("no-journal") {
		cfg.Journal.Enabled = false
	}
	if c.Bool("home") {
		cfg.UI.ShowHome = true
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return config.Config{}, err
	}
	if c.Bool("remember") {
		if err := config.Save(cfg); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// openJournal migrates and opens the sittings database.
func openJournal(cfg config.Config) (*sql.DB, error) {
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database.Open(cfg.Database.Path)
}

func runTUI(c *cli.Context) error {
	if !isTerminal(os.Stdout.Fd()) {
		return cli.Exit("stillpoint needs an interactive terminal", 1)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	closer, err := logging.SetOutFile(cfg.Log.Path)
	if err != nil {
		return err
	}
	// errors returned from here are logged by main after the file is gone
	defer func() {
		logging.SetOutput(os.Stderr)
		_ = closer.Close()
	}()

	var services tui.Services
	if cfg.Journal.Enabled {
		db, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		services.Journal = &service.JournalService{Sittings: repository.NewSittingRepo(db)}
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warnf("using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	session := auth.NewSession(cfg.Auth.SessionPath)
	logger.WithField("journal", cfg.Journal.Enabled).Info("starting")
	p := tea.NewProgram(tui.New(ctx, cfg, services, session, loc), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func history(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		loc = time.Local
	}
	journal := &service.JournalService{Sittings: repository.NewSittingRepo(db)}
	sittings, err := journal.Recent(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("list sittings: %w", err)
	}
	totals, err := journal.Totals(c.Context)
	if err != nil {
		return fmt.Errorf("totals: %w", err)
	}

	w := c.App.Writer
	if len(sittings) == 0 {
		fmt.Fprintln(w, "no sittings yet")
		return nil
	}
	for _, s := range sittings {
		fmt.Fprintf(w, "%s  %s\n", s.StartedAt.In(loc).Format("2006-01-02 15:04"), timer.Format(s.ElapsedSeconds))
	}
	fmt.Fprintf(w, "%d sittings, %s total\n", totals.Count, timer.Format(totals.Seconds))
	return nil
}

func clearHistory(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := (&service.MaintenanceService{DB: db}).ClearJournal(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %d sittings\n", n)
	return nil
}

func signIn(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := auth.NewSession(cfg.Auth.SessionPath).Save(c.String("token")); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "signed in")
	return nil
}

func signOut(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if auth.SignOutQuietly(c.Context, auth.NewSession(cfg.Auth.SessionPath), logger) {
		fmt.Fprintln(c.App.Writer, "signed out")
	}
	return nil
}
