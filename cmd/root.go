// Package cmd implements the proctor command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/proctorhq/proctor/internal/audio"
	"github.com/proctorhq/proctor/internal/config"
	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/infrastructure/memory"
	"github.com/proctorhq/proctor/internal/infrastructure/sqlite"
	"github.com/proctorhq/proctor/internal/log"
	"github.com/proctorhq/proctor/internal/schedule"
	"github.com/proctorhq/proctor/internal/telemetry"
	"github.com/proctorhq/proctor/internal/templates"
	"github.com/proctorhq/proctor/internal/ui/app"
)

var (
	cfgFile       string
	flagTemplates string
	flagAudioDir  string
	flagDB        string
	flagSilent    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "proctor",
	Short: "Timed spoken announcements for exam rooms",
	Long: `Proctor plays pre-recorded spoken instructions at scheduled offsets
around each exam subject's start time. Register subjects for the day, and the
scheduler triggers every announcement on time, skips anything that is more
than a minute stale, and lets the operator fast-forward manually.`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/proctor/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTemplates, "templates", "", "announcement template file (default: built-in set)")
	rootCmd.PersistentFlags().StringVar(&flagAudioDir, "audio-dir", "", "directory containing announcement audio files")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "subject roster database path")
	rootCmd.Flags().BoolVar(&flagSilent, "silent", false, "replace the audio backend with silence")
}

// loadConfig resolves the effective configuration: file, environment, then
// command line flags.
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("templates") || flagTemplates != "" {
		cfg.TemplatesPath = flagTemplates
	}
	if flagAudioDir != "" {
		cfg.AudioDir = flagAudioDir
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDB
	}
	if flagSilent {
		cfg.Silent = true
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	if err := log.Init(cfg.LogPath, log.ParseLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer log.Close()
	log.Info(log.CatConfig, "proctor starting", "version", version)

	tracer, shutdownTracing, err := telemetry.Setup(cfg.TracePath, version)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "shutting down tracing", err)
		}
	}()

	meter, shutdownMetrics, err := telemetry.SetupMetrics(cfg.MetricsPath, version)
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "shutting down metrics", err)
		}
	}()

	source, err := templates.Load(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	var player app.AudioPlayer
	if cfg.Silent {
		player = audio.Nop{}
	} else {
		player = audio.NewPlayer(cfg.AudioDir)
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	scheduler := schedule.New(schedule.Config{
		Sink:   player,
		Tracer: tracer,
		Meter:  meter,
	})

	var templateEvents <-chan struct{}
	if cfg.WatchTemplates && cfg.TemplatesPath != "" {
		events, stop, err := templates.Watch(cfg.TemplatesPath)
		if err != nil {
			log.ErrorErr(log.CatTemplates, "template watch unavailable", err)
		} else {
			templateEvents = events
			defer stop()
		}
	}

	model, err := app.New(app.Deps{
		Scheduler:      scheduler,
		Repo:           repo,
		Source:         source,
		Player:         player,
		Clock:          realClock{},
		TemplateEvents: templateEvents,
		HideStatusBar:  !cfg.UI.ShowStatusBar,
		HideHelp:       !cfg.UI.ShowHelp,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// openRepository opens the roster database, or an in-memory roster when
// persistence is disabled.
func openRepository() (domain.SubjectRepository, func(), error) {
	if cfg.DBPath == "" {
		log.Info(log.CatDB, "persistence disabled, using in-memory roster")
		return memory.NewSubjectRepository(), func() {}, nil
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening roster database: %w", err)
	}
	return db.SubjectRepository(), func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing roster database", err)
		}
	}, nil
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
