package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"streamNotify/internal/app/runtime"
	"streamNotify/internal/domain"
	"streamNotify/internal/i18n"
	"streamNotify/internal/infrastructure/config"
	"streamNotify/internal/interface/cli"
	"streamNotify/internal/platform/logging"
)

// version is set via ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("streamnotify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		streamer     = fs.String("streamer", "", "streamer login to watch (skips the prompt)")
		format       = fs.String("format", "", "notification format: Dialog or Notification")
		settingsPath = fs.String("settings", "", "settings file path (default $STREAMNOTIFY_SETTINGS or "+config.DefaultSettingsPath()+")")
		showVersion  = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintln(stdout, "streamnotify", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	var preset domain.NotificationFormat
	if *format != "" {
		preset, err = domain.ParseNotificationFormat(*format)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid -format: %v\n", err)
			return 1
		}
	}

	path := *settingsPath
	if path == "" {
		path = cfg.SettingsPath
	}
	if path == "" {
		path = config.DefaultSettingsPath()
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}

	logOut, closeLog, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.Init(cfg.LogLevel, cfg.LogFormat, logOut)
	slog.Info("=== streamnotify starting ===", "version", version, "settings", path)

	if !config.SettingsExist(path) {
		if err := config.SaveSettings(settings, path); err != nil {
			slog.Warn("could not write default settings", "path", path, "error", err)
		} else {
			slog.Info("wrote default settings", "path", path)
		}
	}

	i18n.SetLanguage(string(i18n.Resolve(settings.General.Language)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.New(runtime.Options{Config: cfg, Settings: settings})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := rt.Stop(); err != nil {
			slog.Error("shutdown", "error", err)
		}
		slog.Info("=== streamnotify stopped ===")
	}()

	prompt := cli.NewPromptModel(ctx, rt.Lookup, preset)
	if *streamer != "" {
		prompt = prompt.WithLogin(*streamer)
	}
	final, err := tea.NewProgram(prompt, tea.WithContext(ctx)).Run()
	if err != nil {
		return exitCode(err, stderr)
	}
	res := final.(cli.PromptModel).Result()
	if res.Cancelled {
		return 0
	}

	view := cli.NewWatchModel(rt.Bus(), res.Broadcaster, res.Format)
	defer view.Close()

	if err := rt.Watch(ctx, res.Broadcaster, res.Format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := tea.NewProgram(view, tea.WithContext(ctx)).Run(); err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

// exitCode treats a signal-driven stop as a clean exit.
func exitCode(err error, stderr io.Writer) int {
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return 0
	}
	slog.Error("terminal ui", "error", err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
