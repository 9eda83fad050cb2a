package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"playcatalog/browser"
	"playcatalog/gatewayclient"
	"playcatalog/logging"
	"playcatalog/tui"
)

type options struct {
	Gateway  string
	Debounce time.Duration
	Opener   string
	MuteArg  string
	LogFile  string
	LogLevel string
}

func (o *options) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gateway",
			Usage:       "Query gateway base URL",
			Value:       gatewayclient.DefaultBaseURL,
			Destination: &o.Gateway,
			Sources:     cli.EnvVars("GATEWAY_URL"),
		},
		&cli.DurationFlag{
			Name:        "debounce",
			Usage:       "Pause after the last keystroke before searching",
			Value:       browser.DefaultDebounce,
			Destination: &o.Debounce,
			Sources:     cli.EnvVars("SEARCH_DEBOUNCE"),
		},
		&cli.StringFlag{
			Name:        "opener",
			Usage:       "Command that plays trailers; {url} is replaced by the video URL",
			Value:       "mpv",
			Destination: &o.Opener,
			Sources:     cli.EnvVars("TRAILER_OPENER"),
		},
		&cli.StringFlag{
			Name:        "mute-arg",
			Usage:       "Arguments added to the opener when muted",
			Value:       "--mute=yes",
			Destination: &o.MuteArg,
			Sources:     cli.EnvVars("TRAILER_MUTE_ARG"),
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "Write logs to this file (logs are discarded otherwise)",
			Destination: &o.LogFile,
			Sources:     cli.EnvVars("BROWSER_LOG_FILE"),
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (trace, debug, info, warn, error)",
			Value:       "info",
			Destination: &o.LogLevel,
			Sources:     cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// setupLogging keeps log output off the terminal the UI draws on.
func (o *options) setupLogging() (io.Closer, error) {
	if o.LogFile == "" {
		logging.Init(o.LogLevel, io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logging.Init(o.LogLevel, f)
	return f, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var opts options
	var logCloser io.Closer

	app := &cli.Command{
		Name:  "browser",
		Usage: "Browse the Play Store catalog through the query gateway",
		Flags: opts.flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closer, err := opts.setupLogging()
			if err != nil {
				return nil, err
			}
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log.WithFields(log.Fields{"module": "main"}).Infof("starting browser against %s", opts.Gateway)
			model := tui.New(gatewayclient.New(opts.Gateway), tui.Options{
				Debounce: opts.Debounce,
				Opener:   strings.Fields(opts.Opener),
				MuteArgs: strings.Fields(opts.MuteArg),
			})
			return model.Run(ctx)
		},
		Commands: []*cli.Command{
			cmdSearch(&opts, out),
		},
	}
	return app.Run(ctx, args)
}

// cmdSearch prints one page of results without starting the UI.
func cmdSearch(opts *options, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Print search results and exit",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("search needs a query")
			}
			results, err := gatewayclient.New(opts.Gateway).Search(ctx, query)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-40s %-5s %-10s %s\n",
					r.AppID, browser.FormatScore(r.Score), browser.PriceLabel(r), browser.DisplayTitle(r))
			}
			return nil
		},
	}
}
