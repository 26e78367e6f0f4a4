package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spores/internal/models"
	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The Spotify service is built and authenticated on first use so that input validation
// and the configure command never touch the network.
type Runner struct {
	config         *shared.Config
	configPath     string
	spotify        services.Service
	serviceOptions []services.Option
	logger         *log.Logger
	input          io.Reader
	output         io.Writer
	errOutput      io.Writer
	pretty         bool
	openBrowser    func(string) error
	interactive    func() bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config         *shared.Config
	ConfigPath     string
	Spotify        services.Service
	ServiceOptions []services.Option
	Logger         *log.Logger
	Input          io.Reader
	Output         io.Writer
	ErrOutput      io.Writer
	OpenBrowser    func(string) error
	Interactive    func() bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.Interactive == nil {
		opts.Interactive = stdinIsTerminal
	}

	return &Runner{
		config:         opts.Config,
		configPath:     opts.ConfigPath,
		spotify:        opts.Spotify,
		serviceOptions: opts.ServiceOptions,
		logger:         opts.Logger,
		input:          opts.Input,
		output:         opts.Output,
		errOutput:      opts.ErrOutput,
		pretty:         true,
		openBrowser:    opts.OpenBrowser,
		interactive:    opts.Interactive,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// App builds the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:      shared.AppName,
		Usage:     "Spotify from the command line, JSON on stdout",
		Version:   "0.1.0",
		Writer:    r.output,
		ErrWriter: r.errOutput,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default: <user config dir>/spores/config.toml)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log debug output to stderr",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Print single-line JSON",
			},
		},
		Before:   r.before,
		Commands: r.register(),
	}
}

func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	r.pretty = !cmd.Bool("compact")

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}
	if r.configPath == "" {
		path, err := shared.DefaultConfigPath()
		if err != nil {
			return ctx, err
		}
		r.configPath = path
	}

	r.logger.Debug("using config", "path", r.configPath)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, playlistCommand, saveCommand, configureCommand, authCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the config file once; a config passed in [RunnerOpts] wins.
func (r *Runner) loadConfig() (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	config, err := shared.LoadConfig(r.configPath)
	if err != nil {
		return nil, err
	}
	r.config = config
	return config, nil
}

func (r *Runner) tokenCache() (*services.TokenCache, error) {
	config, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	return services.NewTokenCache(config.TokenCachePath(r.configPath)), nil
}

// newSpotify builds an unauthenticated Spotify client from the config.
func (r *Runner) newSpotify() (*services.SpotifyService, error) {
	config, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	opts := []services.Option{
		services.WithBaseURL(config.API.BaseURL),
		services.WithRateLimit(config.API.RequestsPerSecond),
	}
	opts = append(opts, r.serviceOptions...)

	return services.NewSpotifyService(config.Map(), opts...)
}

// service returns an authenticated Spotify service, running the OAuth flow when no usable token is cached.
func (r *Runner) service(ctx context.Context) (services.Service, error) {
	if r.spotify != nil {
		return r.spotify, nil
	}

	svc, err := r.newSpotify()
	if err != nil {
		return nil, err
	}

	cache, err := r.tokenCache()
	if err != nil {
		return nil, err
	}

	if err := r.authenticate(ctx, svc, cache, false); err != nil {
		return nil, err
	}

	r.spotify = svc
	return svc, nil
}

func (r *Runner) writeJSON(data any) error {
	output, err := shared.MarshalJSON(data, r.pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// notify writes progress messages for the user to stderr.
func (r *Runner) notify(format string, args ...any) {
	fmt.Fprintf(r.errOutput, format, args...)
}

// fail reports err as an error document on stdout and logs it to stderr.
func (r *Runner) fail(err error) {
	r.logger.Error("command failed", "error", err)
	if werr := r.writeJSON(models.ErrorDocument{Error: err.Error()}); werr != nil {
		r.logger.Error("failed to write error document", "error", werr)
	}
}
