package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spores/internal/shared"
	"github.com/desertthunder/spores/internal/ui"
	"github.com/urfave/cli/v3"
)

const configureIntro = `Create an app at https://developer.spotify.com/dashboard and register
the redirect URI below in its settings. Press enter to keep a value.

`

// existingConfig returns the config at path, or defaults when there is none yet.
func existingConfig(path string) (*shared.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return shared.DefaultConfig(), nil
	}
	return shared.ReadConfig(path)
}

// Configure asks for the client credentials and redirect URI and writes the config file.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) error {
	config, err := existingConfig(r.configPath)
	if err != nil {
		return err
	}

	fields := []ui.Field{
		{Label: "Client ID", Default: config.ClientID, Required: true},
		{Label: "Client secret", Default: config.ClientSecret, Secret: true, Required: true},
		{Label: "Redirect URI", Default: config.Redirect()},
	}

	var values []string
	if r.interactive() {
		values, err = ui.RunForm(ctx, r.input, r.errOutput, "Spotify credentials", fields)
	} else {
		r.notify(configureIntro)
		values, err = ui.PromptLines(r.input, r.errOutput, fields)
	}
	if err != nil {
		return err
	}

	config.ClientID, config.ClientSecret, config.RedirectURI = values[0], values[1], values[2]
	if err := config.Validate(); err != nil {
		return err
	}

	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return err
	}

	r.logger.Debug("wrote config", "path", r.configPath)
	return r.writePlain("Configuration saved to %s\n", r.configPath)
}
