package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spores/internal/formatter"
	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
	"github.com/urfave/cli/v3"
)

const maxSearchLimit = 50

// Search runs one catalog search and prints the reshaped results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	kind, err := services.ParseSearchType(cmd.String("type"))
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit < 1 || limit > maxSearchLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", shared.ErrInvalidArgument, maxSearchLimit, limit)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "query", query, "type", kind, "limit", limit)
	result, err := svc.Search(ctx, query, kind, limit)
	if err != nil {
		return err
	}

	doc, err := formatter.Search(query, kind, result)
	if err != nil {
		return err
	}
	return r.writeJSON(doc)
}
