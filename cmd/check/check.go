package check

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/config"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/events"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/history"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/incidents"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/settings"
)

// Command returns the check subcommand
func Command(logger *logger.Logger) *cobra.Command {
	var (
		rawURL string
		page   string
		dbPath string
	)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run a one-shot page check",
		Long: `Check a single URL or a registered page and print the resolved status.
For example:
  monitora check --url https://example.com
  monitora check --page landing-page`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (rawURL == "") == (page == "") {
				return errors.New("exactly one of --url or --page is required")
			}

			cfg := config.Default()
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = dbPath
			}

			database, err := db.Open(cfg.Database.Path)
			if err != nil {
				return errors.Wrap(err, "failed to open database")
			}
			defer database.Close()
			queries := db.New(database)

			pagesService := pages.NewService(queries, logger)
			eventsService := events.NewService(queries, logger, events.DefaultConfig())
			defer eventsService.Close()

			monitorService := monitor.NewService(monitor.ServiceDeps{
				History:  history.NewService(queries, logger),
				Status:   pagesService,
				Incident: incidents.NewService(queries, logger),
				Events:   eventsService,
				Policies: settings.NewSettingsService(queries, logger),
				Logger:   logger,
			})

			ctx := context.Background()
			var result monitor.CheckResult

			if rawURL != "" {
				result, err = monitorService.CheckURL(ctx, rawURL, monitor.OriginCLI)
				if err != nil {
					return errors.Wrap(err, "check failed")
				}
			} else {
				descriptor, err := resolvePage(ctx, pagesService, page)
				if err != nil {
					return err
				}
				result, err = monitorService.RunCheck(ctx, descriptor, monitor.OriginCLI)
				if err != nil {
					return errors.Wrap(err, "check failed")
				}
			}

			printResult(cmd, result)
			return nil
		},
	}

	checkCmd.Flags().StringVar(&rawURL, "url", "", "URL to check without registering it")
	checkCmd.Flags().StringVar(&page, "page", "", "Registered page to check, by ID or slug")
	checkCmd.Flags().StringVar(&dbPath, "db", "data/monitora.db", "Path to SQLite database file")

	return checkCmd
}

// resolvePage accepts either a numeric page ID or a slug
func resolvePage(ctx context.Context, pagesService *pages.Service, ref string) (monitor.PageDescriptor, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		descriptor, err := pagesService.Descriptor(ctx, id)
		if err != nil {
			return monitor.PageDescriptor{}, errors.Wrapf(err, "failed to load page %d", id)
		}
		return descriptor, nil
	}

	dto, err := pagesService.GetPageBySlug(ctx, ref)
	if err != nil {
		return monitor.PageDescriptor{}, errors.Wrapf(err, "failed to load page %q", ref)
	}
	return pagesService.Descriptor(ctx, dto.ID)
}

func printResult(cmd *cobra.Command, result monitor.CheckResult) {
	cmd.Printf("Status:        %s (%s)\n", result.Status, result.Label)
	if result.HTTPStatus != nil {
		cmd.Printf("HTTP status:   %d\n", *result.HTTPStatus)
	}
	cmd.Printf("Response time: %s\n", result.ResponseTime)
	if result.Retries > 0 {
		cmd.Printf("Retries:       %d\n", result.Retries)
	}
	if result.ErrorType != "" {
		cmd.Printf("Error type:    %s\n", result.ErrorType)
	}
	if result.ErrorMessage != "" {
		cmd.Printf("Error:         %s\n", result.ErrorMessage)
	}
	if result.Blocked {
		cmd.Printf("Block reason:  %s\n", result.BlockReason)
	}
	if result.Soft404 {
		fmt.Fprintln(cmd.OutOrStdout(), "Soft 404 content detected")
	}
}
