package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/errors"
	"github.com/ecagle/herald/internal/intro"
	"github.com/ecagle/herald/internal/ops"
	"github.com/ecagle/herald/internal/sched"
	"github.com/ecagle/herald/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, gen *intro.Generator) *cli.App {
	app := &cli.App{
		Name:    "herald",
		Usage:   "Community newsletter assembly",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(db, cfg, gen),
			showCmd(db),
			listCmd(db),
			approveCmd(db),
			exportCmd(db),
			importCmd(db),
			serveCmd(db, cfg, gen),
			scheduleCmd(db, cfg, gen),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// generateCmd creates the generate command.
func generateCmd(db *sql.DB, cfg *config.Config, gen *intro.Generator) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Run the assembly pipeline and persist a new draft edition",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Value: "weekly", Usage: "Edition type: weekly|monthly"},
			&cli.StringFlag{Name: "editor-note", Usage: "Markdown note spliced after the intro"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Generate(context.Background(), db, cfg, gen, ops.GenerateInput{
				EditionType: content.EditionType(c.String("type")),
				EditorNote:  c.String("editor-note"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a full edition record",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.GetEdition(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List editions newest-first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Page size (default 20, max 100)"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Number of editions to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// approveCmd creates the approve command.
func approveCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "approve",
		Usage:     "Approve a draft edition for sending",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "list-id", Usage: "Mailing platform list the edition targets", Required: true},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Approve(db, ops.ApproveInput{
				ID:     c.Args().First(),
				ListID: c.String("list-id"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export an edition as html, text, or json",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "html", Usage: "Export format: html|text|json"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(db, ops.ExportInput{
				ID:     c.Args().First(),
				Format: c.String("format"),
			})
			if err != nil {
				return outputError(err)
			}
			// Raw content on stdout so it can be redirected to a file.
			fmt.Fprintln(os.Stdout, output.Content)
			return nil
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import content items and intelligence rows from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Path to the JSONL file", Required: true},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(db, ops.ImportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, gen *intro.Generator) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the review dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, gen, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// scheduleCmd creates the schedule command.
func scheduleCmd(db *sql.DB, cfg *config.Config, gen *intro.Generator) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Run edition generation on the configured cron schedule",
		Action: func(c *cli.Context) error {
			runner, err := sched.New(db, cfg, gen)
			if err != nil {
				return outputError(err)
			}
			ctx, stop := signalContext()
			defer stop()
			runner.Run(ctx)
			return nil
		},
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats a HeraldError for the terminal.
func outputError(err error) error {
	if hErr, ok := err.(*errors.HeraldError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", hErr.Code, hErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
