package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fixturegen"
	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// app carries the command dependencies so tests can swap output and prompts.
type app struct {
	stdout io.Writer
	stderr io.Writer
	picker Picker
	logger *slog.Logger

	source  string
	timeout time.Duration
	verbose bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		picker: surveyPicker{},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fixturegen",
		Short:         "Generate randomized fixtures from OpenAPI schemas",
		Long:          `fixturegen loads an OpenAPI document and synthesizes instances of its component schemas or request bodies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.stderr, a.verbose)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.source, "source", "s", "", "OpenAPI document path or URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Timeout for remote documents")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log generator decisions to stderr")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newListCmd(a))
	return root
}

// catalog loads the --source document.
func (a *app) catalog(ctx context.Context) (pkgopenapi.Document, *schema.Catalog, error) {
	if a.source == "" {
		return pkgopenapi.Document{}, nil, fmt.Errorf("--source is required")
	}
	src, err := pkgopenapi.ParseSource(a.source)
	if err != nil {
		return pkgopenapi.Document{}, nil, err
	}
	adapter := fixturegen.NewAdapter([]pkgopenapi.LoaderOption{
		pkgopenapi.WithHTTPFallback(a.timeout),
		pkgopenapi.WithLoaderLogger(a.logger),
	})
	doc, catalog, err := adapter.Catalog(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, nil, err
	}
	a.logger.Debug("catalog loaded",
		"source", src.Location(),
		"schemas", len(catalog.Names()),
		"operations", len(catalog.Operations()),
	)
	return doc, catalog, nil
}
