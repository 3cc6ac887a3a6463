package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vxml/pkg/document"
	"github.com/vango-dev/vxml/pkg/middleware"
	"github.com/vango-dev/vxml/pkg/render"
	"github.com/vango-dev/vxml/pkg/vdom"
)

const stdinName = "-"

func renderCmd(app *cli) *cobra.Command {
	var (
		stripPrefixes []string
		escapeText    bool
		maxDepth      int
		output        string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]...",
		Short: "Render documents to markup",
		Long: `Render YAML or JSON tree documents to XML/HTML.

Each document's markup is written on its own line. With no arguments, or
with "-", the document is read from standard input.

Examples:
  vxml render page.yaml
  cat page.json | vxml render
  vxml render --strip-prefix x: --max-depth 64 a.yaml b.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := &app.cfg.Render
			if len(stripPrefixes) > 0 {
				rc.Tags.StripPrefixes = append(append([]string(nil), stripPrefixes...), rc.Tags.StripPrefixes...)
			}
			if cmd.Flags().Changed("escape-text") {
				rc.EscapeText = escapeText
			}
			if cmd.Flags().Changed("max-depth") {
				if maxDepth < 0 {
					return usageError("--max-depth must not be negative, got %d", maxDepth)
				}
				rc.MaxDepth = maxDepth
			}
			if err := app.cfg.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if len(args) == 0 {
				args = []string{stdinName}
			}
			return app.renderAll(cmd, w, args)
		},
	}

	cmd.Flags().StringArrayVar(&stripPrefixes, "strip-prefix", nil, "Strip a tag prefix such as x: (repeatable)")
	cmd.Flags().BoolVar(&escapeText, "escape-text", false, "Escape text content as well as attribute values")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum element nesting, 0 for no limit")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func (app *cli) renderAll(cmd *cobra.Command, w io.Writer, sources []string) error {
	fn := middleware.Chain(app.renderMiddleware()...)(
		middleware.Renderer(render.NewRenderer(app.cfg.Render.RendererConfig())),
	)

	for _, src := range sources {
		tree, err := app.decode(cmd, src)
		if err != nil {
			return err
		}
		out, err := fn(cmd.Context(), tree)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

func (app *cli) decode(cmd *cobra.Command, src string) (*vdom.Node, error) {
	if src == stdinName {
		return document.Decode("<stdin>", cmd.InOrStdin())
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return document.Decode(src, f)
}

func (app *cli) renderMiddleware() []middleware.Middleware {
	mws := []middleware.Middleware{middleware.Logging(app.logger)}
	if app.cfg.Tracing.Enabled {
		mws = append(mws, middleware.OpenTelemetry(middleware.WithTracerName(app.cfg.Tracing.TracerName)))
	}
	return mws
}
