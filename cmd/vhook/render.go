package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vhook/internal/config"
	"github.com/vango-dev/vhook/internal/demo"
	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/render"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
)

func renderCmd() *cobra.Command {
	var (
		app        string
		pretty     bool
		configPath string
		clicks     []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of a demo app",
		Long: `Mount a demo app on an in-memory document and print its HTML.

Clicks can be simulated on elements by their id attribute before the
output is printed.

Examples:
  vhook render
  vhook render --app counter --pretty
  vhook render --app counter --click inc --click inc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Render.Pretty = pretty
			}
			return runRender(cmd.OutOrStdout(), cfg, app, clicks)
		},
	}

	cmd.Flags().StringVarP(&app, "app", "a", demo.DefaultApp, "Demo app to render")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML output")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vhook.json or vhook.yaml")
	cmd.Flags().StringArrayVar(&clicks, "click", nil, "Click the element with this id before printing (repeatable)")

	return cmd
}

func runRender(w io.Writer, cfg *config.Config, app string, clicks []string) error {
	component, err := demo.Lookup(app)
	if err != nil {
		return err
	}

	doc := memdom.NewDocument()
	root := doc.NewRoot("div")
	eng := engine.New(doc, engine.WithHookOrderCheck(cfg.Debug))
	if err := eng.Mount(component, root); err != nil {
		return err
	}

	for _, id := range clicks {
		target := root.Find(byIDAttr(id))
		if target == nil {
			return fmt.Errorf("no element with id %q", id)
		}
		memdom.Dispatch(target, "click", "")
	}

	renderer := render.NewRenderer(render.RendererConfig{
		Pretty: cfg.Render.Pretty,
		Indent: cfg.Render.Indent,
	})
	if err := renderer.RenderChildren(w, root); err != nil {
		return err
	}
	if !cfg.Render.Pretty {
		fmt.Fprintln(w)
	}
	return nil
}

func byIDAttr(id string) func(*memdom.Element) bool {
	return func(e *memdom.Element) bool {
		v, _ := e.Prop("id")
		return v == id
	}
}
