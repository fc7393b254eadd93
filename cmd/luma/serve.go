package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/luma-dev/luma"
	"github.com/luma-dev/luma/pkg/observable"
	"github.com/luma-dev/luma/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var addr string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo counter application",
		Long:  `Start a Luma server hosting a small counter demo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			printBanner()
			info("serving demo app on %s", addr)

			app := luma.New(counterFactory(),
				luma.WithAddress(addr),
				luma.WithTitle("Luma Counter"),
				luma.WithLogger(logger),
			)
			err := app.Run(context.Background())
			if err == nil {
				success("server stopped")
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// counter is the demo root component: an observable store with a doubled
// computed property and click handlers mutating the count.
type counter struct {
	store *observable.Store
}

// counterFactory builds the component factory. The store outlives the
// component instances the reconciler creates on each update, so the count
// persists across renders.
func counterFactory() vdom.Factory {
	store := observable.New(observable.Config{
		Data: map[string]any{"count": 0},
		Computed: map[string]observable.ComputedFunc{
			"doubled": func(s *observable.Store) any {
				return s.MustGet("count").(int) * 2
			},
		},
	})
	return func(props vdom.Props) vdom.Component {
		return &counter{store: store}
	}
}

func (c *counter) Render() *vdom.VNode {
	count := c.store.MustGet("count").(int)
	doubled := c.store.MustGet("doubled").(int)

	return vdom.Div(vdom.Class("counter"),
		vdom.H1(vdom.Text("Luma Counter")),
		vdom.P(vdom.Textf("count: %d, doubled: %d", count, doubled)),
		vdom.Button(vdom.OnClick(func() { c.bump(1) }), vdom.Text("+")),
		vdom.Button(vdom.OnClick(func() { c.bump(-1) }), vdom.Text("-")),
	)
}

func (c *counter) bump(delta int) {
	count := c.store.MustGet("count").(int)
	if err := c.store.Set("count", count+delta); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
