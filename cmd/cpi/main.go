// Command cpi renders food CPI dashboard pages and downloads the dataset
// without running the HTTP server.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"foodcpi/internal/charts"
	"foodcpi/internal/config"
	"foodcpi/internal/fetchers"
	"foodcpi/internal/loader"
	"foodcpi/internal/mocks"
	"foodcpi/internal/models"
	"foodcpi/internal/reports"
	"foodcpi/internal/selector"
	"foodcpi/internal/storage"
)

type renderOptions struct {
	view      string
	out       string
	data      string
	viewsFile string
	mock      bool
	all       bool
	opts      []string
	cats      []string
	target    string
	year      float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cpi",
		Short:        "Food CPI dashboard tools",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newFetchCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a dashboard view to static HTML and PNG",
		Long: `render writes <view>.html, index.html and <view>.png into the output
directory. With --all every view is rendered along with meta.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.view, "view", "", "View id (default: the catalog's default view)")
	f.StringVarP(&o.out, "out", "o", "out", "Output directory")
	f.StringVar(&o.data, "data", "USDA_75_23_CPI.csv", "Path to the CPI CSV file")
	f.StringVar(&o.viewsFile, "views", "", "Path to a TOML view catalog (default: built-in)")
	f.BoolVar(&o.mock, "mock", false, "Use the synthetic dataset instead of --data")
	f.BoolVar(&o.all, "all", false, "Render every view")
	f.StringArrayVar(&o.opts, "opt", nil, "Checked option key (repeatable)")
	f.StringArrayVar(&o.cats, "cat", nil, "Selected category column (repeatable)")
	f.StringVar(&o.target, "target", "", "Trend target column")
	f.Float64Var(&o.year, "year", 0, "Projection year")
	return cmd
}

func runRender(cmd *cobra.Command, o *renderOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, err := openSource(ctx, o)
	if err != nil {
		return err
	}

	catalog, err := selector.LoadCatalog(o.viewsFile)
	if err != nil {
		return err
	}
	svc, err := reports.NewService(source, catalog)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if o.all {
		snap, err := svc.GenerateSnapshot(ctx, time.Now())
		if err != nil {
			return err
		}
		for name, data := range snap.Files {
			if err := writeOut(o.out, name, data); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d files to %s\n", len(snap.Files), o.out)
		return nil
	}

	viewID := o.view
	if viewID == "" {
		viewID = catalog.DefaultView
	}

	state := models.SelectionState{Checked: o.opts, Categories: o.cats, Target: o.target}
	if cmd.Flags().Changed("year") {
		y := o.year
		state.Number = &y
	}

	page, err := svc.RenderPage(ctx, viewID, state, true)
	if err != nil {
		return err
	}
	for _, name := range []string{viewID + ".html", "index.html"} {
		if err := writeOut(o.out, name, []byte(page)); err != nil {
			return err
		}
	}

	var png bytes.Buffer
	err = svc.RenderChartPNG(ctx, &png, viewID, state)
	switch {
	case err == nil:
		if err := writeOut(o.out, viewID+".png", png.Bytes()); err != nil {
			return err
		}
	case errors.Is(err, reports.ErrNoChart), errors.Is(err, charts.ErrNoData):
		fmt.Fprintf(cmd.ErrOrStderr(), "No chart image for %s: %v\n", viewID, err)
	default:
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", viewID, o.out)
	return nil
}

// openSource returns a loader over the CSV file, or over the synthetic dataset
func openSource(ctx context.Context, o *renderOptions) (*loader.Loader, error) {
	if o.mock {
		mock, err := mocks.NewMockService(ctx, "synthetic.csv")
		if err != nil {
			return nil, err
		}
		return loader.New(mock.Storage(), "synthetic.csv"), nil
	}

	dir, name := filepath.Split(o.data)
	if dir == "" {
		dir = "."
	}
	client, err := storage.NewLocalStorageClient(dir)
	if err != nil {
		return nil, err
	}
	return loader.New(client, name), nil
}

func writeOut(dir, name string, data []byte) error {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	var url, out string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the CPI dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if url == "" {
				cfg, err := config.Load(ctx)
				if err != nil {
					return err
				}
				url = cfg.DataSourceURL
			}

			result, err := fetchers.NewDataFetcher().Fetch(ctx, url)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(out, result.Data, 0644); err != nil {
				return fmt.Errorf("failed to write dataset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d rows to %s\n", result.Table.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Dataset URL (default: $DATA_SOURCE_URL)")
	cmd.Flags().StringVarP(&out, "out", "o", "USDA_75_23_CPI.csv", "Output file")
	return cmd
}
