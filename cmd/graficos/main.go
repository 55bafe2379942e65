// Graficos — chart builder dashboard
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/graficos-io/graficos/api"
	"github.com/graficos-io/graficos/internal/chart"
	"github.com/graficos-io/graficos/internal/config"
	"github.com/graficos-io/graficos/internal/demo"
	"github.com/graficos-io/graficos/internal/render"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "graficos",
	Short: "Graficos — chart builder dashboard",
	Long: `Graficos builds line, dual-axis, and bar chart specifications from
tabular data and serves them as a dashboard. Charts can also be exported
as HTML, PNG, or SVG, and the demo dataset can be regenerated on demand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if data, _ := cmd.Flags().GetString("data"); data != "" {
			cfg.Data.Path = data
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("data", "", "data file override (.csv or .xlsx)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Graficos %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (dashboard server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		addr := cfg.Server.Addr()
		fmt.Printf("Starting Graficos dashboard on http://%s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Render Command (chart export) ---

var renderCmd = &cobra.Command{
	Use:   "render [output-dir]",
	Short: "Export the demo charts as HTML, PNG, and SVG files",
	Long: `Build the line, dual-axis, and bar charts over the configured data
(or the demo dataset) and write one HTML, PNG, and SVG file per chart
into the output directory. Charts are exported concurrently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := "charts"
		if len(args) == 1 {
			outDir = args[0]
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}

		tbl, err := api.LoadTable(cfg)
		if err != nil {
			return fmt.Errorf("failed to load table: %w", err)
		}
		specs, err := api.DemoSpecs(tbl, cfg.Charts)
		if err != nil {
			return fmt.Errorf("failed to build charts: %w", err)
		}

		names := []string{"line", "dual", "bar"}
		var g errgroup.Group
		for i, spec := range specs {
			spec := spec
			name := names[i]
			g.Go(func() error { return exportChart(outDir, name, spec) })
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Exported %d charts to %s/\n", len(specs), outDir)
		return nil
	},
}

// exportChart writes one chart as HTML, PNG, and SVG.
func exportChart(dir, name string, spec *chart.Spec) error {
	writers := []struct {
		ext   string
		write func(*os.File) error
	}{
		{".html", func(f *os.File) error { return render.WriteHTML(f, spec) }},
		{".png", func(f *os.File) error { return render.PNG(spec, f) }},
		{".svg", func(f *os.File) error { return render.SVG(spec, f) }},
	}
	for _, wr := range writers {
		path := filepath.Join(dir, name+wr.ext)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := wr.write(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// --- Demo Command (dataset export) ---

var demoCmd = &cobra.Command{
	Use:   "demo [output-file]",
	Short: "Generate the demo dataset and write it as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "demo.csv"
		if len(args) == 1 {
			out = args[0]
		}
		seed, _ := cmd.Flags().GetInt64("seed")

		tbl := demo.NewSeeded(seed).Table()
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		if err := tbl.WriteCSV(f); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d rows to %s\n", tbl.NumRows(), out)
		return nil
	},
}

func init() {
	demoCmd.Flags().Int64("seed", demo.DefaultSeed, "random seed for the generated values")
}

// --- Source Command (builder snippets) ---

var sourceCmd = &cobra.Command{
	Use:   "source [builder]",
	Short: "Print the source snippet for a chart builder",
	Long:  "Print the Go source of a chart builder (line, dual, or bar). Without an argument, lists the available builders.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("Available builders:")
			for _, name := range chart.Sources() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		}
		src, ok := chart.Source(args[0])
		if !ok {
			return fmt.Errorf("no source bundled for builder %q", args[0])
		}
		fmt.Println(src)
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and data summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Graficos — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Printf("  Server:      %s\n", cfg.Server.Addr())
		fmt.Println()

		fmt.Println("  Charts:")
		fmt.Printf("    Points:      %d\n", cfg.Charts.NPoints)
		fmt.Printf("    Tick angle:  %d\n", cfg.Charts.TickAngle)
		fmt.Printf("    Date format: %s\n", cfg.Charts.DateFormat)
		fmt.Println()

		source := "demo generator (seed " + fmt.Sprint(cfg.Demo.Seed) + ")"
		if cfg.Data.Path != "" {
			source = cfg.Data.Path
		}
		fmt.Printf("  Data source: %s\n", source)

		tbl, err := api.LoadTable(cfg)
		if err != nil {
			fmt.Printf("  Data status: error (%v)\n", err)
		} else {
			fmt.Printf("  Data status: %d rows, columns [%s]\n",
				tbl.NumRows(), strings.Join(tbl.ColumnNames(), ", "))
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
