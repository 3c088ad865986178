package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/hrdash/internal/chart"
	"github.com/KaramelBytes/hrdash/internal/dashboard"
	"github.com/KaramelBytes/hrdash/internal/utils"
)

var (
	renData        string
	renFormat      string
	renOutputPath  string
	renChartsDir   string
	renChartFormat string
	renChartWidth  int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard once as text, Markdown, HTML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(renFormat))
		switch format {
		case "text", "md", "markdown", "html", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use text|md|html|json)", renFormat)
		}
		chartFormat, err := chart.ParseFormat(renChartFormat)
		if err != nil {
			return err
		}

		r, path, err := newRenderer(renData)
		if err != nil {
			return err
		}
		page, err := r.Build(path)

		var buf bytes.Buffer
		if err != nil {
			// the error state is still written so the report shows what failed
			if format == "html" {
				_ = dashboard.WriteErrorHTML(&buf, path, err)
			} else if format != "json" {
				_ = dashboard.WriteErrorText(&buf, path, err)
			}
			if buf.Len() > 0 {
				_ = emit(cmd.OutOrStdout(), buf.Bytes())
			}
			return err
		}

		switch format {
		case "html":
			err = dashboard.WriteHTML(&buf, page)
		case "json":
			err = dashboard.WriteJSON(&buf, page)
		default:
			err = dashboard.WriteText(&buf, page)
		}
		if err != nil {
			return err
		}
		if err := emit(cmd.OutOrStdout(), buf.Bytes()); err != nil {
			return err
		}

		if renChartsDir != "" {
			dir, err := utils.ExpandPath(renChartsDir)
			if err != nil {
				return err
			}
			files, err := dashboard.ExportCharts(page, dir, chartFormat, renChartWidth)
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d chart(s) to %s\n", len(files), dir)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: some charts were not written: %v\n", err)
			}
		}
		return nil
	},
}

// emit writes to --output when set, otherwise to w.
func emit(w io.Writer, b []byte) error {
	if renOutputPath == "" {
		_, err := w.Write(b)
		return err
	}
	if err := os.WriteFile(renOutputPath, b, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote dashboard to %s\n", renOutputPath)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renData, "data", "", "dataset path (overrides data_path)")
	renderCmd.Flags().StringVarP(&renFormat, "format", "f", "text", "output format: text|md|html|json")
	renderCmd.Flags().StringVarP(&renOutputPath, "output", "o", "", "optional path to write the dashboard")
	renderCmd.Flags().StringVar(&renChartsDir, "charts-dir", "", "also write every chart as an image into this directory")
	renderCmd.Flags().StringVar(&renChartFormat, "chart-format", "svg", "chart image format: svg|png")
	renderCmd.Flags().IntVar(&renChartWidth, "chart-width", chart.DefaultWidth, "chart image width in pixels")
}
