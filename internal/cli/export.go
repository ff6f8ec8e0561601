package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/export"
)

var (
	exportPeriod string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Export a dataset as CSV",
	Long: `Export a dataset as CSV. Datasets: ranking, videos, top, benchmark,
predictions, periods, keywords, share, words. Exports cover the full
filtered set, never a single page.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportPeriod, "period", "P", "24h", "Period for period-sensitive datasets")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to the dataset's filename)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := loadSnapshot(); err != nil {
		return err
	}

	var doc export.Document
	var err error

	switch args[0] {
	case "share":
		doc = dashboard.ExportShare(exportPeriod)
	case "words":
		doc = dashboard.ExportTopWords()
	default:
		doc, err = dashboard.Export(args[0], exportPeriod)
		if err != nil {
			return err
		}
	}

	out := exportOut
	if out == "" {
		out = doc.Filename
	}

	if err := os.WriteFile(out, []byte(doc.Content), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("%s✅ Exported %s to %s%s (id %s)\n", SuccessStyle, args[0], out, Reset, FormatMeta(doc.ID))
	return nil
}
