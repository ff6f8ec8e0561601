package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the snapshot once and report its health",
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Snapshots.Timeout+time.Minute)
	defer cancel()

	if err := dashboard.Reload(ctx); err != nil {
		return err
	}

	status := dashboard.Status()
	overview := dashboard.Overview()

	fmt.Printf("%s📦 Snapshot Loaded%s\n", HeaderStyle, Reset)
	fmt.Printf("%s==================%s\n", DimStyle, Reset)
	fmt.Println()
	fmt.Println(FormatLabelValue("Sources loaded:", fmt.Sprintf("%d", status.Loaded)))
	if len(status.FailedKeys) > 0 {
		fmt.Printf("%sFailed sources:%s %s%v%s\n", LabelStyle, Reset, WarningStyle, status.FailedKeys, Reset)
	}
	fmt.Println(FormatLabelValue("Channels:", fmt.Sprintf("%d", overview.Channels)))
	fmt.Println(FormatLabelValue("Tags:", fmt.Sprintf("%d", overview.Tags)))
	fmt.Println(FormatLabelValue("Views (24h):", fmt.Sprintf("%.0f", overview.Views24h)))
	if overview.GeneratedAt != "" {
		fmt.Println(FormatLabelValue("Generated at:", overview.GeneratedAt))
	}
	return nil
}
