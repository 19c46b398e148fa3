package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/dwitter/internal/client/client"
)

func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printTweets(cmd *cobra.Command, list []client.Tweet) error {
	w := cmd.OutOrStdout()

	if getOutputFormat(cmd) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tCREATED\tTEXT")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t@%s\t%s\t%s\n", t.ID, t.UserName, t.CreatedAt.Local().Format(time.DateTime), t.Text)
	}
	return tw.Flush()
}
