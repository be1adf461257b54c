package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-ats/internal/analyses"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			repo, closeDB, err := openHistory(ctx, cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := repo.List(ctx, limit, 0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No saved reports.")
				return nil
			}
			return writeHistory(out, items)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", analyses.DefaultListLimit, "number of reports to show")
	return cmd
}

func writeHistory(out io.Writer, items []analyses.Analysis) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tATS\tJD MATCH\tLEVEL\tFILE")
	for _, a := range items {
		jd := "-"
		if a.JDMatchScore != nil {
			jd = fmt.Sprintf("%.2f", *a.JDMatchScore)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
			a.ID,
			a.CreatedAt.Local().Format(time.DateTime),
			a.ATSScore,
			jd,
			a.Result.Interpretations.ATSScore.Level,
			a.FileName,
		)
	}
	return tw.Flush()
}
