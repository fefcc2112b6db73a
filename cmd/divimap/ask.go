package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/divimap/internal/session"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <instrucción>",
	Short: "Apply one instruction to the initial view and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := buildLogger("ask", os.Stderr)
		features, err := loadFeatures(cfg, &log)
		if err != nil {
			return err
		}
		sess, err := newSession(cfg, features, &log)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		res, err := sess.Submit(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), session.StatusFor(err).Message)
			return err
		}

		if askJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Fprintln(out, res.Status.Message)
		sum := res.Summary
		for _, f := range sum.Filters {
			fmt.Fprintf(out, "  %s: %s\n", f.Field, f.Value)
		}
		for _, name := range sum.Results {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		if pt := sum.Point; pt != nil {
			fmt.Fprintf(out, "  X: %v  Y: %v  EPSG: %d\n", pt.X, pt.Y, pt.EPSG)
			for _, name := range pt.Within {
				fmt.Fprintf(out, "  en %s\n", name)
			}
			if pt.H3Cell != "" {
				fmt.Fprintf(out, "  H3: %s\n", pt.H3Cell)
			}
		}
		st := res.State
		fmt.Fprintf(out, "Vista: centro %v, %v  zoom %d  %d polígonos\n", st.Center.Lat, st.Center.Lon, st.Zoom, len(st.Overlay))
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the outcome as JSON")
	rootCmd.AddCommand(askCmd)
}
