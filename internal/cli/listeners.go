package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListenersCmd(opts *Options) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "listeners",
		Short: "List the listeners installed from config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			infos := rt.reg.Listeners()
			if target != "" {
				infos = rt.reg.ListenersFor(target)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OWNER\tTARGET\tSIGNAL")
			for _, l := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Owner, l.Target, l.Signal)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Only list listeners filed under this target")
	return cmd
}
