package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigd/internal/suggest"
)

func newEmitCmd(opts *Options) *cobra.Command {
	var bestEffort bool
	cmd := &cobra.Command{
		Use:   "emit <target> <signal> [json-data]",
		Short: "Install configured hooks and emit one signal",
		Example: "  sigd emit users deleted '{\"id\":1}'\n" +
			"  sigd emit apps removed --best-effort",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, sig := args[0], args[1]
			data, err := parseData(args[2:])
			if err != nil {
				return err
			}
			rt, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			matched := rt.reg.Count(target, sig)
			if matched == 0 {
				msg := fmt.Sprintf("no listeners for %s/%s", target, sig)
				if s, ok := suggest.Closest(sig, rt.reg.Signals(target), suggest.DefaultDistance(sig)); ok {
					msg += fmt.Sprintf(" (did you mean %q?)", s)
				}
				_, err := fmt.Fprintln(out, msg)
				return err
			}
			if bestEffort {
				rt.reg.EmitBestEffort(target, sig, data)
			} else if err := rt.reg.EmitStrict(target, sig, data); err != nil {
				return fmt.Errorf("emit %s/%s: %w", target, sig, err)
			}
			_, err = fmt.Fprintf(out, "emitted %s/%s to %d listener(s)\n", target, sig, matched)
			return err
		},
	}
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "Ignore listener errors and keep invoking the rest")
	return cmd
}

