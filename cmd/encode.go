package cmd

import (
	"fmt"

	"github.com/smazurov/lightsd/internal/lights"
	"github.com/spf13/cobra"
)

// CreateEncodeCmd creates the encode command, which prints what a request
// would write without touching any device.
func CreateEncodeCmd() *cobra.Command {
	var flash string
	var on, off uint32

	cmd := &cobra.Command{
		Use:     "encode <color>",
		Short:   "Print the brightness and engine program for a color",
		Example: "  lightsd encode '#00ff00' --flash timed --on 500 --off 2000",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			state, err := buildState(args[0], flash, on, off)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "color:      %s\n", lights.FormatColor(state.Color))
			fmt.Fprintf(out, "lit:        %t\n", lights.IsLit(state))
			fmt.Fprintf(out, "brightness: %d\n", lights.Brightness(state))
			if state.FlashMode == lights.FlashTimed && on > 0 && off > 0 {
				fmt.Fprintf(out, "program:    %s\n", lights.FlashPattern(on, off))
			} else {
				fmt.Fprintf(out, "program:    none (solid)\n")
			}
			return nil
		},
	}

	addFlashFlags(cmd, &flash, &on, &off)
	return cmd
}
