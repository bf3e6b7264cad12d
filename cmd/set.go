package cmd

import (
	"fmt"

	"github.com/smazurov/lightsd/internal/config"
	"github.com/smazurov/lightsd/internal/lights"
	"github.com/smazurov/lightsd/internal/logging"
	"github.com/spf13/cobra"
)

type setOptions struct {
	Config    string
	Hardware  string `toml:"device.hardware" env:"HARDWARE"`
	SysfsRoot string `toml:"device.sysfs_root" env:"SYSFS_ROOT"`
	Flash     string
	On        uint32
	Off       uint32
}

// CreateSetCmd creates the set command, which applies one request to one
// light and exits. The status is printed even when the write fails.
func CreateSetCmd() *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <light> <color>",
		Short: "Set one light and exit",
		Long: `Applies a single request through the same controller the daemon uses. ` +
			`Color is #RRGGBB, #AARRGGBB or 0xAARRGGBB. The battery and notifications ` +
			`lights share one LED, so a one-shot set does not see requests made by a running daemon.`,
		Example:      "  lightsd set notifications '#00ff00' --flash timed --on 500 --off 2000",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, c); err != nil {
				return err
			}
			file, err := config.LoadFile(opts.Config)
			if err != nil {
				return err
			}
			logging.Initialize(file.Logging)
			logger := logging.GetLogger("lights")

			state, err := buildState(args[1], opts.Flash, opts.On, opts.Off)
			if err != nil {
				return err
			}

			dev := OpenDevice(opts.Hardware, opts.SysfsRoot, file.Paths, nil, logger)
			setErr := dev.Table.Set(args[0], state)
			status := lights.Status(setErr)
			fmt.Fprintf(c.OutOrStdout(), "%s: status %d\n", args[0], status)
			return setErr
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringVar(&opts.Hardware, "hardware", "", "Hardware identifier, detected from the device tree when empty")
	cmd.Flags().StringVar(&opts.SysfsRoot, "sysfs-root", "", "Prefix for every sysfs path")
	addFlashFlags(cmd, &opts.Flash, &opts.On, &opts.Off)
	return cmd
}

func addFlashFlags(cmd *cobra.Command, mode *string, on, off *uint32) {
	cmd.Flags().StringVar(mode, "flash", "none", "Flash mode (none, timed, hardware)")
	cmd.Flags().Uint32Var(on, "on", 0, "Flash on time in milliseconds")
	cmd.Flags().Uint32Var(off, "off", 0, "Flash off time in milliseconds")
}

func buildState(color, flash string, on, off uint32) (lights.State, error) {
	c, err := lights.ParseColor(color)
	if err != nil {
		return lights.State{}, err
	}
	mode, err := lights.ParseFlashMode(flash)
	if err != nil {
		return lights.State{}, err
	}
	return lights.State{Color: c, FlashMode: mode, FlashOnMS: on, FlashOffMS: off}, nil
}
