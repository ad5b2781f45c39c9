package main

import (
	"fmt"
	"strconv"

	"github.com/callebjorkell/neostrip/internal/neopixel"
	"github.com/callebjorkell/neostrip/internal/pixel"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	configFile := ""
	rootCmd := &cobra.Command{
		Use:   "neostrip",
		Short: "Drive WS281x/SK6812 LED strips over SPI",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Lookup("debug").Changed {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDemoCmd(&configFile))
	rootCmd.AddCommand(newClearCmd(&configFile))
	rootCmd.PersistentFlags().Bool("debug", false, "Turn on debug logging.")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Strip configuration file.")

	return rootCmd
}

var (
	buildTime    = "unknown"
	buildVersion = "dev"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
		},
	}
}

func newClearCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Black out all configured strips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(*configFile)
			if err != nil {
				return err
			}
			led, err := buildController(conf)
			if err != nil {
				return err
			}
			return led.Close()
		},
	}
}

func newDemoCmd(configFile *string) *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run one of the demo animations",
	}

	demoCmd.AddCommand(&cobra.Command{
		Use:   "rainbow",
		Short: "Scroll a rainbow across the strips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(*configFile)
			if err != nil {
				return err
			}
			led, err := buildController(conf)
			if err != nil {
				return err
			}
			defer led.Close()
			return led.Rainbow()
		},
	})

	demoCmd.AddCommand(&cobra.Command{
		Use:   "wipe [color]",
		Short: "Wipe a color across the strips (hex RGB, default red)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color := pixel.New(255, 0, 0)
			if len(args) == 1 {
				v, err := strconv.ParseUint(args[0], 16, 32)
				if err != nil {
					return fmt.Errorf("invalid color %q: %w", args[0], err)
				}
				color = pixel.Pixel(v)
			}

			conf, err := readConfig(*configFile)
			if err != nil {
				return err
			}
			led, err := buildController(conf)
			if err != nil {
				return err
			}
			defer led.Close()
			return led.Wipe(color)
		},
	})

	demoCmd.AddCommand(&cobra.Command{
		Use:   "touch",
		Short: "Drive the strips from the touch pads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(*configFile)
			if err != nil {
				return err
			}
			return startTouchDemo(conf)
		},
	})

	return demoCmd
}

func buildController(conf *Config) (*neopixel.LedController, error) {
	led, err := neopixel.NewLedController(conf.StripConfigs()...)
	if err != nil {
		return nil, err
	}

	led.SetBrightness(conf.Brightness)
	if conf.Power.Milliamps > 0 {
		led.SetMaxPowerInVoltsAndMilliamps(conf.Power.Volts, conf.Power.Milliamps)
	}
	if conf.MaxRefreshRate > 0 {
		led.SetMaxRefreshRate(conf.MaxRefreshRate)
	}
	if conf.Gamma != 0 {
		led.SetGammaFactor(conf.Gamma)
	}

	return led, nil
}
