// Package cmd wires the calculator together from command line flags.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calculator-project/calculator"
	"calculator-project/calculator/fsm"
	"calculator-project/calculator/input"
	"calculator-project/calculator/keypad"
	"calculator-project/clock"
	"calculator-project/display"
	"calculator-project/driver/console"
	"calculator-project/driver/gpio"
	"calculator-project/driver/hal"
)

var (
	displayFlag string
	backendFlag string
	chipFlag    string
	settleFlag  time.Duration
)

func Execute() error {
	root := &cobra.Command{
		Use:   "calculator",
		Short: "Keypad-driven four-function calculator firmware core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run()
		},
	}
	root.Flags().StringVar(&displayFlag, "display", "led", "display variant: led or 7seg")
	root.Flags().StringVar(&backendFlag, "backend", "console", "hardware backend: console or gpio")
	root.Flags().StringVar(&chipFlag, "chip", "gpiochip0", "GPIO chip name (gpio backend)")
	root.Flags().DurationVar(&settleFlag, "settle", 0, "keypad column settle delay (default per variant)")
	return root.Execute()
}

func run() error {
	variant, err := parseVariant(displayFlag)
	if err != nil {
		return err
	}
	clk := clock.New()

	var keypadPort hal.KeypadPort
	var displayPort hal.DisplayPort
	switch backendFlag {
	case "console":
		port, err := console.Open(variant)
		if err != nil {
			return err
		}
		defer port.Close()
		// Raw mode disables \n to \r\n translation; route logs through
		// the simulator so they stay aligned with the rendered display.
		log.SetOutput(port.LogWriter())
		defer log.SetOutput(os.Stderr)
		keypadPort, displayPort = port, port
	case "gpio":
		pins := gpio.DefaultPins()
		pins.Chip = chipFlag
		if variant == calculator.VariantBinary {
			pins.SelectTens, pins.SelectUnits = -1, -1
		}
		port, err := gpio.Open(pins)
		if err != nil {
			return err
		}
		defer port.Close()
		keypadPort, displayPort = port, port
	default:
		return fmt.Errorf("unknown backend %q", backendFlag)
	}

	cfg := keypad.DefaultConfig()
	// The 7-segment variant scans faster so multiplexing stays flicker
	// free between sweeps.
	if variant == calculator.VariantDecimal {
		cfg.SettleDelay = time.Millisecond
	}
	if settleFlag > 0 {
		cfg.SettleDelay = settleFlag
	}
	scanner := keypad.New(keypadPort, clk, cfg)

	var pres display.Presenter
	if variant == calculator.VariantBinary {
		pres = display.NewBinary(displayPort, clk)
	} else {
		pres = display.NewSevenSeg(displayPort, clk)
	}

	acq := input.NewAcquirer(scanner, pres, clk)
	session := fsm.New(variant, scanner, acq, pres, clk)
	if err := session.Run(); err != nil {
		if errors.Is(err, console.ErrQuit) {
			log.Println("Simulator quit")
			return nil
		}
		return err
	}
	return nil
}

func parseVariant(s string) (calculator.Variant, error) {
	switch s {
	case "led", "binary":
		return calculator.VariantBinary, nil
	case "7seg", "decimal":
		return calculator.VariantDecimal, nil
	default:
		return calculator.VariantBinary, fmt.Errorf("unknown display variant %q", s)
	}
}
