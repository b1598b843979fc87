package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
)

const defaultConfigPath = "collective.toml"

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [config.toml]\n", os.Args[0])
		os.Exit(1)
	}
	path := defaultConfigPath
	if len(os.Args) == 2 {
		path = os.Args[1]
	}
	cfg, err := loadConfig(path)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	level, _ := cfg.logLevel()

	// slog handler on top of the PTerm logger, at the configured level
	logger := slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(level)))

	pterm.Info.Printfln("Running %d ranks on a %dx%d torus over %s", cfg.Rows*cfg.Cols, cfg.Rows, cfg.Cols, cfg.Transport)
	spinner, _ := pterm.DefaultSpinner.Start("Exchanging values between the ranks...")
	reports, err := run(cfg, logger)
	if err != nil {
		spinner.Fail()
		logger.Error("exchange failed", "err", err)
		os.Exit(1)
	}
	spinner.Success()
	if err := printReports(reports, cfg.Root); err != nil {
		logger.Error("could not render the results", "err", err)
		os.Exit(1)
	}
}
