package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/m04kA/SMC-BookingPortal/internal/cli"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

var CLI struct {
	Version  kong.VersionFlag
	OpsAPI   string        `name:"ops-api" help:"Operations API base URL." env:"PORTAL_OPSAPI_URL" default:"http://localhost:8000"`
	Portal   string        `help:"Booking portal base URL." env:"PORTAL_URL" default:"http://localhost:8080"`
	Timezone string        `help:"Calendar time zone." env:"PORTAL_TIMEZONE" default:"Europe/London"`
	Timeout  time.Duration `help:"Operations API timeout." default:"10s"`
	Debug    bool          `help:"Log requests to stderr."`

	Week  cli.WeekCmd  `cmd:"" help:"Show a week calendar."`
	Slots cli.SlotsCmd `cmd:"" help:"List the slots of a day for a service."`
	Book  cli.BookCmd  `cmd:"" help:"Book a cleaning through the portal."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("portalctl"),
		kong.Description("Cleaning booking portal companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	level := log.WarnLevel
	if CLI.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "portalctl",
	})

	loc, err := time.LoadLocation(CLI.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown time zone %q: %v\n", CLI.Timezone, err)
		os.Exit(1)
	}

	portal, err := cli.NewPortalClient(CLI.Portal, CLI.Timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Ops:    opsapi.NewClient(CLI.OpsAPI, CLI.Timeout, loc, cli.NewOpsLogger(logger), nil),
		Portal: portal,
		Loc:    loc,
		Log:    logger,
		Out:    os.Stdout,
		Now:    time.Now,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
