package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/presenter"
)

type showCmd struct {
	style string
	watch int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "refresh quotes and display the portfolio dashboard" }
func (*showCmd) Usage() string {
	return `tracker show [-style <style>] [-w n]

  Loads the holdings, fetches current quotes and displays the dashboard.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.style, "style", "", "glamour style (dark, light, notty); detected from the terminal when empty")
	f.IntVar(&c.watch, "w", 0, "refresh every n seconds")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer e.Close()

	portfolio := e.portfolioService()
	for {
		var dash presenter.Dashboard
		valuation, err := portfolio.Refresh(ctx)
		if err != nil {
			dash = presenter.ErrorDashboard(err, portfolio.Currencies(), time.Now())
		} else {
			dash = presenter.NewDashboard(valuation)
		}

		out, rerr := presenter.RenderTerminal(dash, c.style)
		if rerr != nil {
			return fail("%v", rerr)
		}
		if c.watch > 0 {
			fmt.Print("\033[2J\033[H")
		}
		fmt.Print(out)

		if c.watch <= 0 {
			if err != nil {
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		}

		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(time.Duration(c.watch) * time.Second):
		}
	}
}

