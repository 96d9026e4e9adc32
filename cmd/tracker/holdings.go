package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
)

type setCmd struct {
	amount     string
	buyPrice   string
	alertAbove string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "add or update a holding" }
func (*setCmd) Usage() string {
	return `tracker set -amount <n> -buy <price> [-alert <price>] <asset-id>

  Adds the holding, or replaces the existing one keeping its position.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "amount of the asset held")
	f.StringVar(&c.buyPrice, "buy", "", "buy price per unit in the primary currency")
	f.StringVar(&c.alertAbove, "alert", "", "alert when the price rises above this value")
}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" || c.buyPrice == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	record, err := c.record()
	if err != nil {
		return fail("%v", err)
	}

	e, err := openEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer e.Close()

	created, err := e.holdingsService().Upsert(ctx, id, record)
	if err != nil {
		return fail("%v", err)
	}
	if created {
		fmt.Printf("Added %s\n", id)
	} else {
		fmt.Printf("Updated %s\n", id)
	}
	return subcommands.ExitSuccess
}

func (c *setCmd) record() (model.HoldingRecord, error) {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return model.HoldingRecord{}, fmt.Errorf("invalid -amount: %w", err)
	}
	buyPrice, err := decimal.NewFromString(c.buyPrice)
	if err != nil {
		return model.HoldingRecord{}, fmt.Errorf("invalid -buy: %w", err)
	}
	record := model.HoldingRecord{Amount: amount, BuyPrice: buyPrice}
	if c.alertAbove != "" {
		alert, err := decimal.NewFromString(c.alertAbove)
		if err != nil {
			return model.HoldingRecord{}, fmt.Errorf("invalid -alert: %w", err)
		}
		record.AlertAbove = &alert
	}
	return record, nil
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a holding" }
func (*removeCmd) Usage() string {
	return `tracker remove <asset-id>
`
}

func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer e.Close()

	if err := e.holdingsService().Remove(ctx, f.Arg(0)); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Removed %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type importCmd struct {
	from string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the configured holdings with a holdings file" }
func (*importCmd) Usage() string {
	return `tracker import -from <portfolio.json>

  Copies every holding of the file, in order, into the configured store.
  Typically used with HOLDINGS_BACKEND=sqlite to migrate a JSON file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "holdings file to import")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	holdings, err := repository.NewJSONHoldingsRepository(c.from).Load(ctx)
	if err != nil {
		return fail("%v", err)
	}

	e, err := openEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer e.Close()

	if err := e.holdingsService().Replace(ctx, holdings); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Imported %d holdings into the %s store\n", len(holdings), e.cfg.Holdings.Backend)
	return subcommands.ExitSuccess
}
