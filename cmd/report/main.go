package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/google/uuid"

	"github.com/mmoldabe-dev/subtrack/internal/billing"
	"github.com/mmoldabe-dev/subtrack/internal/config"
	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/repository"
	"github.com/mmoldabe-dev/subtrack/internal/service"
	"github.com/mmoldabe-dev/subtrack/internal/storage/postgres"
	"github.com/mmoldabe-dev/subtrack/pkg/logger"
)

type Params struct {
	User     string `descr:"User id (UUID)" positional:"true"`
	Currency string `descr:"Display currency; defaults to DEFAULT_CURRENCY" optional:"true"`
	Period   string `descr:"Trend period" alts:"monthly,weekly" strict:"true" default:"monthly"`
	Count    int    `descr:"Number of trend periods" default:"6"`
}

func main() {
	boa.NewCmdT[Params]("subtrack-report").
		WithShort("Print a user's subscription dashboard").
		WithLong("Prints spend by category, upcoming bills and the spending trend of one user as tables, straight from the database.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, w io.Writer) error {
	userID, err := uuid.Parse(params.User)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	// keep stdout for the tables
	log := logger.SetupLogger("error", cfg.Logger.Format, "subtrack-report")

	conv, err := currency.Load(cfg.Currency.Base, cfg.Currency.RatesFile)
	if err != nil {
		return err
	}
	cur := strings.ToUpper(params.Currency)
	if cur == "" {
		cur = cfg.Currency.Default
	}
	if !conv.IsSupported(cur) {
		return fmt.Errorf("unsupported currency %s", cur)
	}

	db, err := postgres.NewPostgres(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewSubscriptionService(repository.NewSubscriptionRepository(db, log), conv, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := svc.DashboardStats(ctx, userID, cur)
	if err != nil {
		return err
	}
	trends, err := svc.SpendingTrends(ctx, userID, cur, billing.Period(params.Period), params.Count)
	if err != nil {
		return err
	}

	renderReport(w, stats, trends)
	return nil
}
