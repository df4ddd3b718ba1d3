package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bestbet-labs/daily-bets/internal/analysis"
	"github.com/bestbet-labs/daily-bets/internal/oddsapi"
	"github.com/bestbet-labs/daily-bets/internal/pipeline"
	"github.com/bestbet-labs/daily-bets/internal/sports"
	"github.com/bestbet-labs/daily-bets/internal/store"
	"github.com/bestbet-labs/daily-bets/pkg/config"
	"github.com/bestbet-labs/daily-bets/pkg/database"
	"github.com/bestbet-labs/daily-bets/pkg/logger"
)

func main() {
	cleanup := flag.Bool("cleanup", false, "delete bets older than one day for the selected sports after the run")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "error: an explicit sport is required (valid: %s)\n", strings.Join(sports.ValidNames(), ", "))
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	// Validate every requested sport before doing any work.
	var selected []sports.Config
	for _, name := range flag.Args() {
		sport, err := sports.ForName(name, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		selected = append(selected, sport)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.WithError(err).Error("Failed to create database pool")
		os.Exit(1)
	}
	defer db.Close()

	betStore := store.New(db, log)
	oddsClient := oddsapi.NewClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsRateLimit, cfg.HTTPTimeout, log)

	ctx := context.Background()

	// Sports run sequentially and independently: a failed sweep for one
	// never blocks the others, and only an inconsistent identity index
	// stops the process.
	for _, sport := range selected {
		analyzer := analysis.NewClient(sport.AnalysisURL, cfg.CircuitBreakerThreshold, cfg.HTTPTimeout, log)
		p := pipeline.New(sport, oddsClient, analyzer, betStore, cfg, log)

		if err := p.Run(ctx); err != nil {
			var dup *pipeline.DuplicateKeyError
			if errors.As(err, &dup) {
				log.WithField("sport", sport.Name).WithError(err).Fatal("Identity index is inconsistent, refusing to run")
			}
			log.WithField("sport", sport.Name).WithError(err).Error("Sweep aborted")
		}
	}

	if *cleanup {
		for _, sport := range selected {
			deleted, err := betStore.DeleteOldBets(ctx, sport.BetsTable)
			if err != nil {
				log.WithField("sport", sport.Name).WithError(err).Error("Cleanup failed")
				continue
			}
			log.WithFields(logrus.Fields{
				"sport":   sport.Name,
				"deleted": deleted,
			}).Info("Deleted old bets")
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: dailybets [-cleanup] <sport> [<sport>...]\nvalid sports: %s\n", strings.Join(sports.ValidNames(), ", "))
}
