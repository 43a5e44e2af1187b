// playersync imports and synchronises player records with the Enteractive CRM.
//
//	playersync [-config file.yaml] [-env staging|production] [-source sample|players.json] [-record] [-report report.json] [-doc]
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/homemade/playersync/sync"
	"go.uber.org/zap"
)

//go:embed config
var configFS embed.FS

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config", "", "extra YAML config layered over the embedded config")
	environment := flag.String("env", "", "api environment, staging or production (default $"+sync.EnvironmentEnvVar+" or staging)")
	source := flag.String("source", "", "player source, \"sample\" or the path of a JSON file")
	record := flag.Bool("record", false, "record Enteractive traffic under testdata/.requests")
	reportFile := flag.String("report", "", "write the run report JSON to this file")
	doc := flag.Bool("doc", false, "print the file source field documentation as CSV and exit")
	flag.Parse()

	var opts []sync.ConfigOption
	if *environment != "" {
		opts = append(opts, sync.ConfigWithEnvironment(*environment))
	}
	if *configFile != "" {
		f, err := sync.ReadConfigFile(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		opts = append(opts, sync.ConfigWithFile(f))
	}

	cfg, err := sync.LoadConfigFromEnvironment(sync.EmbeddedConfig{Root: "config", Files: configFS}, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	switch *source {
	case "":
	case sync.SourceKindSample:
		cfg.Source.Kind = sync.SourceKindSample
	default:
		cfg.Source.Kind = sync.SourceKindFile
		cfg.Source.Path = *source
	}
	if err := cfg.Normalise(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *doc {
		out, err := sync.GenerateFieldDocumentation(cfg).FormatCSV()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(out)
		return 0
	}

	logger, err := sync.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logger.Sync() //nolint:errcheck

	sc := sync.NewSyncContext(cfg,
		sync.WithLogger(logger),
		sync.WithRecordRequests(*record))

	client, err := sync.NewEnteractiveFetcherAndUpdater(sc)
	if err != nil {
		sc.Logger.Error("failed to create Enteractive client", zap.Error(err))
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc.Logger.Info("run started",
		zap.String("environment", cfg.API.Environment),
		zap.String("source", cfg.Source.Kind),
		zap.String("campaign_type", string(cfg.Import.CampaignType)))

	report, runErr := sync.NewRunner(sc, client, sync.NewPlayerSource(sc)).Run(ctx)

	if *reportFile != "" {
		if err := writeReport(*reportFile, report); err != nil {
			sc.Logger.Warn("run report not written", zap.Error(err))
		}
	}

	if runErr != nil {
		sc.Logger.Error("run failed", zap.Error(runErr))
		return 1
	}
	sc.Logger.Info("run finished")
	return 0
}

func writeReport(filename string, report sync.RunReport) error {
	out, err := report.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write run report %s %w", filename, err)
	}
	return nil
}
