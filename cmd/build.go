package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/blob"
	"github.com/pable/go-nhl-features/internal/config"
	"github.com/pable/go-nhl-features/internal/export"
	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/metrics"
	"github.com/pable/go-nhl-features/internal/model"
	"github.com/pable/go-nhl-features/internal/pipeline"
	"github.com/pable/go-nhl-features/internal/report"
	"github.com/pable/go-nhl-features/internal/storage"
	"github.com/pable/go-nhl-features/internal/store/postgres"
)

var (
	buildIn          string
	buildOut         string
	buildWorkers     int
	buildLegacyScore bool
	buildSkaterStr   bool
	buildMetricsFile string
	buildForce       bool
	buildKeepGoing   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract features for every game file in a directory",
	Long: `Load every *.json play-by-play file in --in, extract the team features, store them
in the SQLite database and write the wide CSV table to --out.

Games already stored with the same file hash and extraction options are not recomputed
unless --force is given.
When postgres_dsn or s3_bucket is configured the rows are also pushed to Postgres and
the CSV is uploaded to the bucket.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	d := config.New()
	buildCmd.Flags().StringVar(&buildIn, "in", d.InputDir, "directory of per-game play-by-play JSON files")
	buildCmd.Flags().StringVar(&buildOut, "out", d.OutputCSV, "CSV output path")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", d.Workers, "games processed concurrently")
	buildCmd.Flags().BoolVar(&buildLegacyScore, "legacy-score-state", false, "advance the score only for goals in the last five minutes")
	buildCmd.Flags().BoolVar(&buildSkaterStr, "skater-strength", false, "classify special-teams goals by skater counts instead of the leading situation digit")
	buildCmd.Flags().StringVar(&buildMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "recompute games that are already stored")
	buildCmd.Flags().BoolVar(&buildKeepGoing, "keep-going", false, "exit 0 even when some games failed")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if err := applyBuildFlags(cmd); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	files, err := pipeline.ListGameFiles(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cWarn.Fprintf(os.Stderr, "No *.json files in %s\n", cfg.InputDir)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	opts := pipeline.Options{
		Workers: cfg.Workers,
		Features: features.Options{
			LegacyScoreState: cfg.LegacyScoreState,
			SkaterStrength:   cfg.SkaterStrength,
		},
	}
	if !buildForce {
		opts.Skip = func(s model.GameSummary) (bool, error) {
			return db.GameExists(s.GameID, s.SourceHash, s.Options)
		}
	}

	m := metrics.NewBuild()
	rep, err := pipeline.New(opts, log, m).Run(ctx, files)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	var (
		rows []postgres.Row
		recs []features.Record
	)
	for _, res := range rep.Results {
		switch {
		case res.Err != nil:
			cError.Fprintf(os.Stderr, "FAILED %s: %v\n", filepath.Base(res.Path), res.Err)
		case res.Skipped:
			rec, err := db.GetRecord(res.GameID)
			if err != nil {
				return fmt.Errorf("load stored game %s: %w", res.GameID, err)
			}
			recs = append(recs, rec)
		default:
			if err := db.SaveGame(res.Summary, res.Record); err != nil {
				return fmt.Errorf("save game %s: %w", res.GameID, err)
			}
			recs = append(recs, res.Record)
			rows = append(rows, postgres.Row{Summary: res.Summary, Record: res.Record})
		}
	}

	if len(recs) > 0 {
		if err := export.WriteCSVFile(cfg.OutputCSV, recs); err != nil {
			return err
		}
		log.Info().Str("path", cfg.OutputCSV).Int("rows", len(recs)).Msg("csv written")
	}

	if err := pushRemote(ctx, rows, len(recs) > 0); err != nil {
		return err
	}

	failed := len(rep.Failed())
	if failed == 0 {
		m.MarkSuccess(time.Now())
	}
	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	columns := 0
	if len(recs) > 0 {
		columns = len(export.Columns(recs))
	}
	report.PrintBuildSummary(os.Stdout, report.BuildStats{
		RunID:     rep.RunID,
		Processed: len(rows),
		Skipped:   rep.Skipped(),
		Failed:    failed,
		Columns:   columns,
		Elapsed:   time.Since(start),
	})

	if failed > 0 && !buildKeepGoing {
		return fmt.Errorf("%d of %d games failed", failed, len(files))
	}
	return nil
}

// applyBuildFlags copies explicitly set build flags over the loaded config
// and revalidates it.
func applyBuildFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	if f.Changed("in") {
		cfg.InputDir = buildIn
	}
	if f.Changed("out") {
		cfg.OutputCSV = buildOut
	}
	if f.Changed("workers") {
		cfg.Workers = buildWorkers
	}
	if f.Changed("legacy-score-state") {
		cfg.LegacyScoreState = buildLegacyScore
	}
	if f.Changed("skater-strength") {
		cfg.SkaterStrength = buildSkaterStr
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = buildMetricsFile
	}
	return cfg.Validate()
}

// pushRemote sends new rows to Postgres and uploads the CSV when the
// respective sinks are configured.
func pushRemote(ctx context.Context, rows []postgres.Row, haveCSV bool) error {
	if cfg.PostgresDSN != "" && len(rows) > 0 {
		pg, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.SaveRows(ctx, rows); err != nil {
			return err
		}
		log.Info().Int("games", len(rows)).Msg("rows pushed to postgres")
	}

	if cfg.S3Bucket != "" && haveCSV {
		up, err := blob.New(ctx, blob.Config{
			Endpoint:       cfg.S3Endpoint,
			Region:         cfg.S3Region,
			Bucket:         cfg.S3Bucket,
			Prefix:         cfg.S3Prefix,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
		if err != nil {
			return err
		}
		key, err := up.UploadFile(ctx, cfg.OutputCSV, "text/csv")
		if err != nil {
			return err
		}
		log.Info().Str("location", up.Location(key)).Msg("csv uploaded")
	}
	return nil
}
