package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/moodline/moodline/clients"
	"github.com/moodline/moodline/config"
	"github.com/moodline/moodline/emotion"
	"github.com/moodline/moodline/logging"
	"github.com/moodline/moodline/storage"
)

func main() {
	// A .env is a developer convenience, its absence is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Root
	log *logrus.Entry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "moodline",
		Short:         "Emotion timeline analysis for speech recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.New(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(newAnalyzeCmd(a), newFetchCmd(a), newConfigCmd(a))
	return root
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var runs int

	cmd := &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Analyze a local recording and print its emotion timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs == 0 {
				runs = a.cfg.Analysis.Runs
			}
			return a.analyzeFile(cmd.Context(), args[0], runs)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 0, "classifier runs per chunk (default from config)")
	return cmd
}

func newFetchCmd(a *app) *cobra.Command {
	var bucket, key string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Analyze recordings stored in S3, one object or a whole prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bucket == "" {
				bucket = a.cfg.Storage.Bucket
			}
			if bucket == "" {
				return errors.New("fetch: no bucket given (--bucket or storage.bucket)")
			}
			if key == "" {
				return errors.New("fetch: --key is required")
			}
			return a.fetchAndAnalyze(cmd.Context(), bucket, key)
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from config)")
	cmd.Flags().StringVar(&key, "key", "", "object key, or prefix to scan")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.Dump()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) newAnalyzer(runs int) *emotion.Analyzer {
	h := clients.NewHTTP(a.cfg.Classifier.Timeout)
	return &emotion.Analyzer{
		Classifier:     clients.NewClassifier(h, a.cfg.Classifier.URL),
		ChunkSeconds:   a.cfg.Analysis.ChunkSeconds,
		OverlapSeconds: a.cfg.Analysis.OverlapSeconds,
		Runs:           runs,
		Log:            a.log,
	}
}

func (a *app) analyzeFile(ctx context.Context, path string, runs int) error {
	an := a.newAnalyzer(runs)

	a.log.WithFields(logrus.Fields{"file": path, "runs": runs}).Info("analyzing recording")
	summary, err := an.AnalyzeFile(ctx, path)
	if err != nil {
		return err
	}
	return a.report(path, summary)
}

func (a *app) fetchAndAnalyze(ctx context.Context, bucket, key string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.cfg.Storage.Region))
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}
	store := storage.NewS3(s3.NewFromConfig(awsCfg), bucket)
	an := a.newAnalyzer(a.cfg.Analysis.StorageRuns)

	dir, err := os.MkdirTemp("", "moodline-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if !storage.LooksLikePrefix(key) {
		path, err := store.Fetch(ctx, key, dir)
		if err != nil {
			return err
		}
		summary, err := an.AnalyzeFile(ctx, path)
		if err != nil {
			return err
		}
		return a.report("s3://"+bucket+"/"+key, summary)
	}

	objs, err := store.List(ctx, key)
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		a.log.WithField("prefix", key).Warn("no recordings under prefix")
		return nil
	}

	// One bad object should not sink a whole prefix scan.
	var failed int
	for _, obj := range objs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := a.log.WithField("key", obj.Key)
		if obj.Size < a.cfg.Storage.MinSizeBytes {
			log.WithField("size", obj.Size).Debug("skipping undersized object")
			continue
		}
		path, err := store.Fetch(ctx, obj.Key, dir)
		if err != nil {
			log.WithError(err).Warn("fetch failed")
			failed++
			continue
		}
		summary, err := an.AnalyzeFile(ctx, path)
		os.Remove(path)
		if err != nil {
			log.WithError(err).Warn("analysis failed")
			failed++
			continue
		}
		if err := a.report("s3://"+bucket+"/"+obj.Key, summary); err != nil {
			return err
		}
	}
	if failed > 0 {
		a.log.WithField("failed", failed).Warn("some objects could not be analyzed")
	}
	return nil
}

// report prints the summary to stdout and persists it under the outputs
// directory. A nil summary means no usable speech was detected.
func (a *app) report(source string, s *emotion.Summary) error {
	if s == nil {
		a.log.WithField("source", source).Warn("no usable speech detected")
		return nil
	}

	runID := uuid.New().String()
	path, err := emotion.WriteSummary(a.cfg.Paths.Outputs, runID, source, s)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"source": source, "output": path}).Info("summary written")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
