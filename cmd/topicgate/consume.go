package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kuandriy/topicgate/internal/config"
	"github.com/kuandriy/topicgate/internal/consumer"
	"github.com/kuandriy/topicgate/internal/persist"
	"github.com/kuandriy/topicgate/internal/queue"
	"github.com/kuandriy/topicgate/internal/timeline"
	"github.com/kuandriy/topicgate/internal/vector"
)

const pollInterval = 200 * time.Millisecond

// streamConsumer is the shape ELDConsumer and ZhaoConsumer both expose:
// a poll loop and a handle on the timeline it built, so runConsume can
// treat either one identically after construction.
type streamConsumer interface {
	Consume(ctx context.Context, pollInterval time.Duration) error
	Timeline() *timeline.Timeline
}

func newConsumeCmd() *cobra.Command {
	args := config.DefaultConsumeArgs()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Replay an event corpus through a streaming topic consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsume(args, verbose)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&args.Event, "event", "", "line-delimited JSON post corpus (required)")
	flags.StringVar(&args.Consumer, "consumer", "", "ELDConsumer or ZhaoConsumer (required)")
	flags.StringVar(&args.Understanding, "understanding", "", "corpus to build a TF-IDF scheme from before detection")
	flags.StringVar(&args.Output, "output", "", "output path (default <event-dir>/.out/<event-basename>)")
	flags.BoolVar(&args.NoCache, "no-cache", false, "rebuild the understanding scheme even if a cached one exists")
	flags.Float64Var(&args.Speed, "speed", args.Speed, "replay speed multiplier")
	flags.Float64Var(&args.SkipMinutes, "skip", 0, "skip this many minutes of event time before replay")
	flags.IntVar(&args.MaxInactivity, "max-inactivity", args.MaxInactivity, "seconds of queue inactivity before stopping")
	flags.Float64Var(&args.MaxTimeMinutes, "max-time", -1, "stop after this many minutes of event time (negative = unbounded)")
	flags.BoolVar(&args.SkipRetweets, "skip-retweets", false, "drop retweets before they reach the consumer")
	flags.BoolVar(&args.SkipUnverified, "skip-unverified", false, "drop posts from unverified accounts")
	flags.Int64Var(&args.Periodicity, "periodicity", args.Periodicity, "recorded in the output config; not read, both consumers poll the queue every 200ms")
	flags.StringVar(&args.Scheme, "scheme", "", `path to a JSON file {"documents": N, "df": {term: count}} (overrides --understanding); the idf command's output file is not in this form`)
	flags.IntVar(&args.MinSize, "min-size", args.MinSize, "minimum cluster size before burst-testing")
	flags.Float64Var(&args.MinBurst, "min-burst", args.MinBurst, "minimum burst score kept by the ELD detector")
	flags.Float64Var(&args.Threshold, "threshold", args.Threshold, "cluster-attach cosine threshold")
	flags.Float64Var(&args.PostRate, "post-rate", args.PostRate, "ZhaoConsumer volume-surge ratio")
	flags.Float64Var(&args.MaxIntraSimilarity, "max-intra-similarity", args.MaxIntraSimilarity, "filters quasi-identical clusters above this intra-similarity")
	flags.Int64Var(&args.FreezePeriod, "freeze-period", args.FreezePeriod, "seconds of inactivity before a cluster freezes")
	flags.BoolVar(&args.LogNutrition, "log-nutrition", false, "log10-scale checkpoint magnitudes before storing them")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")

	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("consumer")

	return cmd
}

func runConsume(args config.ConsumeArgs, verbose bool) error {
	if args.Consumer != "ELDConsumer" && args.Consumer != "ZhaoConsumer" {
		return fmt.Errorf("--consumer must be ELDConsumer or ZhaoConsumer, got %q", args.Consumer)
	}

	log := newLogger(verbose)
	resolved := config.Resolve(args)

	scheme, err := resolveScheme(resolved, log)
	if err != nil {
		return fmt.Errorf("resolve scheme: %w", err)
	}

	f, err := os.Open(resolved.Event)
	if err != nil {
		return fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()

	q := queue.New()
	reader := queue.NewReader(q, log)
	reader.Speed = resolved.Speed
	reader.SkipTime = resolved.SkipTime
	reader.MaxTime = resolved.MaxTime
	reader.SkipRetweets = resolved.SkipRetweets
	reader.SkipUnverified = resolved.SkipUnverified

	var sc streamConsumer
	var nodeType string
	switch resolved.Consumer {
	case "ELDConsumer":
		sc = consumer.NewELDConsumer(q, log, scheme, resolved.ELDConfig())
		nodeType = "TopicalClusterNode"
	case "ZhaoConsumer":
		sc = consumer.NewZhaoConsumer(q, log, scheme, resolved.ZhaoConfig())
		nodeType = "DocumentNode"
	}

	if err := runPipeline(reader, f, q, sc, resolved.MaxInactivity); err != nil {
		return err
	}

	out := config.Output{
		Cmd:      args,
		PCmd:     resolved,
		Timeline: config.SerializeTimeline(sc.Timeline(), "Timeline", nodeType),
	}
	return writeJSON(resolved.OutputPath, out)
}

// runPipeline runs the reader and the consumer concurrently: the reader
// replays src into the queue at the configured speed while the consumer
// drains it. Two independent signals stop the consumer, matching spec.md
// section 5's cancellation model: the reader finishing (EOF, or its own
// max-time budget) gives the consumer a short grace period to drain the
// last few enqueued posts, and a real-time inactivity watchdog stops the
// consumer if the queue sits empty for maxInactivity seconds regardless
// of reader state.
func runPipeline(reader *queue.Reader, src *os.File, q *queue.Queue, sc streamConsumer, maxInactivity int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	readErrCh := make(chan error, 1)
	go func() {
		readErrCh <- reader.Read(ctx, src)
	}()

	go func() {
		if err := <-readErrCh; err != nil && !errors.Is(err, context.Canceled) {
			reader.Log.Warn().Err(err).Msg("reader stopped early")
		}
		time.Sleep(pollInterval * 3)
		cancel()
	}()

	go watchInactivity(ctx, cancel, q, time.Duration(maxInactivity)*time.Second)

	err := sc.Consume(ctx, pollInterval)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume: %w", err)
	}
	return nil
}

// watchInactivity cancels ctx once the queue has been observed empty for
// a continuous maxInactivity duration, polling at the same cadence the
// consumer itself uses. A non-positive maxInactivity disables the
// watchdog (unbounded wait).
func watchInactivity(ctx context.Context, cancel context.CancelFunc, q *queue.Queue, maxInactivity time.Duration) {
	if maxInactivity <= 0 {
		return
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var idle time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if q.Len() == 0 {
				idle += pollInterval
				if idle >= maxInactivity {
					cancel()
					return
				}
			} else {
				idle = 0
			}
		}
	}
}

func resolveScheme(r config.ResolvedConsumeArgs, log zerolog.Logger) (vector.WeightingScheme, error) {
	if r.Scheme != "" {
		persist.RecoverTmpFiles(log, r.Scheme)
		var cached cachedTFIDF
		if err := persist.Load(r.Scheme, &cached); err != nil {
			return nil, fmt.Errorf("load scheme: %w", err)
		}
		return vector.NewTFIDF(cached.Documents, cached.DF), nil
	}

	if r.Understanding == "" {
		return vector.TF{}, nil
	}

	cachePath := understandingCachePath(r.Understanding)
	persist.RecoverTmpFiles(log, cachePath)
	if !r.NoCache && persist.Exists(cachePath) {
		var cached cachedTFIDF
		if err := persist.Load(cachePath, &cached); err == nil {
			return vector.NewTFIDF(cached.Documents, cached.DF), nil
		}
	}

	uf, err := os.Open(r.Understanding)
	if err != nil {
		return nil, fmt.Errorf("open understanding file: %w", err)
	}
	defer uf.Close()

	scheme, err := consumer.BuildTFIDFScheme(uf, r.TokenizerConfig())
	if err != nil {
		return nil, fmt.Errorf("build tfidf scheme: %w", err)
	}

	if err := persist.SaveAtomic(cachePath, cachedTFIDF{Documents: scheme.N, DF: scheme.DF}); err != nil {
		log.Warn().Err(err).Msg("cache understanding scheme")
	}
	return scheme, nil
}

// cachedTFIDF is the on-disk shape of a cached or explicitly supplied
// TF-IDF scheme, matching vector.TFIDF's fields so persist.Load/SaveAtomic
// round-trip it without a custom marshaller.
type cachedTFIDF struct {
	Documents int            `json:"documents"`
	DF        map[string]int `json:"df"`
}

func understandingCachePath(understandingFile string) string {
	dir := filepath.Dir(understandingFile)
	base := filepath.Base(understandingFile)
	return filepath.Join(dir, ".cache", base+".idf.json")
}
