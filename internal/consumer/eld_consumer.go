// Package consumer implements the two streaming topic-detection
// orchestrators, ELDConsumer and ZhaoConsumer, each wiring the burst,
// cluster, nutrition, timeline and normalize packages into the end-to-end
// pipeline spec.md section 4.8/4.9 describes. Grounded on
// original_source/lib/queues/consumers/algorithms/{eld_consumer,zhao_consumer}.py,
// and on the teacher's internal/gate.Gate.ProcessPrompt for the Go
// orchestration shape: a single entry point that loads state, mutates it
// in well-defined steps, and persists the result, here adapted to a
// streaming poll loop over a queue rather than one-shot request/response.
package consumer

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/kuandriy/topicgate/internal/burst"
	"github.com/kuandriy/topicgate/internal/cluster"
	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/nutrition"
	"github.com/kuandriy/topicgate/internal/queue"
	"github.com/kuandriy/topicgate/internal/timeline"
	"github.com/kuandriy/topicgate/internal/vector"
)

// ELDConfig holds every tunable threshold for the ELD consumer, per
// spec.md section 4.8's parameter list.
type ELDConfig struct {
	TimeWindow         int64   // checkpoint size in seconds
	Sets               int     // historic checkpoints consulted
	MinSize            int     // minimum cluster size for burst-testing
	Cooldown           int64   // minimum seconds between re-tests of a cluster
	MaxIntraSimilarity float64 // filters quasi-identical (retweet-spam) clusters
	MinBurst           float64
	LogNutrition       bool

	ClusterThreshold float64 // cluster-attach cosine threshold
	FreezePeriod     int64

	TimelineExpiry        int64
	TimelineMinSimilarity float64
}

// DefaultELDConfig returns the "typical" values spec.md section 4.8 lists.
func DefaultELDConfig() ELDConfig {
	return ELDConfig{
		TimeWindow:            60,
		Sets:                  10,
		MinSize:               3,
		Cooldown:              1,
		MaxIntraSimilarity:    0.8,
		MinBurst:              0.5,
		LogNutrition:          false,
		ClusterThreshold:      0.5,
		FreezePeriod:          20,
		TimelineExpiry:        90,
		TimelineMinSimilarity: 0.6,
	}
}

// ELDConsumer is the feature-pivot (term-burst) streaming consumer.
type ELDConsumer struct {
	Queue  *queue.Queue
	Log    zerolog.Logger
	Config ELDConfig

	Scheme          vector.WeightingScheme
	TokenizerConfig normalize.TokenizerConfig
	CleanerConfig   normalize.CleanerConfig
	Summarizer      Summarizer

	store      *nutrition.Store
	buffer     []*vector.Document
	clustering *cluster.Clusterer
	tdt        *burst.ELD
	tl         *timeline.Timeline

	lastCheckpoint int64
	haveCheckpoint bool
}

// NewELDConsumer wires a fresh nutrition store, clusterer, burst detector
// and timeline for the given config.
func NewELDConsumer(q *queue.Queue, log zerolog.Logger, scheme vector.WeightingScheme, cfg ELDConfig) *ELDConsumer {
	store := nutrition.New()
	return &ELDConsumer{
		Queue:           q,
		Log:             log,
		Config:          cfg,
		Scheme:          scheme,
		TokenizerConfig: normalize.DefaultTokenizerConfig(),
		CleanerConfig:   normalize.DefaultCleanerConfig(),
		Summarizer:      LogSummarizer{},
		store:           store,
		clustering:      cluster.NewClusterer(cfg.ClusterThreshold, cfg.FreezePeriod, false),
		tdt:             burst.NewELD(store),
		tl:              timeline.New(cfg.TimelineExpiry, cfg.TimelineMinSimilarity, nil, newTopicalClusterNode),
	}
}

// Timeline returns the consumer's topical-cluster timeline, for callers
// that need to serialise the pipeline's final state once the run ends.
func (c *ELDConsumer) Timeline() *timeline.Timeline {
	return c.tl
}

// newTopicalClusterNode returns an empty node; Timeline.Add then adds the
// triggering cluster/topic pair to it.
func newTopicalClusterNode(createdAt int64, _ any) timeline.Node {
	return timeline.NewTopicalClusterNode(createdAt, nil, nil)
}

// Consume drains the queue until ctx is cancelled, polling every
// pollInterval when the queue is empty. It mirrors eld_consumer.py's
// _consume loop: checkpoint emission can fire multiple times per
// iteration to catch up on backlogs, clusters are filtered before being
// tested for bursts, and a timeline node is summarised exactly once, the
// first time it is observed expired.
func (c *ELDConsumer) Consume(ctx context.Context, pollInterval time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		posts := c.Queue.DequeueAll()
		if len(posts) == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollInterval):
			}
			continue
		}

		c.process(posts)
	}
}

func (c *ELDConsumer) process(posts []normalize.Post) {
	var valid []normalize.Post
	for _, p := range posts {
		if normalize.Valid(p) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return
	}

	documents := make([]*vector.Document, 0, len(valid))
	for _, p := range valid {
		documents = append(documents, c.toDocument(p))
	}

	latest := latestTimestamp(documents)
	c.buffer = append(c.buffer, documents...)

	if !c.haveCheckpoint {
		ts, _ := documents[0].TimeAttr("timestamp")
		c.lastCheckpoint = ts
		c.haveCheckpoint = true
	}

	for latest-c.lastCheckpoint >= c.Config.TimeWindow {
		c.lastCheckpoint += c.Config.TimeWindow
		c.createCheckpoint(c.lastCheckpoint)
		c.removeOldCheckpoints(c.lastCheckpoint)
	}

	var overdue int
	var fresh []*vector.Document
	for _, d := range documents {
		ts, _ := d.TimeAttr("timestamp")
		if latest-ts >= c.Config.TimeWindow {
			overdue++
			continue
		}
		fresh = append(fresh, d)
	}
	if overdue > 10 {
		c.Log.Warn().Int("count", overdue).Int64("timestamp", latest-c.Config.TimeWindow).Msg("skipping overdue tweets")
	}

	clusters := c.clustering.Cluster(fresh, "timestamp")
	clusters = c.filterClusters(clusters, latest)
	for _, cl := range clusters {
		terms := c.detectTopics(cl, latest)
		if len(terms) == 0 {
			continue
		}
		if len(terms) > 2 || maxValue(terms) > 0.8 {
			cl.Attributes["bursty"] = true
			topic := vector.New(terms).Normalise()
			c.Log.Debug().Str("cluster_id", cl.ID).Int("size", cl.Size()).Msg("cluster went bursty")
			c.tl.Add(latest, timeline.ClusterTopic{Cluster: cl, Topic: topic})
		}
	}

	c.closeExpiredNode(latest)
}

func (c *ELDConsumer) toDocument(p normalize.Post) *vector.Document {
	text := normalize.FullText(p)
	tokens := normalize.Tokenize(text, c.TokenizerConfig)
	doc := c.Scheme.Create(text, tokens)
	if id := p.String("id_str"); id != "" {
		doc.SetAttr("id", id)
	}
	doc.SetAttr("urls", len(p.URLs()))
	if ts, ok := normalize.TimestampSeconds(p); ok {
		doc.SetAttr("timestamp", ts)
	}
	doc.SetAttr("tweet", p)
	doc.Normalise()
	return doc
}

func latestTimestamp(documents []*vector.Document) int64 {
	var latest int64
	for i, d := range documents {
		ts, _ := d.TimeAttr("timestamp")
		if i == 0 || ts > latest {
			latest = ts
		}
	}
	return latest
}

// createCheckpoint re-sorts the buffer by event time, keeps only documents
// published at or before timestamp (the rest stay buffered for a later
// checkpoint, tolerating out-of-order arrival), and stores a
// checkpoint built from whatever remains.
func (c *ELDConsumer) createCheckpoint(timestamp int64) {
	due, pending := partitionByTimestamp(c.buffer, timestamp)
	c.buffer = pending

	if len(due) == 0 {
		c.store.Add(timestamp, map[string]float64{})
		return
	}

	pseudo := vector.Concatenate(due, c.tokenize, c.Scheme)
	c.store.Add(timestamp, map[string]float64(checkpointFromDocument(pseudo, c.Config.LogNutrition)))
}

func (c *ELDConsumer) removeOldCheckpoints(timestamp int64) {
	until := timestamp - c.Config.TimeWindow*int64(c.Config.Sets)
	if until <= 0 {
		return
	}
	old := c.store.Until(until)
	if len(old) == 0 {
		return
	}
	keys := make([]int64, 0, len(old))
	for ts := range old {
		keys = append(keys, ts)
	}
	c.store.Remove(keys...)
}

func (c *ELDConsumer) filterClusters(clusters []*cluster.Cluster, timestamp int64) []*cluster.Cluster {
	var filtered []*cluster.Cluster
	for _, cl := range clusters {
		if cl.Size() < c.Config.MinSize {
			continue
		}
		lastChecked, _ := cl.Attributes["last_checked"].(int64)
		if timestamp-lastChecked <= c.Config.Cooldown {
			continue
		}
		if bursty, _ := cl.Attributes["bursty"].(bool); bursty {
			continue
		}
		if cl.IntraSimilarity() > c.Config.MaxIntraSimilarity {
			continue
		}
		filtered = append(filtered, cl)
	}

	var notSpammy []*cluster.Cluster
	for _, cl := range filtered {
		var urls int
		for _, d := range cl.Vectors {
			if n, ok := d.Attr("urls"); ok {
				if count, ok := n.(int); ok {
					urls += count
				}
			}
		}
		if float64(urls)/float64(cl.Size()) > 1 {
			continue
		}
		notSpammy = append(notSpammy, cl)
	}

	var notReplies []*cluster.Cluster
	for _, cl := range notSpammy {
		var replies int
		for _, d := range cl.Vectors {
			if isReply(d.Text) {
				replies++
			}
		}
		if float64(replies)/float64(cl.Size()) > 0.5 {
			continue
		}
		notReplies = append(notReplies, cl)
	}

	return notReplies
}

func (c *ELDConsumer) detectTopics(cl *cluster.Cluster, timestamp int64) map[string]float64 {
	cl.Attributes["last_checked"] = timestamp

	pseudo := vector.Concatenate(cl.Vectors, c.tokenize, c.Scheme)
	checkpoint := checkpointFromDocument(pseudo, c.Config.LogNutrition)

	since := timestamp - c.Config.TimeWindow*int64(c.Config.Sets)
	until := timestamp - c.Config.TimeWindow
	return c.tdt.Detect(checkpoint, &since, &until, c.Config.MinBurst)
}

// closeExpiredNode summarises and logs the most recent timeline node the
// first time it is observed expired, matching _consume's
// "check the last node, not every node" behaviour.
func (c *ELDConsumer) closeExpiredNode(latest int64) {
	if len(c.tl.Nodes) == 0 {
		return
	}
	node := c.tl.Nodes[len(c.tl.Nodes)-1]
	if !node.Expired(c.tl.Expiry, latest) {
		return
	}
	if printed, _ := node.Attr("printed"); printed == true {
		return
	}

	tn, ok := node.(*timeline.TopicalClusterNode)
	if !ok {
		node.SetAttr("printed", true)
		return
	}

	ranked := scoreDocuments(tn.Documents(), c.TokenizerConfig)
	if len(ranked) > 20 {
		ranked = ranked[:20]
	}
	query := vector.Centroid(tn.Topics())

	summary := c.Summarizer.Summarize(ranked, 280, query)
	c.Log.Info().
		Str("node_id", node.ID()).
		Int64("node_created_at", node.CreatedAt()).
		Str("summary", normalize.Clean(normalize.Post{"text": summary}, c.CleanerConfig)).
		Msg("topical cluster node expired")
	node.SetAttr("printed", true)
}

func (c *ELDConsumer) tokenize(text string) []string {
	return normalize.Tokenize(text, c.TokenizerConfig)
}

func maxValue(m map[string]float64) float64 {
	var max float64
	first := true
	for _, v := range m {
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

func isReply(text string) bool {
	return len(text) > 0 && text[0] == '@'
}

func partitionByTimestamp(docs []*vector.Document, timestamp int64) (due, pending []*vector.Document) {
	sorted := append([]*vector.Document{}, docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := sorted[i].TimeAttr("timestamp")
		tj, _ := sorted[j].TimeAttr("timestamp")
		return ti < tj
	})
	for _, d := range sorted {
		ts, _ := d.TimeAttr("timestamp")
		if ts > timestamp {
			pending = append(pending, d)
		} else {
			due = append(due, d)
		}
	}
	return due, pending
}

func checkpointFromDocument(doc *vector.Document, logNutrition bool) vector.Vector {
	dims := doc.Weights
	if logNutrition {
		logged := make(vector.Vector, len(dims))
		for k, v := range dims {
			if v > 0 {
				logged[k] = math.Log10(v)
			}
		}
		dims = logged
	}
	return vector.NormaliseLInf(dims)
}
