package outcome

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"
)

const (
	countersKey = "ingest:outcomes"
	recentKey   = "ingest:recent"
	recentMax   = 100
)

// Recorder keeps per-outcome counters and a capped list of recent outcomes
// in Redis, for dashboards. This is the only per-image observability
// surface besides logs; uploaders never get a synchronous verdict.
type Recorder struct {
	client *redis.Client
}

// compile-time check: *Recorder must satisfy port.OutcomeRecorder
var _ port.OutcomeRecorder = (*Recorder)(nil)

func NewRecorder(addr, password string) *Recorder {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Recorder{client: rdb}
}

type recentEntry struct {
	Key     string        `json:"key"`
	Outcome model.Outcome `json:"outcome"`
	At      time.Time     `json:"at"`
}

// RecordOutcome increments the outcome counter and pushes a recent entry.
// Failures are logged and swallowed: observability must never fail the
// pipeline.
func (r *Recorder) RecordOutcome(ctx context.Context, key string, outcome model.Outcome) {
	if err := r.client.HIncrBy(ctx, countersKey, string(outcome), 1).Err(); err != nil {
		log.Printf("warning: failed to increment outcome counter %q: %v", outcome, err)
	}

	entry, err := json.Marshal(recentEntry{Key: key, Outcome: outcome, At: time.Now().UTC()})
	if err != nil {
		log.Printf("warning: failed to marshal recent outcome: %v", err)
		return
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, recentKey, entry)
	pipe.LTrim(ctx, recentKey, 0, recentMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("warning: failed to record recent outcome: %v", err)
	}
}

// Counters returns the accumulated per-outcome counts.
func (r *Recorder) Counters(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, countersKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		var n int64
		if err := json.Unmarshal([]byte(v), &n); err == nil {
			out[k] = n
		}
	}
	return out, nil
}
