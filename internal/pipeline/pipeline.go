// Package pipeline fans a batch of audio references out over a processor.
package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"vanmitra-feedback/internal/logger"
	"vanmitra-feedback/internal/types"
)

// Processor is satisfied by *processor.Processor.
type Processor interface {
	Process(ctx context.Context, audioRef string) *types.FeedbackRecord
}

// RunBatch processes every reference with at most concurrency runs in
// flight. Each reference gets its own record; out[i] belongs to refs[i].
// A cancelled ctx still yields a (failed) record per reference.
func RunBatch(ctx context.Context, proc Processor, refs []string, concurrency int, log *logger.Logger) []*types.FeedbackRecord {
	if log == nil {
		log = logger.New()
	}
	log = log.Component("pipeline")
	if concurrency <= 0 {
		concurrency = 1
	}
	out := make([]*types.FeedbackRecord, len(refs))
	if len(refs) == 0 {
		log.Info("no audio references to process")
		return out
	}

	log.WithField("records", len(refs)).WithField("concurrency", concurrency).Info("processing batch")
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(concurrency)

	var completed, failed atomic.Int64
	for i, ref := range refs {
		g.Go(func() error {
			rec := proc.Process(ctx, ref)
			out[i] = rec
			if rec.ProcessingStatus == types.StatusCompleted {
				completed.Add(1)
			} else {
				failed.Add(1)
			}
			return nil // one record failing never aborts the batch
		})
	}
	_ = g.Wait()

	log.WithField("completed", completed.Load()).
		WithField("failed", failed.Load()).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("batch complete")
	return out
}
