package feed

import (
	"context"
	"time"
)

const DefaultInterval = 5 * time.Second

// Poller re-fetches the booking feed on a fixed period for the lifetime of
// the session. It runs regardless of filter state or in-flight checkouts;
// both callers of Refresh simply overwrite the snapshot on completion.
type Poller struct {
	feed     *Feed
	interval time.Duration
}

func NewPoller(feed *Feed, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{feed: feed, interval: interval}
}

// Run blocks until ctx is done. Refresh errors are logged by the feed and
// otherwise ignored; the next tick retries naturally.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.feed.Refresh(ctx)
		}
	}
}
