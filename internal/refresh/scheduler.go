package refresh

import (
	"context"
	"log"
	"time"
)

// Start launches the background change-detection loop. It returns
// immediately. The loop stops when ctx is cancelled, or permanently once
// the lifecycle gate reports the tournament finished: a finished
// tournament cannot change again, so the timer is never re-armed.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if !r.gate.PollingAllowed(r.store.Current(), time.Now()) {
				log.Printf("tournament finished, stopping auto refresh")
				return
			}
			r.checkOnce(ctx)
		}
	}()
}

// checkOnce performs one change check: probe for the current change token
// and run the executor only when it differs from the last one seen. Probe
// failures are logged and retried on the next tick; they never disturb the
// stored snapshot.
func (r *Refresher) checkOnce(ctx context.Context) {
	token, err := r.client.Probe(ctx)
	if err != nil {
		log.Printf("change probe failed: %v", err)
		return
	}
	if token == "" || token == r.token() {
		return
	}
	if err := r.run(ctx, token); err != nil {
		log.Printf("auto refresh failed: %v", err)
	}
}
