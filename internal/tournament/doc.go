// Package tournament provides the HTTP client for the tournament feed and
// type-safe representations of the feed document.
//
// # Overview
//
// Cueview watches exactly one remote resource: a JSON document describing a
// pool tournament (players, bracket matches, league standings, lifecycle
// dates). This package owns the document schema, the client that retrieves
// it, and the rank classification heuristic derived from league standings.
//
// # Client Usage
//
//	client, err := tournament.NewClient("https://example.org/tournament.json", 10*time.Second)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Lightweight change detection (HEAD request, Last-Modified header)
//	token, err := client.Probe(ctx)
//
//	// Full document retrieval
//	snap, err := client.Fetch(ctx)
//
// # Change Tokens
//
// Probe returns the feed's Last-Modified header value as an opaque change
// token. Callers compare tokens for inequality only; the value is never
// parsed. An empty token means the server reported none, in which case
// change detection is inconclusive and no refresh is triggered.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Send Cache-Control: no-cache so intermediate caches are bypassed
//   - Include User-Agent: cueview/0.1
//   - Are bounded by an explicit http.Client timeout so a stalled fetch
//     cannot wedge the refresh cycle
//
// # Validation
//
// Fetch rejects documents that decode cleanly but contain neither players
// nor matches. Transport errors, HTTP error statuses, decode failures, and
// validation failures are all surfaced as wrapped errors; the caller is
// responsible for keeping the previous snapshot on failure.
//
// # Timestamp Parsing
//
// The feed writes timestamps as RFC 3339 strings; older generator scripts
// used "2006-01-02 15:04:05" and bare dates. Snapshot's UpdatedAt, StartAt,
// and EndAt accessors try each layout and return the zero time for missing
// or unparseable values.
package tournament
