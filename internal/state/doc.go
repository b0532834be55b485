// Package state provides the thread-safe snapshot store shared by the
// refresh loop and the UI.
//
// # Overview
//
// The Store is the single cross-component shared mutable resource in
// cueview. The refresh executor is its only writer; the UI and the
// lifecycle gate read from it. Because feed documents are immutable after
// decoding, the store holds a pointer and replaces it wholesale; readers
// never observe a partially written document.
//
// # Concurrency Model
//
//   - Replace(): write lock, called only by the refresh executor after a
//     successful fetch-and-validate.
//   - Current() / FetchedAt(): read lock, called freely from the UI loop.
//
// A failed fetch never calls Replace, so the store's contents after a
// failure are bit-identical to before it.
//
// # Design Rationale
//
// The store intentionally avoids defensive copying: documents are treated
// as read-only by convention, which keeps refreshes allocation-free beyond
// the decode itself. It also avoids channels and versioning: only the
// latest snapshot matters, and the UI re-renders from whatever is current.
package state
