// Package store provides the ordered byte-record container backing the
// command queue.
//
// Records are appended at the tail and removed from the head. A single
// cursor walks the records independently of removal; it is either
// positioned on a stored record or invalid. Removing the record under the
// cursor moves the cursor to the following record.
//
// The store performs no locking. Callers that share a store between
// goroutines serialise access themselves.
package store
