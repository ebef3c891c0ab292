// Package catalog turns external book catalog data into local records.
//
// FilterSearchResults reduces raw search documents to the complete ones and
// labels them for display. Reconciler.Ingest resolves a chosen edition
// through a DetailLookup, merges it into the local author and book tables by
// natural key and adds it to a user's list.
//
// OpenLibraryClient is the production Searcher and DetailLookup. It
// rate limits outgoing requests and stops calling OpenLibrary while its
// circuit breaker is open. Neither it nor the Reconciler retries.
package catalog
