// Package search answers free-text queries over a menu taxonomy.
//
// An Engine is built once from a taxonomy snapshot and an abbreviation
// dictionary: leaves are flattened, enriched with normalized variants and
// loaded into a weighted fuzzy index. After construction nothing is
// mutated, so one Engine can serve any number of concurrent Search calls
// without locking.
//
// A query is expanded into at most two phrasings (as typed, and with
// abbreviations spelled out). Each phrasing is run against the index, hits
// are merged per leaf keeping the best distance, and the merged list is
// ranked and cut to topK. Relevance reported to callers is 1 - distance.
package search
