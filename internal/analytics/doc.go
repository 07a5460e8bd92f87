// Package analytics computes monthly balance summaries, per-category
// breakdowns and date-grouped views over a user's transactions.
//
// Every function here is pure: callers fetch transactions (with their
// category already resolved) and pass them in. Nothing blocks, nothing is
// shared between calls, and missing data yields zero or absent results
// rather than errors.
package analytics
