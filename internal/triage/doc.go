// Package triage provides the business boundary for docket's complaint
// triage system. It defines the Service (validation, dedup, synchronous
// classification, notification dispatch), Store interface (persistence),
// and the Case domain model.
package triage
