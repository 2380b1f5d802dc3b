// Package documents persists artifact records. Documents are latest-wins:
// there is no revision history, saving an existing id overwrites content
// while keeping the original creation time.
package documents
