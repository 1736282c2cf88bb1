// Package seed generates a synthetic alliance with a season of snapshot
// uploads, so the API has data to serve in local development and demos.
package seed

import "fmt"

// Result tracks counts and errors from one demo seed run.
type Result struct {
	AllianceID string
	SeasonID   string
	Uploads    int
	Snapshots  int
	Periods    int
	Metrics    int
	Events     int
	Errors     []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed run.
func (r *Result) Summary() string {
	return fmt.Sprintf("uploads=%d snapshots=%d periods=%d metrics=%d events=%d errors=%d",
		r.Uploads, r.Snapshots, r.Periods, r.Metrics, r.Events, len(r.Errors))
}
