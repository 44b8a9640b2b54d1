package pipeline

import (
	"time"

	"portfolio/internal/catalog"
	"portfolio/internal/history"
	"portfolio/internal/rendition"
)

// CategoryStatus summarizes what happened to one category.
type CategoryStatus string

const (
	StatusProcessed CategoryStatus = "processed"
	StatusPlanned   CategoryStatus = "planned"
	StatusEmpty     CategoryStatus = "empty"
	StatusMissing   CategoryStatus = "missing"
	StatusError     CategoryStatus = "error"
	StatusCanceled  CategoryStatus = "canceled"
)

// CategoryReport is the per-category outcome of a run.
type CategoryReport struct {
	Category    catalog.Category
	Status      CategoryStatus
	Images      int
	Jobs        int
	Succeeded   int
	Failed      int
	Hero        string
	HeroRule    string
	UnsafeNames []string
	Collisions  []string
	Detail      string
}

// Failure is one rendition that could not be produced.
type Failure struct {
	Category    string
	Source      string
	Rendition   rendition.Kind
	Destination string
	Err         error
}

// Report summarizes a run.
type Report struct {
	RunID        string
	Origin       string
	DryRun       bool
	Started      time.Time
	Finished     time.Time
	Categories   []CategoryReport
	Skipped      int
	Planned      int
	Succeeded    int
	Failed       int
	Failures     []Failure
	ManifestPath string
	Canceled     bool
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Processed counts categories that reached the transcode step.
func (r Report) Processed() int {
	n := 0
	for _, c := range r.Categories {
		if c.Status == StatusProcessed {
			n++
		}
	}
	return n
}

// HistoryRun converts the report into a journal entry.
func (r Report) HistoryRun() history.Run {
	run := history.Run{
		ID:           r.RunID,
		Origin:       r.Origin,
		Started:      r.Started,
		Finished:     r.Finished,
		Categories:   len(r.Categories),
		Skipped:      r.Skipped,
		Succeeded:    r.Succeeded,
		Failed:       r.Failed,
		Canceled:     r.Canceled,
		ManifestPath: r.ManifestPath,
	}
	for _, f := range r.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		run.Failures = append(run.Failures, history.Failure{
			Category:  f.Category,
			Source:    f.Source,
			Rendition: string(f.Rendition),
			Message:   msg,
		})
	}
	return run
}
