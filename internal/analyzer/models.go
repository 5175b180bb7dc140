package analyzer

import "time"

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result holds the analysis outcome for one file. Analysis is opaque
// natural-language text from the model; it is persisted, never parsed.
type Result struct {
	FilePath string
	FileName string
	Language string
	Status   string
	Analysis string
}

// Summary aggregates a batch of per-file results.
type Summary struct {
	TotalFiles  int
	Succeeded   int
	Failed      int
	GeneratedAt time.Time
	Results     []Result
}

// Summarize builds a Summary from a batch of results.
func Summarize(results []Result) Summary {
	summary := Summary{
		TotalFiles:  len(results),
		GeneratedAt: time.Now(),
		Results:     results,
	}
	for _, r := range results {
		if r.Status == StatusSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}
