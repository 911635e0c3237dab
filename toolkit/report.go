package toolkit

// Failure classification for case results.
const (
	FailurePrecondition = "precondition_failed"
	FailureTransport    = "transport_error"
	FailureAssertion    = "assertion_mismatch"
	FailureUnexpected   = "unexpected_error"
)

// RunReport is the persisted outcome of one harness run.
type RunReport struct {
	Summary   RunSummary   `json:"summary"`
	Persisted bool         `json:"persisted"`
	Results   []CaseResult `json:"results"`
}

// RunSummary is the aggregate counters over all cases.
type RunSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Suite   string `json:"suite"`
	Case    string `json:"case"`
	Passed  bool   `json:"passed"`
	Failure string `json:"failure_type,omitempty"`
	Error   string `json:"error,omitempty"`

	LatencyMS int64 `json:"latency_ms"`
}
