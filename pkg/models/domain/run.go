package domain

// CompanyResult is the outcome of one company's report creation.
type CompanyResult struct {
	Company    Company
	ReportName string
	Err        error
}

// RunResult aggregates a creation run.
type RunResult struct {
	DryRun  bool
	Created []CompanyResult
	Failed  []CompanyResult
}

// Ok reports whether the run completed without per-company failures.
func (r RunResult) Ok() bool {
	return len(r.Failed) == 0
}
