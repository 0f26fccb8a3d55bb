package domain

// StrategyAttempt records one failed attempt of an ordered strategy list.
type StrategyAttempt struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// StrategyReport records which named strategy was chosen and why the
// strategies before it were skipped.
type StrategyReport struct {
	Chosen   string            `json:"chosen,omitempty"`
	Attempts []StrategyAttempt `json:"attempts,omitempty"`
}

// Fail appends a failed attempt.
func (r *StrategyReport) Fail(name string, err error) {
	r.Attempts = append(r.Attempts, StrategyAttempt{Name: name, Error: err.Error()})
}

// FellBack reports whether any strategy failed before the chosen one.
func (r StrategyReport) FellBack() bool {
	return r.Chosen != "" && len(r.Attempts) > 0
}

// The results below cross the core boundary. Failures are reported through
// Success and Message; Err keeps the underlying error for errors.Is checks
// and is never serialised.

// SetupResult is returned by a setup run.
type SetupResult struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Profiles int            `json:"profiles"`
	Chunks   int            `json:"chunks"`
	Store    StrategyReport `json:"store"`
	Err      error          `json:"-"`
}

// AskResult is returned for a question.
type AskResult struct {
	Success bool    `json:"success"`
	Answer  *Answer `json:"answer,omitempty"`
	Message string  `json:"message,omitempty"`
	Err     error   `json:"-"`
}

// Text returns the answer text, or the failure message.
func (r AskResult) Text() string {
	if r.Success && r.Answer != nil {
		return r.Answer.Text
	}
	return r.Message
}

// SummaryResult wraps the summary report.
type SummaryResult struct {
	Success bool    `json:"success"`
	Summary Summary `json:"summary"`
	Message string  `json:"message,omitempty"`
	Err     error   `json:"-"`
}

// IngestResult reports the outcome of adding profiles to the raw store.
type IngestResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Accepted int    `json:"accepted_count"`
	Rejected int    `json:"rejected_count"`
	Total    int    `json:"total_count"`
	Err      error  `json:"-"`
}

// Status describes the current state of the service.
type Status struct {
	Profiles       int    `json:"profiles"`
	Chunks         int    `json:"chunks"`
	Ready          bool   `json:"ready"`
	Stale          bool   `json:"stale"`
	Store          string `json:"store,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	Generation     bool   `json:"generation"`
	LLMModel       string `json:"llm_model,omitempty"`
}
