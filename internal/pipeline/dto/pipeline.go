package dto

import "time"

// Pipeline step names, in execution order.
const (
	StepFetch   = "fetch_stock_data"
	StepStore   = "store_stock_data"
	StepAnalyze = "ai_analysis"
	StepPersist = "store_analysis"
	StepNotify  = "notify"
)

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RunReport summarises a single pipeline run.
type RunReport struct {
	Symbol          string          `json:"symbol"`
	Date            string          `json:"date"`
	Forced          bool            `json:"forced"`
	AlreadyAnalyzed bool            `json:"already_analyzed"`
	AnalysisOnly    bool            `json:"analysis_only"`
	AnalysisPath    string          `json:"analysis_path,omitempty"`
	Steps           []StepResult    `json:"steps"`
	Observation     *StockData      `json:"observation,omitempty"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
}

// AddStep appends a step outcome to the report.
func (r *RunReport) AddStep(name, status, message string) {
	r.Steps = append(r.Steps, StepResult{Name: name, Status: status, Message: message})
}

// Succeeded reports whether no step failed.
func (r *RunReport) Succeeded() bool {
	for _, s := range r.Steps {
		if s.Status == "failed" {
			return false
		}
	}
	return true
}

// RunPipelineRequest holds the query of a manual run.
type RunPipelineRequest struct {
	Date  string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Force bool   `query:"force"`
}
