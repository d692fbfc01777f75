package model

import "fmt"

// ========================================
// CSV ROW MODEL
// ========================================

// ImportRow is one record from the parsed CSV upload.
// Row is 1-based (first data row = 1) for human-facing error reporting.
type ImportRow struct {
	Row          int
	Title        string
	Description  string
	ThumbnailURL string
	GameURL      string
	Instructions string
	Categories   string // raw comma-separated cell
	Tags         string // raw comma-separated cell
	Slug         string
}

// ========================================
// RESULT MODELS
// ========================================

// RowError is a row-scoped failure in the import report.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// RowWarning is a non-fatal, informational note in the import report.
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// CSVError is a structural parse error reported before any row is processed.
type CSVError struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult is the full per-row breakdown returned to the caller.
// Not persisted.
type ImportResult struct {
	Total       int          `json:"total"`
	Success     int          `json:"success"`
	Failed      int          `json:"failed"`
	Errors      []RowError   `json:"errors"`
	Warnings    []RowWarning `json:"warnings"`
	SuccessRate string       `json:"successRate"`
}

// ========================================
// REQUEST-LEVEL FAILURE
// ========================================

// PreconditionError aborts the whole import before any row is processed
// (missing file, bad extension, oversized file, parse errors, empty data,
// missing columns). Handlers map it to a 400 response.
type PreconditionError struct {
	Message   string
	CSVErrors []CSVError
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func NewPreconditionError(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}
