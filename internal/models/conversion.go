package models

import "time"

// ConversionStatus is the outcome of converting one file.
type ConversionStatus string

const (
	ConversionPending   ConversionStatus = "pending"
	ConversionConverted ConversionStatus = "converted"
	ConversionFailed    ConversionStatus = "failed"
)

// ConversionReport summarises the conversion of one input file.
type ConversionReport struct {
	FileID      string           `json:"fileId,omitempty" msgpack:"fileId,omitempty"`
	Input       string           `json:"input" msgpack:"input"`
	Output      string           `json:"output,omitempty" msgpack:"output,omitempty"`
	OutputID    string           `json:"outputId,omitempty" msgpack:"outputId,omitempty"`
	Status      ConversionStatus `json:"status" msgpack:"status"`
	Widgets     int              `json:"widgets" msgpack:"widgets"`
	Rendered    int              `json:"rendered" msgpack:"rendered"`
	Skipped     []string         `json:"skipped,omitempty" msgpack:"skipped,omitempty"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Error       string           `json:"error,omitempty" msgpack:"error,omitempty"`
	DurationMs  int64            `json:"durationMs" msgpack:"durationMs"`
}

// HistoryRecord is one persisted conversion outcome.
type HistoryRecord struct {
	JobID       string           `json:"jobId"`
	Input       string           `json:"input"`
	Output      string           `json:"output,omitempty"`
	Status      ConversionStatus `json:"status"`
	Widgets     int              `json:"widgets"`
	Rendered    int              `json:"rendered"`
	Skipped     []string         `json:"skipped,omitempty"`
	Diagnostics int              `json:"diagnostics"`
	ConvertedAt time.Time        `json:"convertedAt"`
}
