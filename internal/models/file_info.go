package models

import "time"

// File kinds held by the store.
const (
	FileKindOPI = "opi"
	FileKindEDL = "edl"
)

// FileInfo represents metadata about a stored display file.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"` // "uploaded", "converted", "failed"
}
