package models

import "time"

// FileRecord is the metadata row of an uploaded fork. StoragePath is the
// key of its blob.
type FileRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	Type        string    `json:"type"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFile holds the caller-supplied fields of a file insert.
type NewFile struct {
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	StoragePath string `json:"storage_path"`
}
