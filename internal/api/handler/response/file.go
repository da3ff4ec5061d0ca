package response

import "time"

type JobFile struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
	FileSize       int64     `json:"fileSize"`
	IsPresentation bool      `json:"isPresentation"`
	UploadedBy     string    `json:"uploadedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

type FileVersion struct {
	ID            string    `json:"id"`
	FileID        string    `json:"fileId"`
	VersionNumber int       `json:"versionNumber"`
	FileSize      int64     `json:"fileSize"`
	Changelog     string    `json:"changelog"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UploadResult reports one file of a batch. Batches are per-file
// independent: a failure on one file never rolls back the others.
type UploadResult struct {
	FileName string   `json:"fileName"`
	File     *JobFile `json:"file,omitempty"`
	Error    string   `json:"error,omitempty"`
}
