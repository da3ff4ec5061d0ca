package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// File paths are object-store keys and never leave the API; responses carry
// ids only and blobs go through the download endpoints.

func ToJobFileResponse(f models.JobFile) response.JobFile {
	return response.JobFile{
		ID:             f.ID,
		JobID:          f.JobID,
		FileName:       f.FileName,
		FileType:       f.FileType,
		FileSize:       f.FileSize,
		IsPresentation: f.IsPresentation,
		UploadedBy:     f.UploadedBy,
		CreatedAt:      f.CreatedAt,
	}
}

func ToJobFileResponses(files []models.JobFile) []response.JobFile {
	out := make([]response.JobFile, len(files))
	for i, f := range files {
		out[i] = ToJobFileResponse(f)
	}
	return out
}

func ToFileVersionResponse(v models.FileVersion) response.FileVersion {
	return response.FileVersion{
		ID:            v.ID,
		FileID:        v.FileID,
		VersionNumber: v.VersionNumber,
		FileSize:      v.FileSize,
		Changelog:     v.Changelog,
		CreatedBy:     v.CreatedBy,
		CreatedAt:     v.CreatedAt,
	}
}

func ToFileVersionResponses(versions []models.FileVersion) []response.FileVersion {
	out := make([]response.FileVersion, len(versions))
	for i, v := range versions {
		out[i] = ToFileVersionResponse(v)
	}
	return out
}
