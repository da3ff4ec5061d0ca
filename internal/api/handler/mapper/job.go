package mapper

import (
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

type JobMapper struct{}

func NewJobMapper() JobMapper {
	return JobMapper{}
}

func (JobMapper) CreateJob(req request.CreateJob) models.Job {
	return models.Job{
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		Priority:    req.Priority,
		Status:      req.Status,
	}
}

// PatchJob builds the column patch from the optional fields of an update
// request. Ownership and timestamps are never patchable.
func (JobMapper) PatchJob(req request.UpdateJob) map[string]any {
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.ClientName != nil {
		patch["client_name"] = *req.ClientName
	}
	if req.Priority != nil {
		patch["priority"] = *req.Priority
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	return patch
}

func (JobMapper) ToJobResponse(j models.Job) response.Job {
	return response.Job{
		ID:          j.ID,
		Name:        j.Name,
		Description: j.Description,
		ClientName:  j.ClientName,
		Priority:    j.Priority,
		Status:      j.Status,
		CreatedBy:   j.CreatedBy,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func (m JobMapper) ToJobResponses(entities []models.Job) []response.Job {
	out := make([]response.Job, len(entities))
	for i, j := range entities {
		out[i] = m.ToJobResponse(j)
	}
	return out
}

func (m JobMapper) ToJobResponseWithFiles(j models.Job) response.JobWithFiles {
	resp := response.JobWithFiles{Job: m.ToJobResponse(j)}
	resp.Files = make([]response.JobFile, len(j.Files))
	for i, f := range j.Files {
		resp.Files[i] = ToJobFileResponse(f)
	}
	return resp
}
