package dto

import "time"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Fail(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

func NewPagination(total, limit, offset int) Pagination {
	return Pagination{Total: total, Limit: limit, Offset: offset, HasMore: offset < total && limit < total-offset}
}

type HealthServices struct {
	Database string `json:"database"`
	OpenAI   string `json:"openai"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Store     string         `json:"store"`
	Services  HealthServices `json:"services"`
}
