package api

import "project-board/domain"

const (
	postCommandMaxSize = 64 * 1024 // 64 KiB
	submitMaxSize      = 16 * 1024
	dropPayloadMaxSize = 1024
)

// POST /api/commands response body.
type postCommandResponse struct {
	IdempotencyKeys []string `json:"idempotencyKeys,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// POST /api/projects request body (JSON variant; the form variant carries the
// same three fields). People stays text until the submission gate parses it.
type submitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      string `json:"people"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GET /api/stream event payload: the filtered snapshot plus the matching
// ready-to-insert list fragment.
type streamEvent struct {
	Projects []domain.Project `json:"projects"`
	HTML     string           `json:"html,omitempty"`
}
