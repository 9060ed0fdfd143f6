package domain

import "github.com/bytedance/sonic"

// Command types accepted on the board write path.
const (
	CommandAddProject  = "add-project"
	CommandMoveProject = "move-project"
)

// EntityProject is the only entity commands operate on.
const EntityProject = "project"

// Command represents a single write request against the board.
type Command struct {
	// ID carries the idempotency key once the command is finalized.
	ID             string                 `json:"id,omitempty"`
	IdempotencyKey string                 `json:"idempotencyKey"`
	EntityType     string                 `json:"entityType,omitempty"`
	Type           string                 `json:"type"`
	Data           sonic.NoCopyRawMessage `json:"data,omitempty"`
	Timestamp      int64                  `json:"timestamp"`
}

// AddProjectData is the payload of an add-project command. People is carried
// as the raw form text; the submission gate parses and validates it.
type AddProjectData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      string `json:"people"`
}

// MoveProjectData is the payload of a move-project command.
type MoveProjectData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
