package domain

import "fmt"

// Status partitions the board into its two lists. It is a closed enumeration;
// ParseStatus rejects everything else.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// ParseStatus converts the wire form of a status into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive:
		return StatusActive, nil
	case StatusFinished:
		return StatusFinished, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the two board statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusFinished
}

// Project represents a single tracked unit of work on the board. Projects are
// created only by the store (which generates the ID) and only their Status
// ever changes afterwards; there is no delete.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	People      int    `json:"people"`
	Status      Status `json:"status"`
}
