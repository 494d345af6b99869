package storage

import "time"

type Table string

const (
	TableRecord  Table = "record"
	TableArchive Table = "archive"
)

func (t Table) IsValid() bool {
	switch t {
	case TableRecord, TableArchive:
		return true
	default:
		return false
	}
}

// Entry is one opaque JSON document keyed by id.
type Entry struct {
	ID        string
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Limit  int
	Offset int
}
