package dto

import "time"

// OrderDraft is a validated creation request. ClientID is filled in from the
// caller's identity, never from the request body.
type OrderDraft struct {
	ClientID      uint
	Title         string
	Description   string
	Requirements  *string
	VideoURL      *string
	Price         float64
	Deadline      time.Time
	SourceFileIDs []uint
}

// HasSource reports whether the draft references at least one piece of footage.
func (d OrderDraft) HasSource() bool {
	return len(d.SourceFileIDs) > 0 || d.VideoURL != nil
}
