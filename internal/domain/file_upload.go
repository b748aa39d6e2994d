package domain

import (
	"fmt"
	"time"
)

// FileRole tags a file as client footage (source) or freelancer output (delivery).
type FileRole string

const (
	FileRoleSource   FileRole = "source"
	FileRoleDelivery FileRole = "delivery"
)

func ParseFileRole(s string) (FileRole, error) {
	switch FileRole(s) {
	case FileRoleSource, FileRoleDelivery:
		return FileRole(s), nil
	}
	return "", fmt.Errorf("unknown file role %q", s)
}

type FileUpload struct {
	ID          uint
	OrderID     *uint
	UploaderID  uint
	Role        FileRole
	Filename    string
	Key         string
	Size        int64
	MimeType    string
	UploadedAt  time.Time
	ConfirmedAt *time.Time
}

// IsConfirmed reports whether the object was seen in storage and its size back-filled.
func (f FileUpload) IsConfirmed() bool {
	return f.ConfirmedAt != nil
}

// IsStaged reports whether the file is a source upload still waiting for its order.
func (f FileUpload) IsStaged() bool {
	return f.OrderID == nil
}
