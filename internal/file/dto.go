package file

import (
	"time"

	"editmarket/internal/domain"
)

type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	OrderID     *uint  `json:"orderId"`
	Type        string `json:"type"`
}

type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileID    uint   `json:"fileId"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"`
}

type FileDTO struct {
	ID          uint       `json:"id"`
	OrderID     *uint      `json:"orderId"`
	UploaderID  uint       `json:"uploaderId"`
	Type        string     `json:"type"`
	Filename    string     `json:"filename"`
	Size        int64      `json:"size"`
	MimeType    string     `json:"mimeType"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

func toFileDTO(f domain.FileUpload) FileDTO {
	return FileDTO{
		ID:          f.ID,
		OrderID:     f.OrderID,
		UploaderID:  f.UploaderID,
		Type:        string(f.Role),
		Filename:    f.Filename,
		Size:        f.Size,
		MimeType:    f.MimeType,
		UploadedAt:  f.UploadedAt,
		Confirmed:   f.IsConfirmed(),
		ConfirmedAt: f.ConfirmedAt,
	}
}
