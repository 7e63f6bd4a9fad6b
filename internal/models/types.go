// internal/models/types.go
package models

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleGeneral Role = "general"
)

// Photo is one catalog record. Name is the uploaded filename and acts as the key.
type Photo struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	DateTaken string `json:"date_taken"`
	Tags      string `json:"tags"`
}

// UploadURL is the static-serving path for an uploaded file name.
func UploadURL(name string) string {
	return "/static/uploads/" + name
}

// NewPhoto builds a record for an upload; URL is always derived from name.
func NewPhoto(name, dateTaken, tags string) Photo {
	return Photo{
		Name:      name,
		URL:       UploadURL(name),
		DateTaken: dateTaken,
		Tags:      tags,
	}
}
