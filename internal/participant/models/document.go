package models

// Image is an uploaded document photo.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
