package models

import (
	"time"
)

type Image struct {
	ID          string       `firestore:"id" json:"id"`
	UID         string       `firestore:"uid" json:"uid"`
	Filename    string       `firestore:"filename" json:"filename"`
	ImageURL    string       `firestore:"image_url" json:"image_url"`
	UploadedAt  time.Time    `firestore:"uploaded_at" json:"uploaded_at"`
	Predictions []Prediction `firestore:"predictions" json:"predictions"`
}

// Prediction is one classifier label with its confidence in [0,1].
// Slices are kept sorted by confidence descending.
type Prediction struct {
	Label      string  `firestore:"label" json:"label"`
	Confidence float64 `firestore:"confidence" json:"confidence"`
}
