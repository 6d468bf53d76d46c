package domain

import "time"

// File is the metadata row for an object stored in S3.
type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	Object           string    `json:"object" dynamodbav:"object"` // S3 key
	Name             string    `json:"name" dynamodbav:"name"`
	Type             string    `json:"type" dynamodbav:"type"`
	Size             int64     `json:"size" dynamodbav:"size"`
	UploadedByUserID string    `json:"uploaded_by" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
}
