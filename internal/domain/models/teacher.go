// internal/domain/models/teacher.go
package models

import "time"

// Teacher is a staff account allowed to manage announcements.
// The username doubles as the document _id.
type Teacher struct {
	Username    string    `bson:"_id" json:"username"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Role        string    `bson:"role" json:"role"` // teacher | admin
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
