package response

import "time"

type Comment struct {
	ID        string    `json:"id"`
	FileID    string    `json:"fileId"`
	UserID    string    `json:"userId"`
	Comment   string    `json:"comment"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
