package domain

import "time"

// AuditFields holds the timestamps maintained by the record store on every create/update.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
