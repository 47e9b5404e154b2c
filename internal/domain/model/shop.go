package model

import "time"

// Shop represents a seller profile owned by a single user.
type Shop struct {
	ID        int64
	OwnerID   int64
	Name      string
	CreatedAt time.Time
}
