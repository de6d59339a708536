// Package models holds the persistence-level records for the catalog
// service. These structs mirror table rows and are never serialized to
// API clients directly; the HTTP layer builds its own projections.
package models

import "time"

type User struct {
	ID             string
	Username       string
	Email          *string
	FullName       *string
	HashedPassword string
	Disabled       bool
	CreatedAt      time.Time
}
