package models

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	ContactPerson string    `db:"contact_person"`
	CreatedAt     time.Time `db:"created_at"`
}
