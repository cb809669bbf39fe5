package branch

import "time"

type Branch struct {
	ID        string
	Name      string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
