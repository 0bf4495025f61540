package repository

import "time"

// Sitting represents one finished meditation sitting.
type Sitting struct {
	ID             string
	StartedAt      time.Time
	EndedAt        time.Time
	ElapsedSeconds int
	CreatedAt      time.Time
}

// Totals summarises the journal.
type Totals struct {
	Count   int
	Seconds int
}
