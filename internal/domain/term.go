package domain

import "time"

type Term struct {
	ID       int64
	Code     string
	StartsOn *time.Time
	EndsOn   *time.Time
}
