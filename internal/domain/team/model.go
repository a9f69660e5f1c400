package team

import "time"

type Team struct {
	ID        string
	Name      string
	ShortName string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
