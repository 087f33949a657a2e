package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Localstore bool      `json:"localstore"`
	LastCheck  time.Time `json:"last_check"`
}
