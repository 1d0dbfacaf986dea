package monitor

import "time"

type Status struct {
	Backend   bool      `json:"backend"`
	Keystore  bool      `json:"keystore"`
	LastCheck time.Time `json:"last_check"`
}
