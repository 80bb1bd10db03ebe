package adapt

import "time"

// ResponseLog records a single administered item for a session, in
// administration order. The persistence layer stores these; ReplaySession
// and calibrate consume them.
type ResponseLog struct {
	ItemID    string    `json:"item_id"`
	Skill     string    `json:"skill"`
	Correct   bool      `json:"correct"`
	Theta     float64   `json:"theta"` // ability estimate when the item was served.
	Timestamp time.Time `json:"timestamp,omitempty"`
}
