package models

// API models

// APIResponse is the envelope of every API reply
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordViewResponse is returned after a view has been recorded
// Recorded is false when the counter store could not persist the view;
// Increment and Total then report the unchanged base figure.
type RecordViewResponse struct {
	EpisodeID int  `json:"episode_id"`
	Recorded  bool `json:"recorded"`
	Increment int  `json:"increment"`
	Total     int  `json:"total"`
}

// EpisodeResponse is an episode together with its current view figure
type EpisodeResponse struct {
	Episode
	State string `json:"state"`
	Views int    `json:"views"`
}
