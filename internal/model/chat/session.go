package chat

// Snapshot captures the visible state of a conversation at one instant.
type Snapshot struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Loading    bool      `json:"loading"`
	Transcript []Message `json:"transcript"`
}
