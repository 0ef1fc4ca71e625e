package domain

// StandupStatus reports whether a channel currently has an active
// standup and, if so, when it finishes (unix seconds).
type StandupStatus struct {
	IsActive   bool  `json:"is_active"`
	TimeFinish int64 `json:"time_finish,omitempty"`
}

// SendReceipt is the result of a send. During an active standup the
// line is buffered into the standup instead of appended to the log, in
// which case Buffered is true and no message id exists yet.
type SendReceipt struct {
	MessageID int64 `json:"message_id,omitempty"`
	Buffered  bool  `json:"buffered,omitempty"`
}
