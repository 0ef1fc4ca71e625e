package domain

const (
	// MaxMessageLen caps direct sends, edits and standup contributions.
	// Composite standup messages are exempt: the flush joins buffered
	// lines without re-checking length.
	MaxMessageLen = 1000

	// MessagePageSize is the pagination window width.
	MessagePageSize = 50

	// PageEnd marks a page that reached the oldest message.
	PageEnd = -1
)

// Message is one entry in a channel's append-ordered log. Removal
// tombstones in place: the body is cleared and the id stays, so ids are
// never reused and pagination offsets never shift.
type Message struct {
	ID        int64  `json:"message_id"`
	ChannelID int64  `json:"channel_id"`
	SenderID  int64  `json:"sender_id"`
	Body      string `json:"message"`
	CreatedAt int64  `json:"time_created"`
	Removed   bool   `json:"removed,omitempty"`
}

// MessagePage is one 50-wide window over a channel's log, most recent
// first. End is start+50 when more remain, PageEnd otherwise.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
}
