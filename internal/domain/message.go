package domain

// Entity kinds carried on Telegram messages that matter for link detection.
const (
	EntityTextLink = "text_link"
	EntityURL      = "url"
)

// Sender identifies the author of an inbound post. Channel posts carry no
// sender; Post.Sender is nil in that case.
type Sender struct {
	ID        int64
	IsBot     bool
	Username  string
	FirstName string
	LastName  string
}

// Entity is one rich-text annotation on a post's text or caption. Offset and
// Length are in UTF-16 code units, per the Telegram Bot API.
type Entity struct {
	Kind   string
	Offset int
	Length int
	URL    string // set for text_link entities only
}

// Post is the normalized shape of one inbound chat message or channel post.
// The webhook adapter produces it; the pipeline only reads it.
type Post struct {
	MessageID       int
	ChatID          int64
	Sender          *Sender
	Text            string
	Caption         string
	Entities        []Entity
	CaptionEntities []Entity
}
