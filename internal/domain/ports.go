package domain

import "context"

// Fetcher looks up catalog metadata for a classified resource. A nil record
// with a non-nil error means metadata is unavailable; callers degrade to a
// fallback notice instead of failing the event.
type Fetcher interface {
	Fetch(ctx context.Context, entity ResolvedEntity) (*MetadataRecord, error)
}

// Notifier delivers replies back to the chat platform. Both operations are
// awaited so delivery failures can be logged, but are never retried.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string, replyTo int) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, replyTo int) error
}
