// Package pipeline orchestrates one inbound post: extract candidate links,
// normalize and classify each one, fetch metadata, and reply. Links are
// processed strictly sequentially; a failure on one link degrades to a
// fallback or error notice and never aborts the remaining links.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"spotlink/internal/classify"
	"spotlink/internal/domain"
	"spotlink/internal/extract"
	"spotlink/internal/metrics"
	"spotlink/internal/notify"
	"spotlink/internal/shortlink"
)

// Pipeline wires the link-detection stages to a metadata fetcher and a
// notifier.
type Pipeline struct {
	resolver *shortlink.Resolver
	fetcher  domain.Fetcher
	notifier domain.Notifier
	logger   *slog.Logger
}

// Config collects the pipeline's collaborators.
type Config struct {
	Resolver *shortlink.Resolver
	Fetcher  domain.Fetcher
	Notifier domain.Notifier
	Logger   *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		resolver: cfg.Resolver,
		fetcher:  cfg.Fetcher,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}
}

// Process handles one normalized post. Messages authored by bots are
// suppressed to avoid echo loops; posts without candidate links are a no-op.
func (p *Pipeline) Process(ctx context.Context, post *domain.Post) {
	if post == nil {
		return
	}
	if post.Sender != nil && post.Sender.IsBot {
		p.logger.Debug("ignoring bot message", "chat_id", post.ChatID)
		return
	}

	links := extract.FromPost(post)
	if len(links) == 0 {
		return
	}
	metrics.LinksDetected.Add(int64(len(links)))

	started := time.Now()
	announcer := notify.Announcer(post.Sender)
	for _, link := range links {
		p.processLink(ctx, post, link, announcer)
	}
	metrics.ProcessingSeconds.Observe(time.Since(started).Seconds())
}

func (p *Pipeline) processLink(ctx context.Context, post *domain.Post, link, announcer string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("unexpected failure processing link", "link", link, "panic", r)
			p.sendNotice(ctx, post, notify.ErrorNotice(announcer))
		}
	}()

	canonical := link
	if shortlink.IsShortLink(link) {
		resolved, err := p.resolver.Resolve(ctx, link)
		if err != nil {
			// An unresolved short link cannot be classified; the link is
			// skipped rather than posted literally.
			p.logger.Warn("short link did not resolve", "link", link, "err", err)
			return
		}
		canonical = resolved
	}

	entity := classify.Classify(canonical)
	if entity == nil {
		p.logger.Debug("link does not describe a recognized resource", "link", canonical)
		return
	}

	meta, err := p.fetcher.Fetch(ctx, *entity)
	if err != nil || meta == nil {
		if err != nil {
			p.logger.Warn("metadata unavailable", "kind", entity.Kind, "id", entity.ID, "err", err)
		}
		metrics.FallbackNotices.Inc()
		p.sendNotice(ctx, post, notify.FallbackNotice(announcer))
		return
	}

	text := notify.Render(meta, announcer)
	if meta.ImageURL != "" {
		err = p.notifier.SendPhoto(ctx, post.ChatID, meta.ImageURL, text, post.MessageID)
	} else {
		err = p.notifier.SendText(ctx, post.ChatID, text+"\n"+meta.CanonicalURL, post.MessageID)
	}
	if err != nil {
		// Delivery is fire-and-forget: log, no retry.
		p.logger.Error("reply delivery failed", "link", link, "err", err)
		return
	}
	metrics.NotificationsSent.Inc()
}

func (p *Pipeline) sendNotice(ctx context.Context, post *domain.Post, text string) {
	if err := p.notifier.SendText(ctx, post.ChatID, text, post.MessageID); err != nil {
		p.logger.Error("notice delivery failed", "chat_id", post.ChatID, "err", err)
	}
}
