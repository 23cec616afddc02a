package metrics

// Default is the process-wide registry, mirroring the single-instance runtime
// model: one responder process, one set of counters.
var Default = NewRegistry()

var (
	UpdatesReceived   = Default.NewCounter("spotlink_updates_received_total", "Webhook updates accepted")
	LinksDetected     = Default.NewCounter("spotlink_links_detected_total", "Candidate Spotify links extracted")
	NotificationsSent = Default.NewCounter("spotlink_notifications_sent_total", "Preview replies delivered")
	FallbackNotices   = Default.NewCounter("spotlink_fallback_notices_total", "Fallback notices sent instead of previews")
	LookupFailures    = Default.NewCounter("spotlink_lookup_failures_total", "Metadata lookups that returned a non-success status")
	TokenExchanges    = Default.NewCounter("spotlink_token_exchanges_total", "Client-credentials exchanges performed")

	ProcessingSeconds = Default.NewHistogram("spotlink_update_processing_seconds",
		"Time spent processing one webhook update",
		[]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})
)
