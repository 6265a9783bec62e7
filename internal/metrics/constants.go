package metrics

// Metric Names
const (
	MetricNameHTTPRequestsTotal    = "playersync_http_requests_total"
	MetricNameHTTPRequestDuration  = "playersync_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "playersync_http_requests_in_flight"
	MetricNameJoinsTotal           = "playersync_joins_total"
	MetricNameSavesTotal           = "playersync_saves_total"
	MetricNameTransfersTotal       = "playersync_transfers_total"
	MetricNameStoreOpDuration      = "playersync_store_operation_duration_seconds"
)

// Help Text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"
	HelpTextJoinsTotal           = "Player joins handled, labeled by outcome (bootstrap or load)"
	HelpTextSavesTotal           = "Player state saves, labeled by trigger and result"
	HelpTextTransfersTotal       = "Transfer requests, labeled by result"
	HelpTextStoreOpDuration      = "Store operation latency in seconds, labeled by operation"
)

// Label Names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOutcome   = "outcome"
	LabelTrigger   = "trigger"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Join outcome label values
const (
	OutcomeBootstrap = "bootstrap"
	OutcomeLoad      = "load"
)

// Save trigger label values
const (
	TriggerLeave    = "leave"
	TriggerShutdown = "shutdown"
	TriggerTransfer = "transfer"
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// HTTPLatencyBuckets are histogram buckets tuned for local store calls
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
