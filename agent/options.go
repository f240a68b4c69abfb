package agent

// GenerateOptions carries per-call generation overrides. Nil numeric fields
// fall back to the adapter's configured defaults.
type GenerateOptions struct {
	// StopSequences is deliberately loosely typed: callers hand through
	// whatever collection their framework produced, and the adapter filters
	// it down to usable strings before dispatch.
	StopSequences []any

	// ResponseFormat is accepted for interface compatibility and ignored.
	ResponseFormat any

	Temperature     *float64
	MaxTokens       *int
	TopP            *float64
	PresencePenalty *float64
}
