package modelcloudru

// FallbackConfig is accepted by NewWithFallback for source compatibility with
// callers of the removed secondary-provider variant. The fallback fields are
// ignored.
//
// Deprecated: use Config with New.
type FallbackConfig struct {
	Config

	// UseOpenAIFallback is ignored; the secondary-provider path was removed
	// on purpose and must not come back.
	UseOpenAIFallback bool

	// OpenAIAPIKey is ignored.
	OpenAIAPIKey string
}

// NewWithFallback builds a plain adapter. Despite the name it never dials a
// secondary provider under any circumstance; the constructor survives only as
// an alias.
//
// Deprecated: use New.
func NewWithFallback(cfg FallbackConfig) (*Adapter, error) {
	return New(cfg.Config)
}
