package progress

import "time"

// DefaultCacheTTL is how long an evaluated completion is reused.
const DefaultCacheTTL = 30 * time.Second

// Option configures a [Service].
type Option func(*Service)

// WithCacheTTL sets how long completions are memoized. Zero disables the
// memo cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

// WithNudgeLog enables writing a nudge_fired activity the first time a nudge
// is reported on a given cycle day.
func WithNudgeLog(enabled bool) Option {
	return func(s *Service) { s.logNudges = enabled }
}
