package touchviz

import "github.com/gogpu/gg"

// Option configures a Visualizer during creation.
//
// Example:
//
//	v, err := touchviz.New(host,
//	    touchviz.WithRadius(20),
//	    touchviz.WithColor(gg.Hex("#33aaff")),
//	)
type Option func(*options)

// options holds the Visualizer configuration.
type options struct {
	radius  float64
	color   gg.RGBA
	opacity float32
	depth   int
	policy  DuplicatePolicy
	dedup   bool
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		radius:  DefaultRadius,
		color:   DefaultColor,
		opacity: 1,
		depth:   DefaultHistoryDepth,
		policy:  DuplicateReset,
		dedup:   true,
	}
}

func (o options) validate() error {
	if o.radius <= 0 {
		return ErrInvalidRadius
	}
	if o.opacity < 0 || o.opacity > 1 {
		return ErrInvalidOpacity
	}
	if o.depth < 0 || o.depth > MaxHistoryDepth {
		return ErrInvalidHistoryDepth
	}
	return nil
}

// DuplicatePolicy selects how a down event for an already tracked id is
// handled.
type DuplicatePolicy uint8

const (
	// DuplicateReset treats the event as an implicit up followed by a down:
	// the old marker is flushed and the contact restarts with empty history.
	// This tolerates hosts that reuse ids before delivering the up event.
	DuplicateReset DuplicatePolicy = iota

	// DuplicateReject keeps the tracked contact and drops the event.
	DuplicateReject
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReset:
		return "reset"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses "reset" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch s {
	case "reset", "":
		return DuplicateReset, true
	case "reject":
		return DuplicateReject, true
	default:
		return 0, false
	}
}

// WithRadius sets the marker radius in output pixels (default 15).
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithColor sets the marker color (default translucent yellow).
func WithColor(c gg.RGBA) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithOpacity sets the opacity the marker texture is drawn with (default 1).
// The marker color's own alpha applies on top.
func WithOpacity(a float32) Option {
	return func(o *options) {
		o.opacity = a
	}
}

// WithHistoryDepth sets how many rendered positions are kept and damaged
// per contact (default DefaultHistoryDepth).
func WithHistoryDepth(n int) Option {
	return func(o *options) {
		o.depth = n
	}
}

// WithDuplicatePolicy sets the duplicate down policy (default DuplicateReset).
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithDedup controls whether a position is damaged at most once per
// contact per frame (default true). Disabling it submits one box per
// history slot even when a finger is still.
func WithDedup(enabled bool) Option {
	return func(o *options) {
		o.dedup = enabled
	}
}
