package itemcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them inline on every operation.
type Hooks interface {
	// Stored bytes under key could not be parsed as an envelope.
	MalformedEnvelope(key string, err error)

	// An envelope parsed but its payload did not decode as t.
	DecodeFailed(key string, t Type, err error)

	// Put got an expiration less than a second away (or past) and wrote with TTL 0.
	ExpiredOnWrite(key string)

	// Get found an envelope past its recorded expiration and dropped it.
	ExpiredOnRead(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) MalformedEnvelope(string, error)  {}
func (NopHooks) DecodeFailed(string, Type, error) {}
func (NopHooks) ExpiredOnWrite(string)            {}
func (NopHooks) ExpiredOnRead(string)             {}
