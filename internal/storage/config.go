package storage

const (
	KEY_TRACKEDMARKET = "storage::tracked_market"
	KEY_RELAYCURSOR   = "storage::relay_cursor"
)

const (
	STREAM_EVENTS_PREFIX  = "stream::events::"
	CHANNEL_EVENTS_PREFIX = "channel::events::"

	// Streams are capped so an unconsumed market cannot grow without bound.
	MAX_STREAM_LEN = 10000
)

const (
	TABLE_NAME_FILLS = "fills"
	TABLE_NAME_OUTS  = "outs"
)
