package constants

import "time"

const (
	// ParserAPITimeout bounds one replay parse round trip; parsing a long
	// game can take tens of seconds.
	ParserAPITimeout = 60 * time.Second
	DatabaseTimeout  = 5 * time.Second
	RequestTimeout   = 30 * time.Second
)

const (
	DBMaxOpenConns    = 50
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	// RebuildFanout caps concurrent replay reads during an index rebuild.
	RebuildFanout = 8
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MaxUploadBytes bounds one replay file upload.
	MaxUploadBytes = 16 << 20

	// DefaultTimelineInterval is the sampling interval, in game seconds,
	// for dense timelines served to charts.
	DefaultTimelineInterval = 30
)
