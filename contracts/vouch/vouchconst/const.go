package vouchconst

// Error message prefixes the contract panics with.
const (
	ErrInvalidArgument    = "invalid argument"
	ErrNotFound           = "not found"
	ErrNotInitialized     = "epoch is not initialized"
	ErrAlreadyInitialized = "epoch is already initialized"
	ErrUnauthorized       = "unauthorized"
	ErrOverflow           = "128-bit overflow"
)

// Identifier prefixes of the generated record IDs.
const (
	ItemIDPrefix  = "news-"
	StakeIDPrefix = "vouch-"
)

const (
	// MaxTitleLength is the maximum title length of the news item in bytes.
	MaxTitleLength = 256
	// MaxLinkLength is the maximum link length of the news item in bytes.
	MaxLinkLength = 1024

	// DefaultPayoutCount is the number of items paid out per epoch unless
	// configured otherwise on deploy.
	DefaultPayoutCount = 3
	// DefaultSettlementTimeout is the time in milliseconds the settlement
	// processor has to confirm payouts unless configured otherwise on deploy.
	DefaultSettlementTimeout = 86_400_000
)
