package itemstate

// Type is an enumeration for news item settlement states.
type Type int

// Various news item states.
const (
	_ Type = iota

	// Active stands for items accepting stakes and taking part in the
	// next epoch release.
	Active

	// PendingSettlement stands for items selected by an epoch release
	// whose payout is not confirmed yet. Their stake is kept intact until
	// confirmation.
	PendingSettlement

	// Settled stands for items whose stake was paid out. The next stake
	// returns the item to Active.
	Settled
)
