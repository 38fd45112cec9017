package vouch

import (
	"math/big"

	"github.com/vouch-news/vouch-contract/contracts/vouch/itemstate"
)

// Possible news item states in [VouchNewsItem].
var (
	// ItemStateActive is used by items taking part in the next release.
	ItemStateActive = big.NewInt(int64(itemstate.Active))

	// ItemStatePendingSettlement is used by items waiting for payout
	// confirmation.
	ItemStatePendingSettlement = big.NewInt(int64(itemstate.PendingSettlement))

	// ItemStateSettled is used by items whose stake was paid out.
	ItemStateSettled = big.NewInt(int64(itemstate.Settled))
)
