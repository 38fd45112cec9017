package settler

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ErrPolicyViolation is returned by [Policy.Check] for settlements which must
// not be paid out.
var ErrPolicyViolation = errors.New("settlement violates payout policy")

// Policy groups payout restrictions applied by the [Processor] before
// confirming a settlement.
type Policy struct {
	// Settlements with smaller amount are reverted. Nil means no limit.
	MinPayout *big.Int

	// Receivers never paid out, e.g. compromised or sanctioned accounts.
	BlockedReceivers []util.Uint160
}

// Check returns an error wrapping [ErrPolicyViolation] if the settlement must
// be reverted instead of being paid out.
func (p Policy) Check(r Request) error {
	if r.Amount == nil || r.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: non-positive amount", ErrPolicyViolation)
	}

	if p.MinPayout != nil && r.Amount.Cmp(p.MinPayout) < 0 {
		return fmt.Errorf("%w: amount %s is less than %s", ErrPolicyViolation, r.Amount, p.MinPayout)
	}

	for i := range p.BlockedReceivers {
		if p.BlockedReceivers[i].Equals(r.Receiver) {
			return fmt.Errorf("%w: receiver %s is blocked", ErrPolicyViolation, r.Receiver.StringLE())
		}
	}

	return nil
}
