package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/vouch-news/vouch-contract/common"
)

// VouchContractPath is a path to the Vouch contract sources relative to this
// package.
const VouchContractPath = "../contracts/vouch"

type (
	// VouchDeployParams is a param struct for DeployVouchContract func.
	VouchDeployParams struct {
		Admin   util.Uint160
		Settler util.Uint160
		// Zero means contract default
		PayoutCount int64
		// Settlement timeout in milliseconds, zero means contract default
		SettlementTimeout int64
	}
)

// NewVouchDeployParams is a constructor for VouchDeployParams with default
// payout settings.
func NewVouchDeployParams(admin, settler util.Uint160) VouchDeployParams {
	return VouchDeployParams{
		Admin:   admin,
		Settler: settler,
	}
}

// DeployVouchContract compiles and deploys the Vouch contract by the committee
// and returns its address.
func DeployVouchContract(t testing.TB, e *neotest.Executor, params VouchDeployParams) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, VouchContractPath, path.Join(VouchContractPath, "config.yml"))
	e.DeployContract(t, c, []any{params.Admin, params.Settler, params.PayoutCount, params.SettlementTimeout})
	return c.Hash
}

// SetBlockTime adds an empty block with the given timestamp in milliseconds.
// Next invocation is executed in a block with ts+1 timestamp.
func SetBlockTime(t testing.TB, e *neotest.Executor, ts uint64) {
	b := e.NewUnsignedBlock(t)
	b.Timestamp = ts
	require.NoError(t, e.Chain.AddBlock(e.SignBlock(b)))
}

// NextDayStart returns start of the UTC day following the current top block.
func NextDayStart(t testing.TB, e *neotest.Executor) uint64 {
	top := e.TopBlock(t)
	return uint64(common.DayStart(int(top.Timestamp)) + common.DayMs)
}

// ReleaseEpoch moves block time to the given timestamp and starts the epoch
// release signed by the signers.
func ReleaseEpoch(t testing.TB, e *neotest.Executor, vouchHash util.Uint160, ts uint64, signers ...neotest.Signer) {
	SetBlockTime(t, e, ts-1)
	e.NewInvoker(vouchHash, signers...).Invoke(t, stackitem.Null{}, "releaseIfDue")
}
