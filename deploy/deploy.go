package deploy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the Vouch contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the Vouch contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the contract to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// Contract address depends on it.
	LocalAccount *wallet.Account

	Contract CommonDeployPrm

	// Account allowed to initialize epoch and change the settler.
	Admin util.Uint160

	// Account of the settlement processor.
	Settler util.Uint160

	// Number of top staked items paid out per epoch. Contract default is used
	// if zero.
	PayoutCount int64

	// Milliseconds given to the settlement processor to resolve requested
	// settlements. Contract default is used if zero.
	SettlementTimeout int64

	// Initialize settlement epoch right after the deployment. LocalAccount
	// must be the Admin.
	InitializeEpoch bool
}

// Deploy makes the Vouch contract available on the chain represented by
// given Prm.Blockchain and returns its address.
//
// Deploy is idempotent: contract already deployed by the LocalAccount is not
// deployed again, and already initialized epoch is not initialized again.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	if err := ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	if prm.LocalAccount == nil {
		return util.Uint160{}, errors.New("missing local account")
	}

	if prm.InitializeEpoch && !prm.Admin.Equals(prm.LocalAccount.ScriptHash()) {
		return util.Uint160{}, errors.New("epoch can be initialized by the admin account only")
	}

	log := prm.Logger
	if log == nil {
		log = zap.NewNop()
	}

	localActor, err := actor.NewTuned(prm.Blockchain, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: prm.LocalAccount.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: prm.LocalAccount,
	}}, actor.Options{
		CheckerModifier: deterministicTransactionModifier(func() uint32 {
			h, err := prm.Blockchain.GetBlockCount()
			if err != nil || h == 0 {
				return 0
			}
			return h - 1
		}),
	})
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	addr := ExpectedAddress(prm.LocalAccount.ScriptHash(), prm.Contract)
	l := log.With(zap.Stringer("address", addr))

	deployed, err := isDeployed(prm.Blockchain, addr)
	if err != nil {
		return util.Uint160{}, err
	}

	if deployed {
		l.Info("Vouch contract is already deployed")
	} else {
		l.Info("deploying Vouch contract...")

		res, err := localActor.Wait(management.New(localActor).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, DeployArgs(prm)))
		if err != nil {
			return util.Uint160{}, fmt.Errorf("deploy Vouch contract: %w", err)
		}
		if err := checkHalt(res); err != nil {
			return util.Uint160{}, fmt.Errorf("deploy Vouch contract: %w", err)
		}

		l.Info("Vouch contract successfully deployed", zap.Stringer("tx", res.Container))
	}

	if !prm.InitializeEpoch {
		return addr, nil
	}

	vouchContract := vouch.New(localActor, addr)

	_, err = vouchContract.EpochMarker()
	if err == nil {
		l.Info("settlement epoch is already initialized")
		return addr, nil
	}
	if !strings.Contains(err.Error(), "epoch is not initialized") {
		return util.Uint160{}, fmt.Errorf("read epoch marker: %w", err)
	}

	res, err := localActor.Wait(vouchContract.InitializeEpoch())
	if err != nil {
		return util.Uint160{}, fmt.Errorf("initialize settlement epoch: %w", err)
	}
	if err := checkHalt(res); err != nil {
		return util.Uint160{}, fmt.Errorf("initialize settlement epoch: %w", err)
	}

	l.Info("settlement epoch successfully initialized", zap.Stringer("tx", res.Container))

	return addr, nil
}

// ExpectedAddress returns address of the contract deployed by the sender.
func ExpectedAddress(sender util.Uint160, c CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

// DeployArgs returns data passed to the contract on deployment.
func DeployArgs(prm Prm) []any {
	return []any{prm.Admin, prm.Settler, prm.PayoutCount, prm.SettlementTimeout}
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}
	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}
	return false, fmt.Errorf("get state of the contract %s: %w", addr.StringLE(), err)
}

func checkHalt(res *state.AppExecResult) error {
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", res.Container.StringLE(), res.FaultException)
	}
	return nil
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Repeated deployment attempts within
// the same span produce the same transaction.
func deterministicTransactionModifier(getBlockchainHeight func() uint32) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight := getBlockchainHeight()
		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
