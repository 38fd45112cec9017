package settler

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
	"go.uber.org/zap"
)

// Ledger groups Vouch contract methods used by the [Processor]. It is
// implemented by vouch.Contract.
type Ledger interface {
	// PendingSettlements returns all settlements waiting for the decision.
	PendingSettlements() ([]*vouch.VouchSettlement, error)

	// IsReleaseDue checks whether the current epoch can be released.
	IsReleaseDue() (bool, error)

	// ReleaseIfDue sends transaction starting the epoch release.
	ReleaseIfDue() (util.Uint256, uint32, error)

	// ConfirmSettlement sends transaction paying out the settlement.
	ConfirmSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error)

	// RevertSettlement sends transaction returning the item to the Active
	// state without payout.
	RevertSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error)
}

// Request is a settlement waiting for the [Processor] decision.
type Request struct {
	Epoch    *big.Int
	ItemID   string
	Receiver util.Uint160
	Amount   *big.Int
}

// Prm groups parameters of the [Processor].
type Prm struct {
	// Writes processing details into the log.
	Logger *zap.Logger

	// Vouch contract client signing transactions by the settler account.
	Ledger Ledger

	Policy Policy

	// Interval between reconciliation rounds. Zero disables periodic
	// reconciliation, it is done once on start only.
	ReconcileInterval time.Duration

	// Time after which a decision for unresolved settlement is sent again.
	RetryAfter time.Duration

	// Start epoch release when it is due.
	AutoRelease bool
}

// Processor answers settlement requests of the Vouch contract: it confirms
// payouts allowed by the [Policy] and reverts the others.
//
// Processor is resistant to event replay: the decision for a particular
// settlement is sent once per [Prm.RetryAfter] period.
type Processor struct {
	log               *zap.Logger
	ledger            Ledger
	policy            Policy
	reconcileInterval time.Duration
	retryAfter        time.Duration
	autoRelease       bool

	now func() time.Time

	mtx         sync.Mutex
	inFlight    map[string]time.Time
	lastRelease time.Time
}

// New constructs Processor from the given parameters.
func New(prm Prm) *Processor {
	log := prm.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Processor{
		log:               log,
		ledger:            prm.Ledger,
		policy:            prm.Policy,
		reconcileInterval: prm.ReconcileInterval,
		retryAfter:        prm.RetryAfter,
		autoRelease:       prm.AutoRelease,
		now:               time.Now,
		inFlight:          make(map[string]time.Time),
	}
}

// Run reconciles pending settlements and then processes contract
// notifications until the context is done or the notification channel is
// closed. The latter is reported as an error.
func (p *Processor) Run(ctx context.Context, notifications <-chan *state.ContainedNotificationEvent) error {
	if err := p.Reconcile(); err != nil {
		p.log.Error("initial reconciliation failed", zap.Error(err))
	}

	var tick <-chan time.Time
	if p.reconcileInterval > 0 {
		t := time.NewTicker(p.reconcileInterval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			p.log.Info("settlement processor stopped", zap.Error(ctx.Err()))
			return nil
		case n, ok := <-notifications:
			if !ok {
				return errors.New("notification channel is closed")
			}
			p.handleNotification(n)
		case <-tick:
			if err := p.Reconcile(); err != nil {
				p.log.Error("reconciliation failed", zap.Error(err))
			}
		}
	}
}

// HandleRequest makes decision on the settlement requested by the contract.
func (p *Processor) HandleRequest(ev *vouch.SettlementRequestedEvent) error {
	return p.process(Request{
		Epoch:    ev.Epoch,
		ItemID:   ev.ItemID,
		Receiver: ev.Receiver,
		Amount:   ev.Amount,
	})
}

// Reconcile makes decisions on all settlements pending in the contract,
// including ones whose requests were missed. With [Prm.AutoRelease] it also
// starts epoch release if it is due.
func (p *Processor) Reconcile() error {
	pending, err := p.ledger.PendingSettlements()
	if err != nil {
		return fmt.Errorf("read pending settlements: %w", err)
	}

	var errs []error

	if p.autoRelease {
		if err := p.releaseIfDue(pending); err != nil {
			errs = append(errs, err)
		}
	}

	for _, s := range pending {
		err := p.process(Request{
			Epoch:    s.Epoch,
			ItemID:   s.ItemID,
			Receiver: s.Receiver,
			Amount:   s.Amount,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *Processor) releaseIfDue(pending []*vouch.VouchSettlement) error {
	nowMs := big.NewInt(p.now().UnixMilli())
	for _, s := range pending {
		if s.Deadline.Cmp(nowMs) >= 0 {
			// release is in progress and can't be restarted yet
			return nil
		}
	}

	due, err := p.ledger.IsReleaseDue()
	if err != nil {
		return fmt.Errorf("check epoch release: %w", err)
	}
	if !due {
		return nil
	}

	p.mtx.Lock()
	if p.now().Sub(p.lastRelease) < p.retryAfter {
		p.mtx.Unlock()
		return nil
	}
	p.lastRelease = p.now()
	p.mtx.Unlock()

	txHash, vub, err := p.ledger.ReleaseIfDue()
	if err != nil {
		p.mtx.Lock()
		p.lastRelease = time.Time{}
		p.mtx.Unlock()
		return fmt.Errorf("send epoch release: %w", err)
	}

	p.log.Info("epoch release sent", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	return nil
}

func (p *Processor) process(r Request) error {
	key := requestKey(r.ItemID, r.Epoch)
	l := p.log.With(
		zap.String("item", r.ItemID),
		zap.Stringer("epoch", r.Epoch),
		zap.Stringer("receiver", r.Receiver),
		zap.Stringer("amount", r.Amount),
	)

	p.mtx.Lock()
	if sent, ok := p.inFlight[key]; ok && p.now().Sub(sent) < p.retryAfter {
		p.mtx.Unlock()
		l.Debug("settlement decision has already been sent")
		return nil
	}
	p.inFlight[key] = p.now()
	p.mtx.Unlock()

	var (
		txHash  util.Uint256
		vub     uint32
		err     error
		confirm = true
	)

	if policyErr := p.policy.Check(r); policyErr != nil {
		l.Warn("settlement is rejected", zap.Error(policyErr))
		confirm = false
		txHash, vub, err = p.ledger.RevertSettlement(r.ItemID, r.Epoch)
	} else {
		txHash, vub, err = p.ledger.ConfirmSettlement(r.ItemID, r.Epoch)
	}
	if err != nil {
		p.forget(key)
		return fmt.Errorf("send decision on settlement of %s: %w", r.ItemID, err)
	}

	l.Info("settlement decision sent",
		zap.Bool("confirm", confirm),
		zap.Stringer("tx", txHash),
		zap.Uint32("vub", vub))

	return nil
}

func (p *Processor) handleNotification(n *state.ContainedNotificationEvent) {
	l := p.log.With(zap.String("event", n.Name), zap.Stringer("tx", n.Container))

	switch n.Name {
	case "SettlementRequested":
		ev := new(vouch.SettlementRequestedEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			l.Error("invalid notification", zap.Error(err))
			return
		}
		if err := p.HandleRequest(ev); err != nil {
			l.Error("failed to process settlement request", zap.Error(err))
		}
	case "SettlementConfirmed":
		ev := new(vouch.SettlementConfirmedEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			l.Error("invalid notification", zap.Error(err))
			return
		}
		p.forget(requestKey(ev.ItemID, ev.Epoch))
		l.Info("settlement confirmed", zap.String("item", ev.ItemID), zap.Stringer("amount", ev.Amount))
	case "SettlementReverted":
		ev := new(vouch.SettlementRevertedEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			l.Error("invalid notification", zap.Error(err))
			return
		}
		p.forget(requestKey(ev.ItemID, ev.Epoch))
		l.Info("settlement reverted", zap.String("item", ev.ItemID))
	case "EpochSettled":
		ev := new(vouch.EpochSettledEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			l.Error("invalid notification", zap.Error(err))
			return
		}
		l.Info("epoch settled", zap.Stringer("epoch", ev.Epoch))
	case "EpochsSkipped":
		ev := new(vouch.EpochsSkippedEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			l.Error("invalid notification", zap.Error(err))
			return
		}
		l.Warn("epochs were skipped", zap.Stringer("marker", ev.Marker), zap.Stringer("missed", ev.Missed))
	}
}

func (p *Processor) forget(key string) {
	p.mtx.Lock()
	delete(p.inFlight, key)
	p.mtx.Unlock()
}

func requestKey(itemID string, epoch *big.Int) string {
	return itemID + "/" + epoch.String()
}
