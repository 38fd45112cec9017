package settler

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
	"go.uber.org/zap/zaptest"
)

type testLedger struct {
	mtx sync.Mutex

	pending    []*vouch.VouchSettlement
	due        bool
	err        error
	confirmed  []string
	reverted   []string
	epochs     map[string]*big.Int
	releases   int
	onDecision func()
}

func (l *testLedger) PendingSettlements() ([]*vouch.VouchSettlement, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.pending, l.err
}

func (l *testLedger) IsReleaseDue() (bool, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.due, l.err
}

func (l *testLedger) ReleaseIfDue() (util.Uint256, uint32, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.err != nil {
		return util.Uint256{}, 0, l.err
	}
	l.releases++
	return util.Uint256{1}, 100, nil
}

func (l *testLedger) ConfirmSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.err != nil {
		return util.Uint256{}, 0, l.err
	}
	l.confirmed = append(l.confirmed, itemID)
	l.recordEpoch(itemID, epoch)
	if l.onDecision != nil {
		l.onDecision()
	}
	return util.Uint256{2}, 100, nil
}

func (l *testLedger) RevertSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.err != nil {
		return util.Uint256{}, 0, l.err
	}
	l.reverted = append(l.reverted, itemID)
	l.recordEpoch(itemID, epoch)
	if l.onDecision != nil {
		l.onDecision()
	}
	return util.Uint256{3}, 100, nil
}

func (l *testLedger) recordEpoch(itemID string, epoch *big.Int) {
	if l.epochs == nil {
		l.epochs = make(map[string]*big.Int)
	}
	l.epochs[itemID] = epoch
}

func (l *testLedger) decisionEpoch(itemID string) *big.Int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.epochs[itemID]
}

func (l *testLedger) decisions() ([]string, []string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return append([]string(nil), l.confirmed...), append([]string(nil), l.reverted...)
}

func newTestProcessor(t *testing.T, l *testLedger, prm Prm) *Processor {
	prm.Logger = zaptest.NewLogger(t)
	prm.Ledger = l
	if prm.RetryAfter == 0 {
		prm.RetryAfter = time.Minute
	}
	return New(prm)
}

func settlementNotification(name string, epoch int64, itemID string, receiver util.Uint160, amount int64) *state.ContainedNotificationEvent {
	return &state.ContainedNotificationEvent{
		NotificationEvent: state.NotificationEvent{
			Name: name,
			Item: stackitem.NewArray([]stackitem.Item{
				stackitem.Make(epoch),
				stackitem.Make(itemID),
				stackitem.NewByteArray(receiver.BytesBE()),
				stackitem.Make(amount),
			}),
		},
	}
}

func TestPolicy(t *testing.T) {
	blocked := util.Uint160{6, 6, 6}
	p := Policy{
		MinPayout:        big.NewInt(10),
		BlockedReceivers: []util.Uint160{blocked},
	}

	require.NoError(t, p.Check(Request{ItemID: "news-0", Receiver: util.Uint160{1}, Amount: big.NewInt(10)}))
	require.ErrorIs(t, p.Check(Request{ItemID: "news-0", Receiver: util.Uint160{1}, Amount: big.NewInt(9)}), ErrPolicyViolation)
	require.ErrorIs(t, p.Check(Request{ItemID: "news-0", Receiver: blocked, Amount: big.NewInt(100)}), ErrPolicyViolation)
	require.ErrorIs(t, p.Check(Request{ItemID: "news-0", Receiver: util.Uint160{1}, Amount: big.NewInt(0)}), ErrPolicyViolation)
	require.ErrorIs(t, Policy{}.Check(Request{ItemID: "news-0"}), ErrPolicyViolation)
	require.NoError(t, Policy{}.Check(Request{ItemID: "news-0", Amount: big.NewInt(1)}))
}

func TestProcessor_HandleRequest(t *testing.T) {
	blocked := util.Uint160{6, 6, 6}
	l := new(testLedger)
	p := newTestProcessor(t, l, Prm{
		Policy: Policy{BlockedReceivers: []util.Uint160{blocked}},
	})

	ev := &vouch.SettlementRequestedEvent{
		Epoch:    big.NewInt(86_400_000),
		ItemID:   "news-1",
		Receiver: util.Uint160{1},
		Amount:   big.NewInt(50),
	}
	require.NoError(t, p.HandleRequest(ev))
	require.Equal(t, big.NewInt(86_400_000), l.decisionEpoch("news-1"))

	t.Run("replay", func(t *testing.T) {
		require.NoError(t, p.HandleRequest(ev))
		confirmed, _ := l.decisions()
		require.Equal(t, []string{"news-1"}, confirmed)
	})

	t.Run("retry after period", func(t *testing.T) {
		p.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		t.Cleanup(func() { p.now = time.Now })

		require.NoError(t, p.HandleRequest(ev))
		confirmed, _ := l.decisions()
		require.Equal(t, []string{"news-1", "news-1"}, confirmed)
	})

	t.Run("blocked receiver", func(t *testing.T) {
		require.NoError(t, p.HandleRequest(&vouch.SettlementRequestedEvent{
			Epoch:    big.NewInt(86_400_000),
			ItemID:   "news-2",
			Receiver: blocked,
			Amount:   big.NewInt(50),
		}))
		_, reverted := l.decisions()
		require.Equal(t, []string{"news-2"}, reverted)
		require.Equal(t, big.NewInt(86_400_000), l.decisionEpoch("news-2"))
	})

	t.Run("send failure", func(t *testing.T) {
		l.err = errors.New("connection lost")
		req := &vouch.SettlementRequestedEvent{
			Epoch:    big.NewInt(86_400_000),
			ItemID:   "news-3",
			Receiver: util.Uint160{1},
			Amount:   big.NewInt(50),
		}
		require.ErrorIs(t, p.HandleRequest(req), l.err)

		l.err = nil
		require.NoError(t, p.HandleRequest(req))
		confirmed, _ := l.decisions()
		require.Contains(t, confirmed, "news-3")
	})
}

func TestProcessor_Reconcile(t *testing.T) {
	now := time.Now()
	deadline := big.NewInt(now.Add(time.Hour).UnixMilli())

	l := &testLedger{
		due: true,
		pending: []*vouch.VouchSettlement{
			{ItemID: "news-0", Receiver: util.Uint160{1}, Amount: big.NewInt(30), Epoch: big.NewInt(1), Deadline: deadline},
			{ItemID: "news-4", Receiver: util.Uint160{2}, Amount: big.NewInt(5), Epoch: big.NewInt(1), Deadline: deadline},
		},
	}
	p := newTestProcessor(t, l, Prm{
		Policy:      Policy{MinPayout: big.NewInt(10)},
		AutoRelease: true,
	})

	require.NoError(t, p.Reconcile())
	confirmed, reverted := l.decisions()
	require.Equal(t, []string{"news-0"}, confirmed)
	require.Equal(t, []string{"news-4"}, reverted)
	require.Equal(t, big.NewInt(1), l.decisionEpoch("news-4"))
	require.Zero(t, l.releases, "release must wait for pending settlements")

	t.Run("auto release", func(t *testing.T) {
		l.pending = nil
		require.NoError(t, p.Reconcile())
		require.Equal(t, 1, l.releases)

		require.NoError(t, p.Reconcile())
		require.Equal(t, 1, l.releases, "release is not repeated until retry period passes")
	})

	t.Run("expired settlements", func(t *testing.T) {
		p.lastRelease = time.Time{}
		l.pending = []*vouch.VouchSettlement{
			{ItemID: "news-0", Receiver: util.Uint160{1}, Amount: big.NewInt(30), Epoch: big.NewInt(1), Deadline: big.NewInt(now.Add(-time.Hour).UnixMilli())},
		}
		require.NoError(t, p.Reconcile())
		require.Equal(t, 2, l.releases)
	})

	t.Run("not due", func(t *testing.T) {
		p.lastRelease = time.Time{}
		l.pending = nil
		l.due = false
		require.NoError(t, p.Reconcile())
		require.Equal(t, 2, l.releases)
	})

	t.Run("read failure", func(t *testing.T) {
		l.err = errors.New("bad")
		t.Cleanup(func() { l.err = nil })
		require.ErrorIs(t, p.Reconcile(), l.err)
	})
}

func TestProcessor_Run(t *testing.T) {
	receiver := util.Uint160{1, 2, 3}
	decided := make(chan struct{}, 10)
	l := &testLedger{
		onDecision: func() { decided <- struct{}{} },
	}
	p := newTestProcessor(t, l, Prm{})

	ntfs := make(chan *state.ContainedNotificationEvent)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx, ntfs) }()

	ntfs <- settlementNotification("SettlementRequested", 86_400_000, "news-7", receiver, 42)
	select {
	case <-decided:
	case <-time.After(5 * time.Second):
		t.Fatal("settlement request was not processed")
	}

	ntfs <- settlementNotification("SettlementConfirmed", 86_400_000, "news-7", receiver, 42)
	ntfs <- &state.ContainedNotificationEvent{
		NotificationEvent: state.NotificationEvent{
			Name: "SettlementRequested",
			Item: stackitem.NewArray([]stackitem.Item{stackitem.Make(1)}),
		},
	}
	ntfs <- &state.ContainedNotificationEvent{
		NotificationEvent: state.NotificationEvent{
			Name: "Staked",
			Item: stackitem.NewArray(nil),
		},
	}

	// decision is sent again after the previous one was resolved
	ntfs <- settlementNotification("SettlementRequested", 86_400_000, "news-7", receiver, 42)
	select {
	case <-decided:
	case <-time.After(5 * time.Second):
		t.Fatal("settlement request was not processed")
	}

	confirmed, _ := l.decisions()
	require.Equal(t, []string{"news-7", "news-7"}, confirmed)

	t.Run("closed channel", func(t *testing.T) {
		close(ntfs)
		select {
		case err := <-errCh:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("processor was not stopped")
		}
	})
}

func TestProcessor_RunCancel(t *testing.T) {
	p := newTestProcessor(t, new(testLedger), Prm{ReconcileInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx, make(chan *state.ContainedNotificationEvent)) }()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("processor was not stopped")
	}
}
