package vouch

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	batches    [][]stackitem.Item
	traversed  int
	terminated []uuid.UUID
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) TraverseIterator(_ uuid.UUID, iter *result.Iterator, num int) ([]stackitem.Item, error) {
	if iter.ID == nil {
		n := min(num, len(iter.Values))
		items := iter.Values[:n]
		iter.Values = iter.Values[n:]
		return items, nil
	}
	if t.traversed == len(t.batches) {
		return nil, nil
	}
	b := t.batches[t.traversed]
	t.traversed++
	return b, nil
}

func (t *testInv) TerminateSession(id uuid.UUID) error {
	t.terminated = append(t.terminated, id)
	return nil
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: "HALT",
		Stack: items,
	}
}

func newsItem(id string, sharer util.Uint160, stake int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBuffer([]byte(id)),
		stackitem.NewByteArray(sharer.BytesBE()),
		stackitem.Make("title of " + id),
		stackitem.Make(""),
		stackitem.Make(stake),
		stackitem.Make(1700000000000),
		stackitem.Make(1),
	})
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetItem("news-0")
	require.Error(t, err)
	_, err = r.ListItems()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{State: "FAULT", FaultException: "not found: news item news-0"}
	_, err = r.GetItem("news-0")
	require.Error(t, err)

	ti.res = halt(stackitem.Make(42))
	_, err = r.GetItem("news-0")
	require.Error(t, err)
	_, err = r.ListItems()
	require.Error(t, err)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{stackitem.Make("news-0")}))
	_, err = r.GetItem("news-0")
	require.ErrorContains(t, err, "wrong number of structure elements")

	ti.res = halt(stackitem.NewArray([]stackitem.Item{stackitem.Make(1)}))
	_, err = r.TopByStake(big.NewInt(1))
	require.ErrorContains(t, err, "item 0")
}

func TestReaderItems(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	sharer := util.Uint160{9, 8, 7}

	ti.res = halt(newsItem("news-0", sharer, 15))
	item, err := r.GetItem("news-0")
	require.NoError(t, err)
	require.Equal(t, &VouchNewsItem{
		ID:          "news-0",
		Sharer:      sharer,
		Title:       "title of news-0",
		Link:        "",
		TotalStaked: big.NewInt(15),
		CreatedAt:   big.NewInt(1700000000000),
		State:       ItemStateActive,
	}, item)

	ti.res = halt(stackitem.NewArray([]stackitem.Item{
		newsItem("news-1", sharer, 20),
		newsItem("news-0", sharer, 15),
	}))
	items, err := r.TopByStake(big.NewInt(2))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "news-1", items[0].ID)
	require.Equal(t, "news-0", items[1].ID)

	ti.res = halt(stackitem.NewArray(nil))
	items, err = r.ListItems()
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestReaderPendingSettlements(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	receiver := util.Uint160{4, 5, 6}

	ti.res = halt(stackitem.NewArray([]stackitem.Item{
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make("news-3"),
			stackitem.NewByteArray(receiver.BytesBE()),
			stackitem.Make(100),
			stackitem.Make(86400000),
			stackitem.Make(172800000),
		}),
	}))
	res, err := r.PendingSettlements()
	require.NoError(t, err)
	require.Equal(t, []*VouchSettlement{{
		ItemID:   "news-3",
		Receiver: receiver,
		Amount:   big.NewInt(100),
		Epoch:    big.NewInt(86400000),
		Deadline: big.NewInt(172800000),
	}}, res)
}

func TestTraverseItems(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	sharer := util.Uint160{9, 8, 7}

	sessionID := uuid.New()
	iterID := uuid.New()
	ti.res = &result.Invoke{
		State:   "HALT",
		Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
		Session: sessionID,
	}

	full := make([]stackitem.Item, ItemsBatchSize)
	for i := range full {
		full[i] = newsItem("news-x", sharer, int64(i))
	}
	ti.batches = [][]stackitem.Item{full, {newsItem("news-last", sharer, 1)}}

	var ids []string
	err := r.TraverseItems(func(item *VouchNewsItem) error {
		ids = append(ids, item.ID)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, ids, ItemsBatchSize+1)
	require.Equal(t, "news-last", ids[len(ids)-1])
	require.Equal(t, []uuid.UUID{sessionID}, ti.terminated)

	t.Run("callback error", func(t *testing.T) {
		ti.traversed = 0
		ti.terminated = nil
		stop := errors.New("stop")
		err := r.TraverseItems(func(*VouchNewsItem) error { return stop })
		require.ErrorIs(t, err, stop)
		require.Equal(t, []uuid.UUID{sessionID}, ti.terminated)
	})

	t.Run("expanded iterator", func(t *testing.T) {
		ti.terminated = nil
		ti.res = halt(stackitem.NewInterop(result.Iterator{Values: []stackitem.Item{
			newsItem("news-0", sharer, 3),
			newsItem("news-1", sharer, 0),
		}}))

		var ids []string
		err := r.TraverseItems(func(item *VouchNewsItem) error {
			ids = append(ids, item.ID)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"news-0", "news-1"}, ids)
		require.Empty(t, ti.terminated)
	})

	t.Run("session without ID", func(t *testing.T) {
		iterID := uuid.New()
		ti.res = halt(stackitem.NewInterop(result.Iterator{ID: &iterID}))
		err := r.TraverseItems(func(*VouchNewsItem) error { return nil })
		require.Error(t, err)
	})
}

func TestSettlementEventsFromApplicationLog(t *testing.T) {
	receiver := util.Uint160{4, 5, 6}
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "SettlementRequested",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(86400000),
						stackitem.Make("news-1"),
						stackitem.NewByteArray(receiver.BytesBE()),
						stackitem.Make(70),
					}),
				},
				{
					Name: "EpochsSkipped",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(0),
						stackitem.Make(86400000 * 3),
						stackitem.Make(2),
					}),
				},
			},
		}},
	}

	reqs, err := SettlementRequestedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*SettlementRequestedEvent{{
		Epoch:    big.NewInt(86400000),
		ItemID:   "news-1",
		Receiver: receiver,
		Amount:   big.NewInt(70),
	}}, reqs)

	skipped, err := EpochsSkippedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	require.Equal(t, big.NewInt(2), skipped[0].Missed)

	confirmed, err := SettlementConfirmedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Empty(t, confirmed)

	_, err = SettlementRequestedEventsFromApplicationLog(nil)
	require.Error(t, err)

	log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = SettlementRequestedEventsFromApplicationLog(log)
	require.Error(t, err)
}
