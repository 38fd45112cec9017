package vouch

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/vouch-news/vouch-contract/common"
	"github.com/vouch-news/vouch-contract/contracts/vouch/itemstate"
	"github.com/vouch-news/vouch-contract/contracts/vouch/vouchconst"
)

type (
	// NewsItem is a shared link which can be endorsed with stakes.
	NewsItem struct {
		ID     string
		Sharer interop.Hash160
		Title  string
		// Empty if the item has no link
		Link string
		// Sum of stakes not paid out yet
		TotalStaked int
		CreatedAt   int
		State       itemstate.Type
	}

	// StakeTransaction is an immutable record of a single stake.
	StakeTransaction struct {
		ID     string
		Sender interop.Hash160
		// Custodial holder of the staked GAS, i.e. the contract itself
		Receiver  interop.Hash160
		ItemID    string
		Amount    int
		CreatedAt int
	}

	// Settlement is a payout requested by the epoch release and waiting for
	// the settlement processor.
	Settlement struct {
		ItemID   string
		Receiver interop.Hash160
		Amount   int
		// Release timestamp, correlates all settlements of the same release
		Epoch    int
		Deadline int
	}

	pendingEpoch struct {
		Epoch       int
		Deadline    int
		Outstanding int
		Confirmed   int
	}
)

const (
	counterPrefix    = "c"
	itemPrefix       = "i"
	itemIndexPrefix  = "n"
	stakePrefix      = "t"
	itemStakesPrefix = "s"
	settlementPrefix = "p"

	markerKey            = "e"
	pendingEpochKey      = "g"
	adminKey             = "a"
	settlerKey           = "r"
	payoutCountKey       = "o"
	settlementTimeoutKey = "d"
	stakeInProgressKey   = "l"

	itemKind  = "news"
	stakeKind = "vouch"

	// ignoreStakeNotification marks GAS transfers made by Stake itself. It is
	// accepted only while Stake is in progress.
	ignoreStakeNotification = "\x76\x6f\x75\x63\x68\x2d\x73\x65\x6c\x66"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin             interop.Hash160
		settler           interop.Hash160
		payoutCount       int
		settlementTimeout int
	})

	if len(args.admin) != interop.Hash160Len {
		panic(vouchconst.ErrInvalidArgument + ": incorrect length of admin address")
	}
	if len(args.settler) != interop.Hash160Len {
		panic(vouchconst.ErrInvalidArgument + ": incorrect length of settler address")
	}

	payoutCount := args.payoutCount
	if payoutCount <= 0 {
		payoutCount = vouchconst.DefaultPayoutCount
	}
	timeout := args.settlementTimeout
	if timeout <= 0 {
		timeout = vouchconst.DefaultSettlementTimeout
	}

	storage.Put(ctx, adminKey, args.admin)
	storage.Put(ctx, settlerKey, args.settler)
	storage.Put(ctx, payoutCountKey, payoutCount)
	storage.Put(ctx, settlementTimeoutKey, timeout)

	runtime.Log("vouch contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("vouch contract updated")
}

// CreateItem registers a news item shared by the given account and returns
// its ID. It can be invoked only by the sharer. Title must be non-empty,
// link may be empty.
//
// It produces ItemCreated notification.
func CreateItem(sharer interop.Hash160, title, link string) string {
	ctx := storage.GetContext()

	if len(sharer) != interop.Hash160Len {
		panic(vouchconst.ErrInvalidArgument + ": incorrect length of sharer address")
	}
	common.CheckOwnerWitness(sharer)

	if len(title) == 0 {
		panic(vouchconst.ErrInvalidArgument + ": empty title")
	}
	if len(title) > vouchconst.MaxTitleLength {
		panic(vouchconst.ErrInvalidArgument + ": title is too long")
	}
	if len(link) > vouchconst.MaxLinkLength {
		panic(vouchconst.ErrInvalidArgument + ": link is too long")
	}

	id, seq := nextID(ctx, itemKind, vouchconst.ItemIDPrefix)
	item := NewsItem{
		ID:          id,
		Sharer:      sharer,
		Title:       title,
		Link:        link,
		TotalStaked: 0,
		CreatedAt:   runtime.GetTime(),
		State:       itemstate.Active,
	}

	common.SetSerialized(ctx, itemPrefix+seq, item)
	storage.Put(ctx, itemIndexPrefix+id, seq)

	runtime.Log("news item created")
	runtime.Notify("ItemCreated", id, sharer, title)

	return id
}

// GetItem returns news item with the given ID. It panics if there is no such
// item.
func GetItem(itemID string) NewsItem {
	ctx := storage.GetReadOnlyContext()
	item, _ := mustGetItem(ctx, itemID)
	return item
}

// ListItems returns all news items in the order of their creation.
func ListItems() []NewsItem {
	ctx := storage.GetReadOnlyContext()

	items := []NewsItem{}
	it := storage.Find(ctx, itemPrefix, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		items = append(items, iterator.Value(it).(NewsItem))
	}

	return items
}

// IterateItems is similar to ListItems but returns iterator over news items
// instead of array.
func IterateItems() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, itemPrefix, storage.ValuesOnly|storage.DeserializeValues)
}

// ItemCount returns the number of registered news items.
func ItemCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, counterPrefix+itemKind)
}

// Stake transfers amount of GAS from the sender to the contract and records
// it as a stake on the news item. It can be invoked only by the sender whose
// witness scope allows GAS transfer called by this contract. Amount must be
// positive and less than 2^128.
//
// It produces Staked notification.
func Stake(sender interop.Hash160, itemID string, amount int) string {
	ctx := storage.GetContext()

	if len(sender) != interop.Hash160Len {
		panic(vouchconst.ErrInvalidArgument + ": incorrect length of sender address")
	}
	common.CheckOwnerWitness(sender)

	if amount <= 0 || amount>>128 != 0 {
		panic(vouchconst.ErrInvalidArgument + ": amount must be positive and less than 2^128")
	}

	mustGetItem(ctx, itemID)

	self := runtime.GetExecutingScriptHash()
	storage.Put(ctx, stakeInProgressKey, []byte{1})
	transferred := gas.Transfer(sender, self, amount, ignoreStakeNotification)
	storage.Delete(ctx, stakeInProgressKey)
	if !transferred {
		panic("can't transfer GAS to the stake pool")
	}

	return recordStake(ctx, sender, itemID, amount)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Plain GAS transfer to the contract is a stake: data must contain the ID of
// the news item to stake on.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("only GAS can be accepted for staking")
	}

	if data != nil && data.(string) == ignoreStakeNotification {
		if storage.Get(storage.GetReadOnlyContext(), stakeInProgressKey) == nil {
			common.AbortWithMessage(vouchconst.ErrInvalidArgument + ": reserved payment data")
		}
		return
	}

	if len(from) != interop.Hash160Len {
		common.AbortWithMessage(vouchconst.ErrInvalidArgument + ": staker is required")
	}
	if amount <= 0 || amount>>128 != 0 {
		common.AbortWithMessage(vouchconst.ErrInvalidArgument + ": amount must be positive and less than 2^128")
	}
	if data == nil {
		common.AbortWithMessage(vouchconst.ErrInvalidArgument + ": news item ID is expected in data")
	}

	ctx := storage.GetContext()
	itemID := data.(string)
	if storage.Get(ctx, itemIndexPrefix+itemID) == nil {
		common.AbortWithMessage(vouchconst.ErrNotFound + ": news item " + itemID)
	}

	recordStake(ctx, from, itemID, amount)
}

// GetStake returns stake transaction with the given ID. It panics if there is
// no such transaction.
func GetStake(stakeID string) StakeTransaction {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, stakePrefix+stakeID)
	if data == nil {
		panic(vouchconst.ErrNotFound + ": stake " + stakeID)
	}

	return std.Deserialize(data.([]byte)).(StakeTransaction)
}

// GetStakesForItem returns all stakes made on the news item in the order they
// were made. It returns empty list for unknown items.
func GetStakesForItem(itemID string) []StakeTransaction {
	ctx := storage.GetReadOnlyContext()

	stakes := []StakeTransaction{}
	seq := storage.Get(ctx, itemIndexPrefix+itemID)
	if seq == nil {
		return stakes
	}

	it := storage.Find(ctx, itemStakesPrefix+seq.(string), storage.ValuesOnly)
	for iterator.Next(it) {
		stakeID := iterator.Value(it).(string)
		data := storage.Get(ctx, stakePrefix+stakeID)
		stakes = append(stakes, std.Deserialize(data.([]byte)).(StakeTransaction))
	}

	return stakes
}

// TopByStake returns at most n news items with the highest total stake in
// descending order. Items with equal stake keep the order of their creation.
func TopByStake(n int) []NewsItem {
	ctx := storage.GetReadOnlyContext()
	return topByStake(ctx, n)
}

// InitializeEpoch sets the epoch marker to the start of the current day. It
// can be invoked only by the contract administrator and only once.
func InitializeEpoch() {
	ctx := storage.GetContext()

	common.CheckAdminWitness(storage.Get(ctx, adminKey).([]byte))

	if storage.Get(ctx, markerKey) != nil {
		panic(vouchconst.ErrAlreadyInitialized)
	}

	storage.Put(ctx, markerKey, common.DayStart(runtime.GetTime()))

	runtime.Log("settlement epoch initialized")
}

// EpochMarker returns start of the UTC day (in milliseconds) of the last
// settled epoch.
func EpochMarker() int {
	ctx := storage.GetReadOnlyContext()
	return mustGetMarker(ctx)
}

// IsReleaseDue returns true if current block belongs to a later day than the
// last settled epoch.
func IsReleaseDue() bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsReleaseDue(mustGetMarker(ctx), runtime.GetTime())
}

// ReleaseIfDue starts settlement of the current epoch if it is due. It can
// be invoked by anyone.
//
// Expired settlements of the previous release are reverted first. While a
// release is waiting for the settlement processor, the method does nothing.
// Otherwise it selects top staked items (number is set on deploy), moves them
// to PendingSettlement state and requests payouts. Epoch marker is advanced
// on confirmation, or immediately if there is nothing to pay out.
//
// It produces SettlementRequested notification per item, EpochsSkipped
// notification if more than one day has passed since the last settlement and
// EpochSettled notification if there is nothing to pay out.
func ReleaseIfDue() {
	ctx := storage.GetContext()

	mustGetMarker(ctx)
	now := runtime.GetTime()

	expirePendingEpoch(ctx, now)

	if storage.Get(ctx, pendingEpochKey) != nil {
		runtime.Log("previous release is in progress")
		return
	}

	marker := mustGetMarker(ctx)
	if !common.IsReleaseDue(marker, now) {
		return
	}

	missed := common.MissedEpochs(marker, now)
	if missed > 0 {
		runtime.Notify("EpochsSkipped", marker, now, missed)
	}

	timeout := common.GetInt(ctx, settlementTimeoutKey)
	top := topByStake(ctx, common.GetInt(ctx, payoutCountKey))

	requested := 0
	for i := range top {
		item := top[i]
		if item.TotalStaked == 0 {
			break
		}

		seq := storage.Get(ctx, itemIndexPrefix+item.ID).(string)

		item.State = itemstate.PendingSettlement
		common.SetSerialized(ctx, itemPrefix+seq, item)

		s := Settlement{
			ItemID:   item.ID,
			Receiver: item.Sharer,
			Amount:   item.TotalStaked,
			Epoch:    now,
			Deadline: now + timeout,
		}
		common.SetSerialized(ctx, settlementPrefix+seq, s)

		runtime.Notify("SettlementRequested", now, item.ID, item.Sharer, item.TotalStaked)
		requested++
	}

	if requested == 0 {
		finalizeEpoch(ctx, now)
		return
	}

	common.SetSerialized(ctx, pendingEpochKey, pendingEpoch{
		Epoch:       now,
		Deadline:    now + timeout,
		Outstanding: requested,
		Confirmed:   0,
	})

	runtime.Log("epoch release requested")
}

// ConfirmSettlement pays out pending settlement of the news item to its
// sharer. It can be invoked only by the settlement processor. Epoch must match
// the one from SettlementRequested notification, decisions on settlements of
// other releases are rejected.
//
// Settled amount is subtracted from the item stake, stakes made after the
// release stay on the item. When the last settlement of the release is
// resolved, the epoch marker is advanced.
//
// It produces SettlementConfirmed notification.
func ConfirmSettlement(itemID string, epoch int) {
	ctx := storage.GetContext()

	common.CheckSettlerWitness(storage.Get(ctx, settlerKey).([]byte))

	item, seq := mustGetItem(ctx, itemID)
	s := mustGetSettlement(ctx, itemID, seq, epoch)

	item.TotalStaked -= s.Amount
	if item.TotalStaked == 0 {
		item.State = itemstate.Settled
	} else {
		item.State = itemstate.Active
	}
	common.SetSerialized(ctx, itemPrefix+seq, item)
	storage.Delete(ctx, settlementPrefix+seq)

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, s.Receiver, s.Amount, nil) {
		panic("can't transfer GAS to the sharer of " + itemID)
	}

	runtime.Notify("SettlementConfirmed", s.Epoch, itemID, s.Receiver, s.Amount)

	pending := getPendingEpoch(ctx)
	pending.Outstanding = pending.Outstanding - 1
	pending.Confirmed = pending.Confirmed + 1
	if pending.Outstanding == 0 {
		closeEpoch(ctx, pending)
		return
	}

	common.SetSerialized(ctx, pendingEpochKey, pending)
}

// RevertSettlement returns news item from PendingSettlement state to Active
// keeping its stake. It can be invoked only by the settlement processor when
// payout is not possible.
//
// It produces SettlementReverted notification.
func RevertSettlement(itemID string, epoch int) {
	ctx := storage.GetContext()

	common.CheckSettlerWitness(storage.Get(ctx, settlerKey).([]byte))

	item, seq := mustGetItem(ctx, itemID)
	s := mustGetSettlement(ctx, itemID, seq, epoch)

	revertSettlement(ctx, item, seq, s)

	pending := getPendingEpoch(ctx)
	pending.Outstanding = pending.Outstanding - 1
	if pending.Outstanding == 0 {
		closeEpoch(ctx, pending)
		return
	}

	common.SetSerialized(ctx, pendingEpochKey, pending)
}

// OnSettlementConfirmed advances epoch marker to the start of the day of the
// given release timestamp.
// It can be invoked only by the contract itself once all settlements of the
// release are resolved.
//
// It produces EpochSettled notification.
func OnSettlementConfirmed(epoch int) {
	if !runtime.GetCallingScriptHash().Equals(runtime.GetExecutingScriptHash()) {
		panic(vouchconst.ErrUnauthorized + ": settlement callback is accepted from the contract only")
	}

	ctx := storage.GetContext()
	finalizeEpoch(ctx, epoch)
}

// PendingSettlements returns all settlements waiting for the settlement
// processor.
func PendingSettlements() []Settlement {
	ctx := storage.GetReadOnlyContext()

	res := []Settlement{}
	it := storage.Find(ctx, settlementPrefix, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		res = append(res, iterator.Value(it).(Settlement))
	}

	return res
}

// SetSettler changes account of the settlement processor. It can be invoked
// only by the contract administrator.
//
// It produces SettlerChanged notification.
func SetSettler(settler interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckAdminWitness(storage.Get(ctx, adminKey).([]byte))

	if len(settler) != interop.Hash160Len {
		panic(vouchconst.ErrInvalidArgument + ": incorrect length of settler address")
	}

	storage.Put(ctx, settlerKey, settler)

	runtime.Notify("SettlerChanged", settler)
}

// Settler returns account of the settlement processor.
func Settler() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, settlerKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func nextID(ctx storage.Context, kind, prefix string) (string, string) {
	key := counterPrefix + kind
	n := common.GetInt(ctx, key)
	storage.Put(ctx, key, n+1)

	return prefix + std.Itoa(n, 10), common.PaddedSeq(n)
}

func mustGetItem(ctx storage.Context, itemID string) (NewsItem, string) {
	seq := storage.Get(ctx, itemIndexPrefix+itemID)
	if seq == nil {
		panic(vouchconst.ErrNotFound + ": news item " + itemID)
	}

	return getItemBySeq(ctx, seq.(string)), seq.(string)
}

func getItemBySeq(ctx storage.Context, seq string) NewsItem {
	data := storage.Get(ctx, itemPrefix+seq)
	return std.Deserialize(data.([]byte)).(NewsItem)
}

func recordStake(ctx storage.Context, sender interop.Hash160, itemID string, amount int) string {
	item, seq := mustGetItem(ctx, itemID)

	total := item.TotalStaked + amount
	if total>>128 != 0 {
		panic(vouchconst.ErrOverflow + ": total stake of " + itemID)
	}

	item.TotalStaked = total
	if item.State == itemstate.Settled {
		item.State = itemstate.Active
	}

	id, stakeSeq := nextID(ctx, stakeKind, vouchconst.StakeIDPrefix)
	tx := StakeTransaction{
		ID:        id,
		Sender:    sender,
		Receiver:  runtime.GetExecutingScriptHash(),
		ItemID:    itemID,
		Amount:    amount,
		CreatedAt: runtime.GetTime(),
	}

	common.SetSerialized(ctx, stakePrefix+id, tx)
	storage.Put(ctx, itemStakesPrefix+seq+stakeSeq, id)
	common.SetSerialized(ctx, itemPrefix+seq, item)

	runtime.Log("stake recorded")
	runtime.Notify("Staked", id, itemID, sender, amount)

	return id
}

func topByStake(ctx storage.Context, n int) []NewsItem {
	top := []NewsItem{}
	if n <= 0 {
		return top
	}

	it := storage.Find(ctx, itemPrefix, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		item := iterator.Value(it).(NewsItem)

		pos := len(top)
		for pos > 0 && top[pos-1].TotalStaked < item.TotalStaked {
			pos--
		}
		if pos == n {
			continue
		}

		if len(top) < n {
			top = append(top, item)
		}
		for i := len(top) - 1; i > pos; i-- {
			top[i] = top[i-1]
		}
		top[pos] = item
	}

	return top
}

func mustGetMarker(ctx storage.Context) int {
	marker := storage.Get(ctx, markerKey)
	if marker == nil {
		panic(vouchconst.ErrNotInitialized)
	}
	return marker.(int)
}

func mustGetSettlement(ctx storage.Context, itemID, seq string, epoch int) Settlement {
	data := storage.Get(ctx, settlementPrefix+seq)
	if data == nil {
		panic(vouchconst.ErrNotFound + ": pending settlement of " + itemID)
	}

	s := std.Deserialize(data.([]byte)).(Settlement)
	if s.Epoch != epoch {
		panic(vouchconst.ErrNotFound + ": pending settlement of " + itemID + " in epoch " + std.Itoa(epoch, 10))
	}

	return s
}

func getPendingEpoch(ctx storage.Context) pendingEpoch {
	data := storage.Get(ctx, pendingEpochKey)
	return std.Deserialize(data.([]byte)).(pendingEpoch)
}

func revertSettlement(ctx storage.Context, item NewsItem, seq string, s Settlement) {
	item.State = itemstate.Active
	common.SetSerialized(ctx, itemPrefix+seq, item)
	storage.Delete(ctx, settlementPrefix+seq)

	runtime.Notify("SettlementReverted", s.Epoch, s.ItemID, s.Receiver, s.Amount)
}

// expirePendingEpoch reverts all settlements of the release whose deadline
// has passed.
func expirePendingEpoch(ctx storage.Context, now int) {
	data := storage.Get(ctx, pendingEpochKey)
	if data == nil {
		return
	}

	pending := std.Deserialize(data.([]byte)).(pendingEpoch)
	if now <= pending.Deadline {
		return
	}

	seqs := []string{}
	it := storage.Find(ctx, settlementPrefix, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		seqs = append(seqs, iterator.Value(it).(string))
	}

	for i := range seqs {
		seq := seqs[i]
		raw := storage.Get(ctx, settlementPrefix+seq)
		s := std.Deserialize(raw.([]byte)).(Settlement)
		revertSettlement(ctx, getItemBySeq(ctx, seq), seq, s)
	}

	runtime.Log("settlement deadline expired")

	pending.Outstanding = 0
	closeEpoch(ctx, pending)
}

// closeEpoch is called when the release has no outstanding settlements.
func closeEpoch(ctx storage.Context, pending pendingEpoch) {
	if pending.Confirmed == 0 {
		storage.Delete(ctx, pendingEpochKey)
		runtime.Log("epoch release reverted")
		return
	}

	contract.Call(runtime.GetExecutingScriptHash(), "onSettlementConfirmed",
		contract.All, pending.Epoch)
}

func finalizeEpoch(ctx storage.Context, epoch int) {
	storage.Put(ctx, markerKey, common.DayStart(epoch))
	storage.Delete(ctx, pendingEpochKey)

	runtime.Notify("EpochSettled", epoch)
}
