// Package vouch contains RPC wrappers for Vouch contract.
package vouch

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)
// VouchNewsItem is a contract-specific vouch.NewsItem type used by its methods.
type VouchNewsItem struct {
	ID string
	Sharer util.Uint160
	Title string
	Link string
	TotalStaked *big.Int
	CreatedAt *big.Int
	State *big.Int
}

// VouchSettlement is a contract-specific vouch.Settlement type used by its methods.
type VouchSettlement struct {
	ItemID string
	Receiver util.Uint160
	Amount *big.Int
	Epoch *big.Int
	Deadline *big.Int
}

// VouchStakeTransaction is a contract-specific vouch.StakeTransaction type used by its methods.
type VouchStakeTransaction struct {
	ID string
	Sender util.Uint160
	Receiver util.Uint160
	ItemID string
	Amount *big.Int
	CreatedAt *big.Int
}

// ItemCreatedEvent represents "ItemCreated" event emitted by the contract.
type ItemCreatedEvent struct {
	ID string
	Sharer util.Uint160
	Title string
}

// StakedEvent represents "Staked" event emitted by the contract.
type StakedEvent struct {
	ID string
	ItemID string
	Sender util.Uint160
	Amount *big.Int
}

// SettlementRequestedEvent represents "SettlementRequested" event emitted by the contract.
type SettlementRequestedEvent struct {
	Epoch *big.Int
	ItemID string
	Receiver util.Uint160
	Amount *big.Int
}

// SettlementConfirmedEvent represents "SettlementConfirmed" event emitted by the contract.
type SettlementConfirmedEvent struct {
	Epoch *big.Int
	ItemID string
	Receiver util.Uint160
	Amount *big.Int
}

// SettlementRevertedEvent represents "SettlementReverted" event emitted by the contract.
type SettlementRevertedEvent struct {
	Epoch *big.Int
	ItemID string
	Receiver util.Uint160
	Amount *big.Int
}

// EpochSettledEvent represents "EpochSettled" event emitted by the contract.
type EpochSettledEvent struct {
	Epoch *big.Int
}

// EpochsSkippedEvent represents "EpochsSkipped" event emitted by the contract.
type EpochsSkippedEvent struct {
	Marker *big.Int
	Now *big.Int
	Missed *big.Int
}

// SettlerChangedEvent represents "SettlerChanged" event emitted by the contract.
type SettlerChangedEvent struct {
	Settler util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// EpochMarker invokes `epochMarker` method of contract.
func (c *ContractReader) EpochMarker() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "epochMarker"))
}

// GetItem invokes `getItem` method of contract.
func (c *ContractReader) GetItem(itemID string) (*VouchNewsItem, error) {
	return itemToVouchNewsItem(unwrap.Item(c.invoker.Call(c.hash, "getItem", itemID)))
}

// GetStake invokes `getStake` method of contract.
func (c *ContractReader) GetStake(stakeID string) (*VouchStakeTransaction, error) {
	return itemToVouchStakeTransaction(unwrap.Item(c.invoker.Call(c.hash, "getStake", stakeID)))
}

// GetStakesForItem invokes `getStakesForItem` method of contract.
func (c *ContractReader) GetStakesForItem(itemID string) ([]*VouchStakeTransaction, error) {
	return func (item stackitem.Item, err error) ([]*VouchStakeTransaction, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*VouchStakeTransaction, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*VouchStakeTransaction, len(arr))
			for i := range res {
				res[i], err = itemToVouchStakeTransaction(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "getStakesForItem", itemID)))
}

// IsReleaseDue invokes `isReleaseDue` method of contract.
func (c *ContractReader) IsReleaseDue() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isReleaseDue"))
}

// ItemCount invokes `itemCount` method of contract.
func (c *ContractReader) ItemCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "itemCount"))
}

// IterateItems invokes `iterateItems` method of contract.
func (c *ContractReader) IterateItems() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateItems"))
}

// IterateItemsExpanded is similar to IterateItems (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateItemsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateItems", _numOfIteratorItems))
}

// ListItems invokes `listItems` method of contract.
func (c *ContractReader) ListItems() ([]*VouchNewsItem, error) {
	return func (item stackitem.Item, err error) ([]*VouchNewsItem, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*VouchNewsItem, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*VouchNewsItem, len(arr))
			for i := range res {
				res[i], err = itemToVouchNewsItem(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "listItems")))
}

// PendingSettlements invokes `pendingSettlements` method of contract.
func (c *ContractReader) PendingSettlements() ([]*VouchSettlement, error) {
	return func (item stackitem.Item, err error) ([]*VouchSettlement, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*VouchSettlement, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*VouchSettlement, len(arr))
			for i := range res {
				res[i], err = itemToVouchSettlement(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "pendingSettlements")))
}

// Settler invokes `settler` method of contract.
func (c *ContractReader) Settler() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "settler"))
}

// TopByStake invokes `topByStake` method of contract.
func (c *ContractReader) TopByStake(n *big.Int) ([]*VouchNewsItem, error) {
	return func (item stackitem.Item, err error) ([]*VouchNewsItem, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*VouchNewsItem, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*VouchNewsItem, len(arr))
			for i := range res {
				res[i], err = itemToVouchNewsItem(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "topByStake", n)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ConfirmSettlement creates a transaction invoking `confirmSettlement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ConfirmSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "confirmSettlement", itemID, epoch)
}

// ConfirmSettlementTransaction creates a transaction invoking `confirmSettlement` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ConfirmSettlementTransaction(itemID string, epoch *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "confirmSettlement", itemID, epoch)
}

// ConfirmSettlementUnsigned creates a transaction invoking `confirmSettlement` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ConfirmSettlementUnsigned(itemID string, epoch *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "confirmSettlement", nil, itemID, epoch)
}

// CreateItem creates a transaction invoking `createItem` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateItem(sharer util.Uint160, title string, link string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createItem", sharer, title, link)
}

// CreateItemTransaction creates a transaction invoking `createItem` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateItemTransaction(sharer util.Uint160, title string, link string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createItem", sharer, title, link)
}

// CreateItemUnsigned creates a transaction invoking `createItem` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateItemUnsigned(sharer util.Uint160, title string, link string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createItem", nil, sharer, title, link)
}

// InitializeEpoch creates a transaction invoking `initializeEpoch` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) InitializeEpoch() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initializeEpoch")
}

// InitializeEpochTransaction creates a transaction invoking `initializeEpoch` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeEpochTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initializeEpoch")
}

// InitializeEpochUnsigned creates a transaction invoking `initializeEpoch` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeEpochUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initializeEpoch", nil)
}

// ReleaseIfDue creates a transaction invoking `releaseIfDue` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ReleaseIfDue() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "releaseIfDue")
}

// ReleaseIfDueTransaction creates a transaction invoking `releaseIfDue` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReleaseIfDueTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "releaseIfDue")
}

// ReleaseIfDueUnsigned creates a transaction invoking `releaseIfDue` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReleaseIfDueUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "releaseIfDue", nil)
}

// RevertSettlement creates a transaction invoking `revertSettlement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RevertSettlement(itemID string, epoch *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revertSettlement", itemID, epoch)
}

// RevertSettlementTransaction creates a transaction invoking `revertSettlement` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RevertSettlementTransaction(itemID string, epoch *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revertSettlement", itemID, epoch)
}

// RevertSettlementUnsigned creates a transaction invoking `revertSettlement` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RevertSettlementUnsigned(itemID string, epoch *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revertSettlement", nil, itemID, epoch)
}

// SetSettler creates a transaction invoking `setSettler` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetSettler(settler util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setSettler", settler)
}

// SetSettlerTransaction creates a transaction invoking `setSettler` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetSettlerTransaction(settler util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setSettler", settler)
}

// SetSettlerUnsigned creates a transaction invoking `setSettler` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetSettlerUnsigned(settler util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setSettler", nil, settler)
}

// Stake creates a transaction invoking `stake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Stake(sender util.Uint160, itemID string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "stake", sender, itemID, amount)
}

// StakeTransaction creates a transaction invoking `stake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StakeTransaction(sender util.Uint160, itemID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "stake", sender, itemID, amount)
}

// StakeUnsigned creates a transaction invoking `stake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) StakeUnsigned(sender util.Uint160, itemID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "stake", nil, sender, itemID, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToVouchNewsItem converts stack item into *VouchNewsItem.
func itemToVouchNewsItem(item stackitem.Item, err error) (*VouchNewsItem, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VouchNewsItem)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VouchNewsItem from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VouchNewsItem) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Sharer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sharer: %w", err)
	}

	index++
	res.Title, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Title: %w", err)
	}

	index++
	res.Link, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Link: %w", err)
	}

	index++
	res.TotalStaked, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalStaked: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.State, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field State: %w", err)
	}

	return nil
}

// itemToVouchSettlement converts stack item into *VouchSettlement.
func itemToVouchSettlement(item stackitem.Item, err error) (*VouchSettlement, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VouchSettlement)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VouchSettlement from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VouchSettlement) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	res.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.Epoch, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epoch: %w", err)
	}

	index++
	res.Deadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deadline: %w", err)
	}

	return nil
}

// itemToVouchStakeTransaction converts stack item into *VouchStakeTransaction.
func itemToVouchStakeTransaction(item stackitem.Item, err error) (*VouchStakeTransaction, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VouchStakeTransaction)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VouchStakeTransaction from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VouchStakeTransaction) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Sender, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sender: %w", err)
	}

	index++
	res.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	res.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// ItemCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ItemCreated" name from the provided [result.ApplicationLog].
func ItemCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ItemCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ItemCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ItemCreated" {
				continue
			}
			event := new(ItemCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ItemCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ItemCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *ItemCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Sharer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sharer: %w", err)
	}

	index++
	e.Title, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Title: %w", err)
	}

	return nil
}

// StakedEventsFromApplicationLog retrieves a set of all emitted events
// with "Staked" name from the provided [result.ApplicationLog].
func StakedEventsFromApplicationLog(log *result.ApplicationLog) ([]*StakedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StakedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Staked" {
				continue
			}
			event := new(StakedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StakedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StakedEvent or
// returns an error if it's not possible to do to so.
func (e *StakedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	e.Sender, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sender: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// SettlementRequestedEventsFromApplicationLog retrieves a set of all emitted events
// with "SettlementRequested" name from the provided [result.ApplicationLog].
func SettlementRequestedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SettlementRequestedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SettlementRequestedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SettlementRequested" {
				continue
			}
			event := new(SettlementRequestedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SettlementRequestedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SettlementRequestedEvent or
// returns an error if it's not possible to do to so.
func (e *SettlementRequestedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Epoch, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epoch: %w", err)
	}

	index++
	e.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// SettlementConfirmedEventsFromApplicationLog retrieves a set of all emitted events
// with "SettlementConfirmed" name from the provided [result.ApplicationLog].
func SettlementConfirmedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SettlementConfirmedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SettlementConfirmedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SettlementConfirmed" {
				continue
			}
			event := new(SettlementConfirmedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SettlementConfirmedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SettlementConfirmedEvent or
// returns an error if it's not possible to do to so.
func (e *SettlementConfirmedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Epoch, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epoch: %w", err)
	}

	index++
	e.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// SettlementRevertedEventsFromApplicationLog retrieves a set of all emitted events
// with "SettlementReverted" name from the provided [result.ApplicationLog].
func SettlementRevertedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SettlementRevertedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SettlementRevertedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SettlementReverted" {
				continue
			}
			event := new(SettlementRevertedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SettlementRevertedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SettlementRevertedEvent or
// returns an error if it's not possible to do to so.
func (e *SettlementRevertedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Epoch, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epoch: %w", err)
	}

	index++
	e.ItemID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ItemID: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// EpochSettledEventsFromApplicationLog retrieves a set of all emitted events
// with "EpochSettled" name from the provided [result.ApplicationLog].
func EpochSettledEventsFromApplicationLog(log *result.ApplicationLog) ([]*EpochSettledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*EpochSettledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "EpochSettled" {
				continue
			}
			event := new(EpochSettledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize EpochSettledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to EpochSettledEvent or
// returns an error if it's not possible to do to so.
func (e *EpochSettledEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Epoch, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Epoch: %w", err)
	}

	return nil
}

// EpochsSkippedEventsFromApplicationLog retrieves a set of all emitted events
// with "EpochsSkipped" name from the provided [result.ApplicationLog].
func EpochsSkippedEventsFromApplicationLog(log *result.ApplicationLog) ([]*EpochsSkippedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*EpochsSkippedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "EpochsSkipped" {
				continue
			}
			event := new(EpochsSkippedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize EpochsSkippedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to EpochsSkippedEvent or
// returns an error if it's not possible to do to so.
func (e *EpochsSkippedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Marker, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Marker: %w", err)
	}

	index++
	e.Now, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Now: %w", err)
	}

	index++
	e.Missed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Missed: %w", err)
	}

	return nil
}

// SettlerChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "SettlerChanged" name from the provided [result.ApplicationLog].
func SettlerChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SettlerChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SettlerChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SettlerChanged" {
				continue
			}
			event := new(SettlerChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SettlerChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SettlerChangedEvent or
// returns an error if it's not possible to do to so.
func (e *SettlerChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Settler, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Settler: %w", err)
	}

	return nil
}
