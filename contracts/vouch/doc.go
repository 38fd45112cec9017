/*
Package vouch implements Vouch contract which curates news with GAS stakes.

Accounts share news items and other accounts vouch for them by staking GAS.
Staked GAS is kept by the contract. Once per day (UTC) the release takes the
items with the highest total stake and requests their payout to the sharers.
The payout is performed only after the settlement processor confirms it, so
the item stake is never cleared for a payment that did not happen.

Stakes are made with Stake method or with plain GAS transfer to the contract
address where transfer data is the ID of the news item.

# Settlement

ReleaseIfDue can be invoked by anyone. If the current block belongs to a
later day than the last settled epoch, top items (3 by default, set on deploy)
with non-zero stake are moved to PendingSettlement state and
SettlementRequested notification is produced per item. The settlement
processor answers with ConfirmSettlement, which transfers GAS to the sharer
and clears the settled stake, or with RevertSettlement, which returns the
item to Active state. Settlements not resolved until their deadline are
reverted by the next ReleaseIfDue call. When all settlements of the release
are resolved and at least one was confirmed, the contract calls its own
onSettlementConfirmed method to advance the epoch marker to the start of the
release day.

# Contract notifications

ItemCreated notification. This notification is produced when a news item is
registered.

	ItemCreated:
	  - name: id
	    type: String
	  - name: sharer
	    type: Hash160
	  - name: title
	    type: String

Staked notification. This notification is produced for every recorded stake.

	Staked:
	  - name: id
	    type: String
	  - name: itemID
	    type: String
	  - name: sender
	    type: Hash160
	  - name: amount
	    type: Integer

SettlementRequested notification. This notification is produced by the
release for each selected item. Settlement processor catches it and invokes
ConfirmSettlement or RevertSettlement with the same item ID and epoch. Answers
for an epoch other than the pending one are rejected.

	SettlementRequested:
	  - name: epoch
	    type: Integer
	  - name: itemID
	    type: String
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer

SettlementConfirmed and SettlementReverted notifications have the same
parameters and are produced when the pending settlement is resolved.

EpochSettled notification. This notification is produced when the epoch
marker is advanced.

	EpochSettled:
	  - name: epoch
	    type: Integer

EpochsSkipped notification. This notification is produced by the release
when more than one day has passed since the last settled epoch. Only one
epoch is settled in this case.

	EpochsSkipped:
	  - name: marker
	    type: Integer
	  - name: now
	    type: Integer
	  - name: missed
	    type: Integer

SettlerChanged notification. This notification is produced when the
administrator changes the settlement processor account.

	SettlerChanged:
	  - name: settler
	    type: Hash160

# Contract storage scheme

	| Key                                  | Value               |
	|--------------------------------------|---------------------|
	| `c` + kind                           | ID counter          |
	| `i` + item sequence                  | serialized NewsItem |
	| `n` + item ID                        | item sequence       |
	| `t` + stake ID                       | serialized stake    |
	| `s` + item sequence + stake sequence | stake ID            |
	| `p` + item sequence                  | serialized pending settlement |
	| `e`                                  | epoch marker        |
	| `g`                                  | release in progress |
	| `a`, `r`                             | admin, settler      |
	| `o`, `d`                             | payout count, settlement timeout |
	| `l`                                  | stake transfer in progress |

Sequences are zero-padded to 10 decimal digits, so storage iteration
returns records in the order of creation.
*/
package vouch
