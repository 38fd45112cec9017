package vouch

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemsBatchSize is the number of news items requested from the iterator
// session at once by [ContractReader.TraverseItems].
const ItemsBatchSize = 100

// TraverseItems reads all news items in the order of their creation using
// iterator session and passes them to f. Traversal stops on the first error
// returned by f. The session is terminated before return. If the RPC server
// expanded the iterator instead of opening a session, expanded values are
// traversed.
func (c *ContractReader) TraverseItems(f func(*VouchNewsItem) error) error {
	sessionID, iter, err := c.IterateItems()
	if err != nil {
		return fmt.Errorf("open items iterator: %w", err)
	}
	if sessionID != (uuid.UUID{}) {
		defer func() { _ = c.invoker.TerminateSession(sessionID) }()
	}

	for {
		items, err := c.invoker.TraverseIterator(sessionID, &iter, ItemsBatchSize)
		if err != nil {
			return fmt.Errorf("traverse items iterator: %w", err)
		}

		for i := range items {
			item, err := itemToVouchNewsItem(items[i], nil)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			if err = f(item); err != nil {
				return err
			}
		}

		if len(items) < ItemsBatchSize {
			return nil
		}
	}
}
