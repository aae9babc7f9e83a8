package repositories

import (
	"chat-courier/contract"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.IDedupStore = DedupRepository{}

// DedupRepository binds each (conversation, client message id) pair to the
// message id it produced.
type DedupRepository struct {
	db *badger.DB
}

func NewDedupRepository(db *badger.DB) DedupRepository {
	return DedupRepository{db: db}
}

// dedupKey length-prefixes the conversation so ids containing ':' cannot collide.
func dedupKey(conversationID, clientMsgID string) []byte {
	return []byte(fmt.Sprintf("dedup:%d:%s:%s", len(conversationID), conversationID, clientMsgID))
}

func (d DedupRepository) HasMessage(ctx context.Context, conversationID, clientMsgID string) (bool, error) {
	_, found, err := d.LookupMessage(ctx, conversationID, clientMsgID)
	return found, err
}

func (d DedupRepository) LookupMessage(_ context.Context, conversationID, clientMsgID string) (string, bool, error) {
	var messageID string
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dedupKey(conversationID, clientMsgID))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		messageID = string(value)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dedup lookup: %w", err)
	}
	return messageID, true, nil
}

func (d DedupRepository) StoreMessage(_ context.Context, conversationID, clientMsgID, messageID string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dedupKey(conversationID, clientMsgID), []byte(messageID))
	})
}

func (d DedupRepository) ForgetMessage(_ context.Context, conversationID, clientMsgID string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(dedupKey(conversationID, clientMsgID))
	})
}
