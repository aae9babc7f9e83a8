package repositories

import (
	"chat-courier/contract"
	"chat-courier/internal/keyedlock"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.ISequenceStore = SequenceRepository{}

// SequenceRepository keeps one gapless counter per conversation.
// Callers of the same conversation are serialized; other conversations
// proceed in parallel.
type SequenceRepository struct {
	db    *badger.DB
	locks *keyedlock.KeyedLock
}

func NewSequenceRepository(db *badger.DB) SequenceRepository {
	return SequenceRepository{db: db, locks: keyedlock.New()}
}

func sequenceKey(conversationID string) []byte {
	return []byte("seq:" + conversationID)
}

// GetNextSequence returns 1 for the first message of a conversation.
func (s SequenceRepository) GetNextSequence(_ context.Context, conversationID string) (int64, error) {
	unlock := s.locks.Lock(conversationID)
	defer unlock()

	var next uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		key := sequenceKey(conversationID)
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			next = 1
		case err != nil:
			return err
		default:
			err = item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("corrupted sequence for %s", conversationID)
				}
				next = binary.BigEndian.Uint64(val) + 1
				return nil
			})
			if err != nil {
				return err
			}
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, next)
		return txn.Set(key, buf)
	})
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return int64(next), nil
}
