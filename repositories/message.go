package repositories

import (
	"chat-courier/contract"
	"chat-courier/domain"
	chaterrors "chat-courier/errors"
	"chat-courier/internal/keyedlock"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.IMessageStore = MessageRepository{}

const (
	messagePrefix       = "msg:"
	deliveryPrefix      = "dlv:"
	inboxCounterPrefix  = "inboxseq:"
	inboxPositionPrefix = "inboxpos:"

	maxPersistAttempts = 32
)

// MessageRepository stores message records, the per-recipient inbox index
// and the delivery marks in BadgerDB.
type MessageRepository struct {
	db         *badger.DB
	log        *slog.Logger
	codec      domain.Codec
	now        func() time.Time
	inboxLocks *keyedlock.KeyedLock
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, codec domain.Codec) MessageRepository {
	if codec == nil {
		codec = domain.JSONCodec{}
	}
	return MessageRepository{db: db, log: log, codec: codec, now: time.Now, inboxLocks: keyedlock.New()}
}

func messageKey(messageID string) []byte {
	return []byte(messagePrefix + messageID)
}

func deliveryKey(messageID, userID string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", deliveryPrefix, messageID, userID))
}

func inboxPrefix(userID string) string {
	return fmt.Sprintf("inbox:%d:%s:", len(userID), userID)
}

// inboxKey is formatted as "inbox:{len}:{user}:{position_padded}:{message_id}" to:
//  1. Keep a user's inbox in the order messages were persisted, with 20-digit zero padding.
//  2. Let a cursor resolve to its exact row through the message id.
//
// Positions come from a per-recipient counter bumped in the persisting
// transaction, so a row can never land before a cursor already handed out.
func inboxKey(userID string, position uint64, messageID string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", inboxPrefix(userID), position, messageID))
}

func inboxCounterKey(userID string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s", inboxCounterPrefix, len(userID), userID))
}

func inboxPositionKey(messageID string) []byte {
	return []byte(inboxPositionPrefix + messageID)
}

func readUint64(txn *badger.Txn, key []byte) (uint64, bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var value uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupted counter %s", key)
		}
		value = binary.BigEndian.Uint64(val)
		return nil
	})
	return value, true, err
}

func encodeUint64(value uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value)
	return buf
}

// PersistMessage writes the record and, the first time only, its inbox entry.
// Writing the same message twice never creates a second row.
// Writers to the same inbox are serialized here; a conflict with another
// process sharing the store is retried.
func (m MessageRepository) PersistMessage(_ context.Context, message domain.Message) error {
	bytes, err := m.codec.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", message.MessageID, err)
	}
	unlock := m.inboxLocks.Lock(message.ReceiverID)
	defer unlock()
	for attempt := 1; ; attempt++ {
		err = m.db.Update(func(txn *badger.Txn) error {
			return m.persist(txn, message, bytes)
		})
		if !errors.Is(err, badger.ErrConflict) || attempt == maxPersistAttempts {
			return err
		}
	}
}

func (m MessageRepository) persist(txn *badger.Txn, message domain.Message, bytes []byte) error {
	key := messageKey(message.MessageID)
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return txn.Set(key, bytes)
	case !errors.Is(err, badger.ErrKeyNotFound):
		return err
	}

	counterKey := inboxCounterKey(message.ReceiverID)
	last, _, err := readUint64(txn, counterKey)
	if err != nil {
		return err
	}
	position := last + 1
	if err = txn.Set(counterKey, encodeUint64(position)); err != nil {
		return err
	}
	if err = txn.Set(inboxPositionKey(message.MessageID), encodeUint64(position)); err != nil {
		return err
	}
	if err = txn.Set(inboxKey(message.ReceiverID, position, message.MessageID), nil); err != nil {
		return err
	}
	return txn.Set(key, bytes)
}

func (m MessageRepository) GetMessage(_ context.Context, messageID string) (domain.Message, error) {
	var message domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		message, err = m.get(txn, messageID)
		return err
	})
	return message, err
}

func (m MessageRepository) get(txn *badger.Txn, messageID string) (domain.Message, error) {
	item, err := txn.Get(messageKey(messageID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, fmt.Errorf("%w: %s", chaterrors.ErrMessageNotFound, messageID)
	}
	if err != nil {
		return domain.Message{}, err
	}
	var message domain.Message
	err = item.Value(func(val []byte) error {
		message, err = m.codec.Unmarshal(val)
		return err
	})
	return message, err
}

// MarkFailed flags a message whose delivery could not be attempted.
// The record stays in place and remains eligible for replay.
func (m MessageRepository) MarkFailed(_ context.Context, messageID string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		message, err := m.get(txn, messageID)
		if err != nil {
			return err
		}
		message.State = domain.StateFailed
		message.UpdatedAt = max(m.now().UnixMilli(), message.CreatedAt)
		bytes, err := m.codec.Marshal(message)
		if err != nil {
			return err
		}
		return txn.Set(messageKey(messageID), bytes)
	})
}

// MarkDelivered records that userID received messageID.
// Concurrent callers race on the same key; only one of them gets true.
func (m MessageRepository) MarkDelivered(_ context.Context, messageID, userID string) (bool, error) {
	created := false
	err := m.db.Update(func(txn *badger.Txn) error {
		key := deliveryKey(messageID, userID)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		created = true
		return txn.Set(key, []byte(m.now().UTC().Format(time.RFC3339Nano)))
	})
	if errors.Is(err, badger.ErrConflict) {
		// Another transaction created the mark first
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mark delivered: %w", err)
	}
	return created, nil
}

func (m MessageRepository) UnmarkDelivered(_ context.Context, messageID, userID string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(deliveryKey(messageID, userID))
	})
}

func (m MessageRepository) IsMessageDelivered(_ context.Context, messageID, userID string) (bool, error) {
	err := m.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(deliveryKey(messageID, userID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// GetMessageCount scans record keys only; meant for checks, not hot paths.
func (m MessageRepository) GetMessageCount(_ context.Context) (int, error) {
	count := 0
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		prefix := []byte(messagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// ListInbox walks the recipient index strictly after the cursor.
// An unknown cursor falls back to the beginning of the inbox so nothing is lost.
func (m MessageRepository) ListInbox(_ context.Context, userID string, cursor *string, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := inboxPrefix(userID)
		prefix := []byte(prefixStr)
		seekKey := prefix
		if cursor != nil {
			anchor, err := m.cursorKey(txn, userID, *cursor)
			switch {
			case errors.Is(err, chaterrors.ErrMessageNotFound):
				m.log.Warn("Unknown replay cursor, replaying whole inbox",
					"user_id", userID, "cursor", *cursor)
			case err != nil:
				return err
			default:
				seekKey = anchor
			}
		}

		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		var ids []string
		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(ids) == limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d inbox messages reached", limit))
				break
			}
			key := string(it.Item().Key())
			// Skip "{position_padded}:" to keep the message id
			ids = append(ids, key[len(prefixStr)+21:])
		}

		for _, id := range ids {
			message, err := m.get(txn, id)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// cursorKey resolves a message id to its row in userID's inbox.
// A message that is not in that inbox is reported as not found.
func (m MessageRepository) cursorKey(txn *badger.Txn, userID, messageID string) ([]byte, error) {
	anchor, err := m.get(txn, messageID)
	if err != nil {
		return nil, err
	}
	position, found, err := readUint64(txn, inboxPositionKey(messageID))
	if err != nil {
		return nil, err
	}
	if !found || anchor.ReceiverID != userID {
		return nil, fmt.Errorf("%w: %s", chaterrors.ErrMessageNotFound, messageID)
	}
	return inboxKey(userID, position, messageID), nil
}
