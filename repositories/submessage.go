//go:generate go run go.uber.org/mock/mockgen -source=submessage.go -destination=../mocks/mock_submessage_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	submessagePrefix   = "submsg:"
	submessageSequence = "seq:submsg"
	sequenceBandwidth  = 100
)

type ISubmessageRepository interface {
	StoreSubmessage(submessage DiskSubmessage) (DiskSubmessage, error)
	GetSubmessages(messageID int64) ([]DiskSubmessage, error)
	ListMessageIDs() ([]int64, error)
}

// SubmessageRepository leases ids from a Badger sequence on the first store,
// so a read-only database can still be scanned.
// Close must be called to give back the unused part of the lease.
type SubmessageRepository struct {
	db       *badger.DB
	log      *slog.Logger
	mu       sync.Mutex
	sequence *badger.Sequence
}

func NewSubmessageRepository(db *badger.DB, log *slog.Logger) *SubmessageRepository {
	return &SubmessageRepository{db: db, log: log}
}

type DiskSubmessage struct {
	ID        int64     `json:"id"`
	MessageID int64     `json:"message_id"`
	SenderID  int64     `json:"sender_id"`
	MsgType   string    `json:"msg_type"`
	Content   any       `json:"content"`
	At        time.Time `json:"at"`
}

// StoreSubmessage assigns the next id and persists the submessage.
// The key is formatted as "submsg:{message_id}:{id}", both 19-digit zero padded,
// so a prefix scan returns the submessages of a message in append order.
func (r *SubmessageRepository) StoreSubmessage(submessage DiskSubmessage) (DiskSubmessage, error) {
	id, err := r.nextID()
	if err != nil {
		return DiskSubmessage{}, err
	}
	submessage.ID = id

	bytes, err := json.Marshal(submessage)
	if err != nil {
		return DiskSubmessage{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(submessageKey(submessage.MessageID, submessage.ID), bytes)
	})
	if err != nil {
		return DiskSubmessage{}, err
	}
	return submessage, nil
}

// GetSubmessages returns every submessage of a message, oldest first.
func (r *SubmessageRepository) GetSubmessages(messageID int64) ([]DiskSubmessage, error) {
	var submessages []DiskSubmessage
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := messagePrefix(messageID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(value []byte) error {
				var submessage DiskSubmessage
				if err := json.Unmarshal(value, &submessage); err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				submessages = append(submessages, submessage)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submessages, nil
}

// ListMessageIDs returns the ids of messages holding at least one submessage.
func (r *SubmessageRepository) ListMessageIDs() ([]int64, error) {
	var messageIDs []int64
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(submessagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			messageID, err := parseMessageID(key)
			if err != nil {
				r.log.Warn("Skipping unexpected submessage key", "key", key, "error", err)
				continue
			}
			if n := len(messageIDs); n == 0 || messageIDs[n-1] != messageID {
				messageIDs = append(messageIDs, messageID)
			}
		}
		return nil
	})
	return messageIDs, err
}

// Close releases the sequence lease, if any.
func (r *SubmessageRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sequence == nil {
		return nil
	}
	err := r.sequence.Release()
	r.sequence = nil
	return err
}

func (r *SubmessageRepository) nextID() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sequence == nil {
		sequence, err := r.db.GetSequence([]byte(submessageSequence), sequenceBandwidth)
		if err != nil {
			return 0, fmt.Errorf("submessage sequence: %w", err)
		}
		r.sequence = sequence
	}
	next, err := r.sequence.Next()
	if err != nil {
		return 0, fmt.Errorf("next submessage id: %w", err)
	}
	// Sequences start at 0, ids start at 1.
	return int64(next) + 1, nil
}

func messagePrefix(messageID int64) []byte {
	return []byte(fmt.Sprintf("%s%019d:", submessagePrefix, messageID))
}

func submessageKey(messageID, id int64) []byte {
	return []byte(fmt.Sprintf("%s%019d:%019d", submessagePrefix, messageID, id))
}

func parseMessageID(key string) (int64, error) {
	parts := strings.Split(strings.TrimPrefix(key, submessagePrefix), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed key %q", key)
	}
	return strconv.ParseInt(parts[0], 10, 64)
}
