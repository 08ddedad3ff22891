package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
)

const (
	// snapshotKey is the fixed, well-known key of the metadata document.
	snapshotKey = "database.json"
	// snapshotCap bounds the snapshot; appends beyond it evict the oldest record.
	snapshotCap = 2000

	snapshotContentType = "application/json"
)

// SnapshotStore keeps the full ordered record collection (newest first) as a
// single JSON document in the blob store, with a process-lifetime cache.
//
// The mutex guards only the cache fields. The load-modify-persist cycle is not
// atomic against the remote document: two writers with cold caches can race,
// and the later persist wins. The store is sized for a low-concurrency,
// single-writer workload.
type SnapshotStore struct {
	blob repo.BlobRepo
	l    logger.Interface

	mu    sync.Mutex
	cache []entity.ImageRecord
	warm  bool
}

var _ repo.RecordRepo = (*SnapshotStore)(nil)

func NewSnapshotStore(blob repo.BlobRepo, l logger.Interface) *SnapshotStore {
	return &SnapshotStore{
		blob: blob,
		l:    l,
	}
}

// Load returns the cached snapshot when warm, otherwise fetches the persisted
// document. A missing or malformed document degrades to an empty snapshot.
func (s *SnapshotStore) Load(ctx context.Context) ([]entity.ImageRecord, error) {
	s.mu.Lock()
	if s.warm {
		list := copyRecords(s.cache)
		s.mu.Unlock()

		return list, nil
	}
	s.mu.Unlock()

	list := s.fetch(ctx)

	s.mu.Lock()
	s.cache = list
	s.warm = true
	list = copyRecords(s.cache)
	s.mu.Unlock()

	return list, nil
}

// Append inserts the record at the front, truncates to the cap and persists the
// whole document. When the persist fails the cache has already advanced, so the
// in-process view runs ahead of durable storage until the next cold load.
func (s *SnapshotStore) Append(ctx context.Context, record entity.ImageRecord) error {
	list, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("SnapshotStore - Append - s.Load: %w", err)
	}

	list = append([]entity.ImageRecord{record}, list...)
	if len(list) > snapshotCap {
		list = list[:snapshotCap]
	}

	s.replaceCache(list)

	if err := s.persist(ctx, list); err != nil {
		return fmt.Errorf("SnapshotStore - Append - s.persist: %w", err)
	}

	return nil
}

// Remove filters out the record with the given id. An absent id is a no-op,
// not an error; the filtered snapshot is persisted either way.
func (s *SnapshotStore) Remove(ctx context.Context, id string) error {
	list, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("SnapshotStore - Remove - s.Load: %w", err)
	}

	filtered := make([]entity.ImageRecord, 0, len(list))
	for _, record := range list {
		if record.ID != id {
			filtered = append(filtered, record)
		}
	}

	s.replaceCache(filtered)

	if err := s.persist(ctx, filtered); err != nil {
		return fmt.Errorf("SnapshotStore - Remove - s.persist: %w", err)
	}

	return nil
}

func (s *SnapshotStore) fetch(ctx context.Context) []entity.ImageRecord {
	b, err := s.blob.Download(ctx, snapshotKey)
	if err != nil {
		// first use: the document has never been written
		if !errors.Is(err, errs.ErrBlobNotFound) {
			s.l.Warn("snapshot load failed, starting empty: %v", err)
		}

		return []entity.ImageRecord{}
	}

	var list []entity.ImageRecord
	if err := json.Unmarshal(b, &list); err != nil {
		s.l.Warn("snapshot document is malformed, starting empty: %v", err)

		return []entity.ImageRecord{}
	}

	return list
}

func (s *SnapshotStore) persist(ctx context.Context, list []entity.ImageRecord) error {
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err := s.blob.Upload(ctx, snapshotKey, b, snapshotContentType); err != nil {
		return fmt.Errorf("s.blob.Upload: %w", err)
	}

	return nil
}

func (s *SnapshotStore) replaceCache(list []entity.ImageRecord) {
	s.mu.Lock()
	s.cache = list
	s.warm = true
	s.mu.Unlock()
}

func copyRecords(list []entity.ImageRecord) []entity.ImageRecord {
	out := make([]entity.ImageRecord, len(list))
	copy(out, list)

	return out
}
