package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nainya/shelfkey/internal/logger"
	"github.com/nainya/shelfkey/pkg/holding"
	"github.com/nainya/shelfkey/pkg/journal"
	"github.com/nainya/shelfkey/pkg/shelfindex"
)

// Restore replays the journal into index and then compacts the journal. It
// returns the number of records indexed afterwards.
func Restore(ctx context.Context, j *journal.Journal, index *shelfindex.Index, log *logger.Logger) (int, error) {
	log = log.WithFields(map[string]any{"component": "journal"})
	err := j.Replay(func(e *journal.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch e.Op {
		case journal.OpPut:
			var spec holding.RecordSpec
			if err := json.Unmarshal(e.Value, &spec); err != nil {
				return fmt.Errorf("LSN %d: decode record: %w", e.LSN, err)
			}
			if _, err := index.Add(ctx, holding.NewRecord(spec)); err != nil {
				return fmt.Errorf("LSN %d: %w", e.LSN, err)
			}
		case journal.OpDelete:
			err := index.Remove(ctx, string(e.Key))
			if err != nil && !errors.Is(err, shelfindex.ErrRecordNotFound) {
				return fmt.Errorf("LSN %d: %w", e.LSN, err)
			}
		default:
			log.Warn("skipping unknown journal entry").Uint64("lsn", e.LSN).Send()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("replay journal: %w", err)
	}

	stats, err := j.Compact()
	if err != nil {
		return 0, fmt.Errorf("compact journal: %w", err)
	}
	log.Info("journal restored").
		Int("entries_before", stats.Before).
		Int("entries_after", stats.After).
		Int("records", index.Records()).
		Int("index_entries", index.Len()).
		Send()
	return index.Records(), nil
}
