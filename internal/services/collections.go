package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"clubroster/internal/domain"
)

// loadCollection decodes the value stored under key. A missing key, a null
// value or a value that does not decode yields empty; only backend errors fail.
func loadCollection[T any](ctx context.Context, store domain.KeyValueStore, logger *slog.Logger, key string, empty T) (T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return empty, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || raw == "" {
		return empty, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.WarnContext(ctx, "persisted collection is unreadable, using empty default", "key", key, "err", err)
		return empty, nil
	}
	return v, nil
}

func encodeEntry(key string, v any) (domain.Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return domain.Entry{Key: key, Value: string(data)}, nil
}

func membersEntry(members []domain.Member) (domain.Entry, error) {
	if members == nil {
		members = []domain.Member{}
	}
	return encodeEntry(domain.KeyMembers, members)
}

func eventsEntry(events []domain.Event) (domain.Entry, error) {
	if events == nil {
		events = []domain.Event{}
	}
	return encodeEntry(domain.KeyEvents, events)
}

func attendanceEntry(a domain.Attendance) (domain.Entry, error) {
	if a == nil {
		a = domain.Attendance{}
	}
	return encodeEntry(domain.KeyAttendance, a)
}
