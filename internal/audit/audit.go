// Package audit is the post-commit side-channel. Sinks are best effort:
// a failing sink is logged and swallowed, it never blocks or fails the
// operation that produced the entry.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	TeamID          uuid.UUID   `json:"team_id"`
	Operation       string      `json:"operation"`
	AffectedUserIDs []uuid.UUID `json:"affected_user_ids"`
	ActorID         uuid.UUID   `json:"actor_id"`
	Timestamp       time.Time   `json:"timestamp"`
}

type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// LogSink writes entries to the service log.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(_ context.Context, entry Entry) error {
	s.log.Info("audit",
		slog.String("team_id", entry.TeamID.String()),
		slog.String("operation", entry.Operation),
		slog.Any("affected_user_ids", entry.AffectedUserIDs),
		slog.String("actor_id", entry.ActorID.String()),
		slog.Time("timestamp", entry.Timestamp))
	return nil
}
