package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hrms/internal/events"
	"hrms/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions turns leave decision events into in-app notification
// rows. Offsets are committed only after the row is written; a redelivery hits
// the source_key unique index and is treated as already processed.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		userUUID, err := uuid.Parse(event.UserID)
		if err != nil {
			log.Error("leave decision event has invalid user id",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		sourceKey := fmt.Sprintf("%s:%s", event.EventType, event.LeaveID)
		row := &notification.Notification{
			ID:        uuid.New(),
			UserID:    userUUID,
			Title:     decisionTitle(event),
			Body:      decisionBody(event),
			SourceKey: &sourceKey,
		}

		if err := notificationRepo.Create(ctx, row); err != nil {
			if isDuplicateNotification(err) {
				log.Warn("leave decision already notified, skipping",
					zap.String("leave_id", event.LeaveID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create leave decision notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision notification created",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.String("event_type", event.EventType),
		)
	}
}

func decisionTitle(event events.LeaveDecidedEvent) string {
	if event.EventType == events.LeaveApprovedEventType {
		return "Leave application approved"
	}
	return "Leave application rejected"
}

func decisionBody(event events.LeaveDecidedEvent) string {
	verb := "approved"
	if event.EventType == events.LeaveRejectedEventType {
		verb = "rejected"
	}
	body := fmt.Sprintf("Your %s leave from %s to %s has been %s.",
		strings.ReplaceAll(strings.ToLower(event.LeaveType), "_", " "),
		event.StartDate, event.EndDate, verb,
	)
	if event.Remarks != "" {
		body += " Remarks: " + event.Remarks
	}
	return body
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
