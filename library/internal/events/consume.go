package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type recordReturn func(ctx context.Context, borrowRequestID string) error

// ReturnsConsumer applies return notices from the delivery collaborator.
type ReturnsConsumer struct {
	recordReturnHandler recordReturn
	log                 *zap.Logger
	ready               chan struct{}
	readyOnce           sync.Once
	retryDelay          time.Duration
}

func NewReturnsConsumer(h recordReturn, log *zap.Logger) *ReturnsConsumer {
	return &ReturnsConsumer{
		recordReturnHandler: h,
		log:                 log.Named("consumer"),
		ready:               make(chan struct{}),
		retryDelay:          time.Second,
	}
}

// Ready is closed once the first session has been set up.
func (c *ReturnsConsumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *ReturnsConsumer) Setup(sarama.ConsumerGroupSession) error {
	c.readyOnce.Do(func() { close(c.ready) })
	return nil
}

func (c *ReturnsConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *ReturnsConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Warn("message channel was closed")
				return nil
			}
			var msg model.ReturnMsg
			if err := json.Unmarshal(message.Value, &msg); err != nil || msg.BorrowRequestID == "" {
				c.log.Error("bad return message", zap.ByteString("value", message.Value), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := c.recordReturnHandler(session.Context(), msg.BorrowRequestID); err != nil {
				if !permanent(err) {
					// Offsets commit cumulatively, so nothing after this message may be
					// marked. Ending the claim ends the session, and the next one
					// resumes from this message.
					c.log.Error("recordReturn", zap.String("borrowRequestId", msg.BorrowRequestID), zap.Error(err))
					select {
					case <-time.After(c.retryDelay):
					case <-session.Context().Done():
					}
					return errors.Wrapf(err, "return %s at offset %d", msg.BorrowRequestID, message.Offset)
				}
				c.log.Warn("return rejected", zap.String("borrowRequestId", msg.BorrowRequestID), zap.Error(err))
			}

			c.log.Debug("message claimed",
				zap.String("value", string(message.Value)),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func permanent(err error) bool {
	return errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrInvalidState) ||
		errors.Is(err, errs.ErrValidation)
}
