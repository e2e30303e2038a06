package events

import (
	"context"
	"fmt"

	"skillpulse/internal/messaging"
	"skillpulse/internal/processor"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	nc        *nats.Conn
	tracer    trace.Tracer
	processor *processor.PostingProcessor
	sub       *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, postingProcessor *processor.PostingProcessor) *Handler {
	return &Handler{
		logger:    logger,
		nc:        nc,
		tracer:    tracer,
		processor: postingProcessor,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(messaging.RawPostingsSubject, "analytics-service", h.handleRawPosting)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", messaging.RawPostingsSubject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handleRawPosting(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "handleRawPosting")
	defer span.End()

	if err := h.processor.ProcessRawPosting(ctx, msg.Data); err != nil {
		h.logger.Error("Failed to process raw posting",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	h.logger.Debug("Successfully processed raw posting",
		zap.String("subject", msg.Subject),
	)
}
