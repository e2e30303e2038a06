package messaging

import (
	"context"
	"encoding/json"
	"time"

	"skillpulse/internal/config"
	"skillpulse/internal/errors"
	"skillpulse/internal/models"
	"skillpulse/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("skillpulse/messaging")

const (
	RawPostingsSubject = "postings.raw"
)

type Publisher interface {
	PublishRawPosting(ctx context.Context, posting *models.RawPosting) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishRawPosting(ctx context.Context, posting *models.RawPosting) error {
	_, span := tracer.Start(ctx, "PublishRawPosting")
	defer span.End()

	data, err := json.Marshal(posting)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling raw posting", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", RawPostingsSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(RawPostingsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish raw posting",
			zap.String("title", posting.Title),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published raw posting",
		zap.String("title", posting.Title),
		zap.String("subject", RawPostingsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
