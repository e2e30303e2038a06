package processor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"skillpulse/internal/errors"
	"skillpulse/internal/models"
	"skillpulse/internal/skills"
	"skillpulse/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Store is the slice of PostingStore the processor needs.
type Store interface {
	Insert(ctx context.Context, posting *models.Posting) error
}

// PostingProcessor turns a raw listing into a processed posting: detect
// skills in the text, derive a stable ID, and persist the result.
type PostingProcessor struct {
	logger *zap.Logger
	store  Store
	tracer trace.Tracer
	now    func() time.Time
}

func NewPostingProcessor(logger *zap.Logger, store Store) *PostingProcessor {
	return &PostingProcessor{
		logger: logger,
		store:  store,
		tracer: telemetry.GetTracer("skillpulse/processor"),
		now:    time.Now,
	}
}

func (p *PostingProcessor) ProcessRawPosting(ctx context.Context, rawData []byte) error {
	ctx, span := p.tracer.Start(ctx, "ProcessRawPosting")
	defer span.End()

	var raw models.RawPosting
	if err := json.Unmarshal(rawData, &raw); err != nil {
		span.RecordError(err)
		return errors.InvalidInput("decoding raw posting", err)
	}

	detected := skills.Extract(raw.Title + " " + raw.Description)
	posting := raw.ToPosting(postingID(&raw), detected, p.now())

	span.SetAttributes(
		telemetry.String("posting.city", posting.SearchedCity),
		telemetry.Int("posting.skills", len(posting.Skills)),
	)

	if err := p.store.Insert(ctx, posting); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to store posting",
			zap.String("id", posting.ID),
			zap.Error(err))
		return errors.Internal("storing posting", err)
	}

	p.logger.Debug("processed posting",
		zap.String("id", posting.ID),
		zap.String("city", posting.SearchedCity),
		zap.Strings("skills", posting.Skills))
	return nil
}

var postingNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// postingID derives the same UUID for the same listing across ingestion
// cycles, keyed the way the store deduplicates: title, company, city.
func postingID(raw *models.RawPosting) string {
	key := strings.Join([]string{raw.Title, raw.Company, raw.SearchedCity}, "|")
	return uuid.NewSHA1(postingNamespace, []byte(key)).String()
}
