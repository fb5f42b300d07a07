package repository

import (
	"context"
	"errors"
	"time"

	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Instrument wraps s so every call records latency and failures.
// Validation and limit errors are caller mistakes and are not counted.
func Instrument(s Store, l logger.Logger) Store {
	if l == nil {
		l = logger.Nop()
	}
	return &instrumented{next: s, log: l}
}

type instrumented struct {
	next Store
	log  logger.Logger
}

func (i *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	metrics.RecordStoreQueryLatency(op, float64(time.Since(start).Microseconds())/1000)
	if err == nil || errors.Is(err, score.ErrValidation) || errors.Is(err, ErrInvalidLimit) {
		return
	}
	metrics.RecordStoreError(op)
	i.log.Error(ctx, "store operation failed", logger.String("operation", op), logger.Error(err))
}

func (i *instrumented) Insert(ctx context.Context, s score.Score) (err error) {
	defer func(start time.Time) { i.observe(ctx, "insert", start, err) }(time.Now())
	return i.next.Insert(ctx, s)
}

func (i *instrumented) BestPerPlayerAndCommand(ctx context.Context, limit int) (rows []score.Score, err error) {
	defer func(start time.Time) { i.observe(ctx, "best", start, err) }(time.Now())
	return i.next.BestPerPlayerAndCommand(ctx, limit)
}

func (i *instrumented) All(ctx context.Context, limit int) (rows []score.Score, err error) {
	defer func(start time.Time) { i.observe(ctx, "all", start, err) }(time.Now())
	return i.next.All(ctx, limit)
}

func (i *instrumented) Count(ctx context.Context) (n int, err error) {
	defer func(start time.Time) { i.observe(ctx, "count", start, err) }(time.Now())
	return i.next.Count(ctx)
}

func (i *instrumented) Clear(ctx context.Context) (err error) {
	defer func(start time.Time) { i.observe(ctx, "clear", start, err) }(time.Now())
	return i.next.Clear(ctx)
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
