package changestream

import (
	"conditionalert/pkg/domain/model"
	"conditionalert/pkg/domain/service"
	"conditionalert/pkg/infrastructure/metrics"
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"time"
)

const metricsSource = "kafka"

// MessageReader is the subset of *kafka.Reader used by the consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Consumer struct {
	reader      MessageReader
	handler     service.ConditionAlertHandler
	concurrency int
}

func NewConsumer(reader MessageReader, handler service.ConditionAlertHandler, concurrency int) *Consumer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Consumer{reader: reader, handler: handler, concurrency: concurrency}
}

// Run consumes change events until ctx is cancelled or the reader fails.
// Messages are committed before they are handled, so a failed alert is never
// redelivered. In-flight events are awaited before Run returns.
func (c *Consumer) Run(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	handleCtx := context.WithoutCancel(ctx)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			_ = g.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to fetch change event")
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			_ = g.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to commit change event")
		}

		logger := log.WithFields(log.Fields{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})

		var event model.ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			metrics.ChangeEventsMalformed.WithLabelValues(metricsSource).Inc()
			logger.WithError(err).Error("malformed change event")
			continue
		}
		metrics.ChangeEventsReceived.WithLabelValues(metricsSource).Inc()

		g.Go(func() error {
			start := time.Now()
			if err := c.handler.Handle(handleCtx, event); err != nil {
				logger.WithError(err).Error("failed to handle change event")
			}
			metrics.HandleDuration.WithLabelValues(metricsSource).Observe(time.Since(start).Seconds())
			return nil
		})
	}
}
