// Package queue connects the engine to NATS JetStream. Analysis requests are
// published to the request subject and consumed by worker processes.
package queue

import (
	"context"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/zhulik/pips"

	"xtrack/internal/config"
	"xtrack/pkg/async"
)

const (
	appName = "xtrack"

	// RequestSubject carries serialized analysis requests.
	RequestSubject = appName + ".requests"

	fetchBatchSize = 16
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "queue.NATS")

	nc, err := libnats.Connect(n.Config.NATSURL)
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

// Publish enqueues a payload on the given subject. The message ID deduplicates
// redeliveries within the stream's duplicate window.
func (n *NATS) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	msg := &libnats.Msg{
		Subject: subject,
		Data:    data,
		Header: libnats.Header{
			libnats.MsgIdHdr: []string{msgID},
		},
	}

	_, err := n.JS.PublishMsg(ctx, msg)
	return err
}

// ConsumeToPipeline feeds the durable consumer's messages into the pipeline
// until the context is canceled.
func (n *NATS) ConsumeToPipeline(ctx context.Context, consumer string, pipeline *pips.Pipeline[jetstream.Msg, any]) error {
	cons, err := n.JS.Consumer(ctx, appName, consumer)
	if err != nil {
		return err
	}

	ch := async.Generator(ctx, func(ctx context.Context, y async.Yielder[jetstream.Msg]) error {
		for {
			select {
			case <-ctx.Done():
				return nil

			default:
				batch, err := cons.Fetch(fetchBatchSize, jetstream.FetchMaxWait(time.Second))
				if err != nil {
					n.Logger.Warn("failed to fetch messages", "consumer", consumer, "error", err)
					continue
				}

				for msg := range batch.Messages() {
					y(msg, nil)
				}
			}
		}
	})

	return pipeline.Run(ctx, ch).Wait(ctx)
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")

	_, err := n.JS.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     appName,
		Subjects: []string{appName + ".>"},
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Stream created or updated", "name", appName)

	_, err = n.JS.CreateOrUpdateConsumer(ctx, appName, jetstream.ConsumerConfig{
		Durable:       n.Config.NATSConsumer,
		FilterSubject: RequestSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Consumer created or updated", "name", n.Config.NATSConsumer)

	return nil
}
