// Package logsink publishes ledger events as log lines.
package logsink

import (
	"context"

	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
)

type Publisher struct {
	log logrus.FieldLogger
}

func NewPublisher(log logrus.FieldLogger) *Publisher {
	return &Publisher{log: log}
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	p.log.WithFields(logrus.Fields{"topic": topic, "event": event}).Info("ledger event")
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
