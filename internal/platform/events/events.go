package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/freshmart/storefront/internal/platform/logger"
)

// CartTopic carries cart mutation events.
const CartTopic = "cart.events"

// NewPubSub builds the in-process pub/sub used for domain events.
// Publishing blocks until every current subscriber acks, so a cart
// mutation is observable to subscribers before the caller's next read.
func NewPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, loggerAdapter{})
}

// loggerAdapter bridges watermill's logging to the platform logger.
type loggerAdapter struct {
	fields watermill.LogFields
}

func (a loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	logger.Error(msg, err, a.kv(fields)...)
}

func (a loggerAdapter) Info(msg string, fields watermill.LogFields) {
	logger.Debug(msg, a.kv(fields)...)
}

func (a loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	logger.Debug(msg, a.kv(fields)...)
}

func (a loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	logger.Debug(msg, a.kv(fields)...)
}

func (a loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return loggerAdapter{fields: a.fields.Add(fields)}
}

func (a loggerAdapter) kv(fields watermill.LogFields) []interface{} {
	merged := a.fields.Add(fields)
	kv := make([]interface{}, 0, len(merged)*2)
	for k, v := range merged {
		kv = append(kv, k, v)
	}
	return kv
}
