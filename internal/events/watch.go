package events

import (
	"go.uber.org/zap"
)

// WatchPriceDrops subscribes to price changes and logs every drop at info
// level; other changes and undecodable messages are logged at debug level.
func WatchPriceDrops(sub Subscriber, log *zap.Logger) error {
	return sub.Subscribe(SubjectPriceChanged, func(msg *Message) {
		var ev PriceChanged
		if err := msg.Decode(&ev); err != nil {
			log.Debug("skipping price event", zap.Error(err))
			return
		}
		if !ev.Drop() {
			log.Debug("price raised", zap.String("kind", ev.Kind), zap.String("id", ev.ID))
			return
		}
		log.Info("price drop",
			zap.String("kind", ev.Kind),
			zap.String("id", ev.ID),
			zap.String("name", ev.Name),
			zap.Float64("old_price", ev.OldPrice),
			zap.Float64("new_price", ev.NewPrice),
			zap.Float64("percent", ev.DropPercent()),
		)
	})
}
