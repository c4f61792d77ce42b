package live

import (
	"context"
	"encoding/json"

	"github.com/MrSnakeDoc/bookingdash/internal/bookings"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/dto"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// Encode renders v as a live feed message.
func Encode(v bookings.View) ([]byte, error) {
	return json.Marshal(dto.Live{Type: "view", View: dto.FromView(v)})
}

// Publish broadcasts every view received on views until ctx is done or the
// channel is closed.
func Publish(ctx context.Context, views <-chan bookings.View, hub *Hub, log logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-views:
			if !ok {
				return
			}
			msg, err := Encode(v)
			if err != nil {
				log.Error("failed to encode live view", logger.Error(err))
				continue
			}
			hub.Broadcast(msg)
		}
	}
}
