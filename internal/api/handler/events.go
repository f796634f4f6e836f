package handler

import (
	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/model"
)

// EventPublisher delivers game events to watchers
type EventPublisher interface {
	Publish(event model.Event)
}

type eventEmitter struct {
	publisher EventPublisher
	clock     clock.Clock
}

func (e eventEmitter) emit(eventType model.EventType, gameID model.GameID, playerID model.PlayerID, payload any) {
	if e.publisher == nil {
		return
	}
	e.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: e.clock.Now(),
		GameID:    gameID,
		PlayerID:  playerID,
		Payload:   payload,
	})
}
