package ws

import (
	"github.com/flockrhq/flockr/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	n.notifyMessage(EventTypeMessageNew, msg)
}

func (n *HubNotifier) NotifyEditedMessage(msg *domain.Message) {
	n.notifyMessage(EventTypeMessageEdited, msg)
}

func (n *HubNotifier) NotifyRemovedMessage(channelID, messageID int64) {
	evt, err := NewEvent(EventTypeMessageRemoved, &channelID, MessageRemovedPayload{ID: messageID})
	if err != nil {
		return
	}
	n.hub.BroadcastToChannel(channelID, evt)
}

func (n *HubNotifier) NotifyStandupStarted(channelID, deadline int64) {
	evt, err := NewEvent(EventTypeStandupStarted, &channelID, StandupStartedPayload{TimeFinish: deadline})
	if err != nil {
		return
	}
	n.hub.BroadcastToChannel(channelID, evt)
}

func (n *HubNotifier) NotifyStandupFlushed(msg *domain.Message) {
	n.notifyMessage(EventTypeStandupFlushed, msg)
}

func (n *HubNotifier) notifyMessage(eventType string, msg *domain.Message) {
	evt, err := NewEvent(eventType, &msg.ChannelID, MessagePayload{Message: *msg})
	if err != nil {
		n.hub.log.Error().Err(err).Msg("ws notifier: marshal error")
		return
	}
	n.hub.BroadcastToChannel(msg.ChannelID, evt)
}
