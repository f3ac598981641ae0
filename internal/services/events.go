package services

import "github.com/sirupsen/logrus"

// Domain event types published after successful writes.
const (
	EventPostCreated   = "post.created"
	EventPostDeleted   = "post.deleted"
	EventPostRetweeted = "post.retweeted"
	EventPostLiked     = "post.liked"
	EventUserFollowed  = "user.followed"
)

// EventPublisher delivers domain events to a broker. *rabbitmq.Client
// implements it.
type EventPublisher interface {
	PublishEvent(eventType string, data interface{}) error
}

// publish sends an event when a publisher is configured. Failures are logged
// and never fail the request that produced the event.
func publish(pub EventPublisher, eventType string, data interface{}) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(eventType, data); err != nil {
		logrus.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
	}
}
