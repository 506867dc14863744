package models

import "time"

// Типы событий подписки. Совпадают с ключами маршрутизации в RabbitMQ.
const (
	EventSubscribed   = "user.subscribed"
	EventUnsubscribed = "user.unsubscribed"
)

// SubscriptionEvent публикуется при подписке пользователя на план и отписке от него.
type SubscriptionEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	PlanID     int64     `json:"plan_id,omitempty"`
	PaidUntil  *Date     `json:"paid_until,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
