package rabbitmq

// Имена exchange, очередей и routing key для уведомлений о продлениях.
const (
	ExchangeNotifications = "notifications"
	QueueUpcomingRenewals = "notifications.upcoming"
	RoutingKeyUpcoming    = "upcoming"
)

// QueueConfig описывает очередь и ее routing key в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые обслуживает sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueUpcomingRenewals, RoutingKey: RoutingKeyUpcoming},
	}
}
