package notifications

import "context"

// Broker distribuye notificaciones a suscriptores en vivo (por ejemplo
// un canal pub/sub de Redis). La persistencia no pasa por acá.
type Broker interface {
	Publish(ctx context.Context, n Notification) error
	// Subscribe registra fn para las notificaciones del owner y devuelve
	// una suscripción cancelable.
	Subscribe(ctx context.Context, ownerUserID string, fn func(Notification)) (Subscription, error)
}

type Subscription interface {
	Cancel()
}
