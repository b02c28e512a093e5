package accounts

import (
	"sync"

	"asthmacare/internal/ports/auth"
)

// Event son las transiciones que emite el identity provider.
type Event string

const (
	EventInitialSession Event = "INITIAL_SESSION"
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Observer se invoca de forma síncrona en cada transición.
// user == nil significa "sin sesión".
type Observer func(user *auth.User, event Event)

// Subscription es el handle cancelable de un observer registrado.
type Subscription struct {
	cancel func()
	once   sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Sessions es la máquina de estados sobre el usuario actual.
// Objeto explícito e inyectado: no hay singleton de paquete.
// Set reemplaza el usuario bajo mutex; lectores concurrentes ven el valor
// viejo o el nuevo, nunca uno roto.
type Sessions struct {
	mu        sync.Mutex
	current   *auth.User
	observers map[int]Observer
	nextID    int
}

func NewSessions() *Sessions {
	return &Sessions{
		observers: map[int]Observer{},
	}
}

// Current devuelve el usuario actual (nil sin sesión).
func (s *Sessions) Current() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set transiciona el estado y notifica a todos los observers
// sincrónicamente con (user, event).
func (s *Sessions) Set(user *auth.User, event Event) {
	s.mu.Lock()
	s.current = user
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	// Notificación fuera del lock: un observer puede re-suscribirse o
	// cancelar sin deadlock.
	for _, fn := range observers {
		fn(user, event)
	}
}

// Subscribe registra un observer y lo invoca inmediatamente con el
// estado actual tageado INITIAL_SESSION (replay-on-subscribe).
func (s *Sessions) Subscribe(fn Observer) *Subscription {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current, EventInitialSession)

	return &Subscription{
		cancel: func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		},
	}
}
