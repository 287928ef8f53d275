package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Observer es un consumidor de eventos de dominio. Debe tolerar entrega
// at-least-once (recomputación idempotente): el bus no deduplica.
type Observer interface {
	// Name identifica al observador en los logs y en el registro.
	Name() string
	Handle(ctx context.Context, ev event.Event) error
}

// Bus es el despachador publish/subscribe de eventos de dominio, indexado
// por tipo de evento. Se construye una vez en el arranque y se inyecta;
// no hay instancia global.
type Bus struct {
	mu   sync.RWMutex
	subs map[event.Type][]Observer
	log  *logger.Logger
}

// NewBus construye el bus de eventos.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs: make(map[event.Type][]Observer),
		log:  log,
	}
}

// Subscribe registra un observador para uno o más tipos de evento.
func (b *Bus) Subscribe(obs Observer, types ...event.Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range types {
		b.subs[t] = append(b.subs[t], obs)
	}
}

// Unsubscribe quita al observador de todos los tipos en los que esté registrado.
func (b *Bus) Unsubscribe(obs Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for t, list := range b.subs {
		filtered := list[:0]
		for _, o := range list {
			if o != obs {
				filtered = append(filtered, o)
			}
		}
		b.subs[t] = filtered
	}
}

// Publish despacha el evento a todos los observadores registrados para su
// tipo, cada uno en su propia goroutine, y espera a que todos terminen.
// El fallo (o pánico) de un observador se registra y no afecta ni al
// publicador ni a los demás observadores. No hay garantía de orden entre
// observadores.
func (b *Bus) Publish(ctx context.Context, ev event.Event) {
	b.mu.RLock()
	observers := make([]Observer, len(b.subs[ev.EventType()]))
	copy(observers, b.subs[ev.EventType()])
	b.mu.RUnlock()

	var wg sync.WaitGroup
	for _, obs := range observers {
		wg.Add(1)
		go func(obs Observer) {
			defer wg.Done()
			if err := b.dispatch(ctx, obs, ev); err != nil {
				b.log.Error().
					Err(err).
					Str("observer", obs.Name()).
					Str("event", string(ev.EventType())).
					Msg("observador falló procesando evento")
			}
		}(obs)
	}
	wg.Wait()
}

// PublishAsync despacha sin bloquear al publicador: los caminos de escritura
// (ledger, motor de aprobación) emiten después del commit y no esperan ni
// revierten por el resultado de los observadores.
func (b *Bus) PublishAsync(ev event.Event) {
	go b.Publish(context.Background(), ev)
}

// dispatch invoca al observador convirtiendo pánicos en error.
func (b *Bus) dispatch(ctx context.Context, obs Observer, ev event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en observador: %v", r)
		}
	}()
	return obs.Handle(ctx, ev)
}
