package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/application/events"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Observador de prueba: cuenta entregas y puede fallar o entrar en pánico.
// ──────────────────────────────────────────────────────────────────────────────

type spyObserver struct {
	name  string
	mu    sync.Mutex
	seen  []event.Event
	fail  error
	panic bool
}

func (o *spyObserver) Name() string { return o.name }

func (o *spyObserver) Handle(_ context.Context, ev event.Event) error {
	if o.panic {
		panic("observador roto")
	}
	o.mu.Lock()
	o.seen = append(o.seen, ev)
	o.mu.Unlock()
	return o.fail
}

func (o *spyObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.seen)
}

func stockEvent(productID string) event.StockChanged {
	return event.StockChanged{
		ProductID:   productID,
		StockBefore: 10,
		StockAfter:  5,
		Direction:   "OUT",
		Quantity:    5,
		At:          time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestBus_EntregaATodosLosSuscriptores(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	a := &spyObserver{name: "a"}
	b := &spyObserver{name: "b"}
	bus.Subscribe(a, event.TypeStockChanged)
	bus.Subscribe(b, event.TypeStockChanged)

	bus.Publish(context.Background(), stockEvent("p1"))

	assert.Equal(t, 1, a.count(), "el primer observador debe recibir el evento")
	assert.Equal(t, 1, b.count(), "el segundo observador debe recibir el evento")
}

func TestBus_FiltraPorTipoDeEvento(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	stockObs := &spyObserver{name: "stock"}
	requestObs := &spyObserver{name: "request"}
	bus.Subscribe(stockObs, event.TypeStockChanged)
	bus.Subscribe(requestObs, event.TypeRequestStateChanged)

	bus.Publish(context.Background(), stockEvent("p1"))

	assert.Equal(t, 1, stockObs.count())
	assert.Equal(t, 0, requestObs.count(),
		"un evento de stock no debe llegar a los suscriptores de solicitudes")
}

func TestBus_FalloDeUnObservadorNoAfectaALosDemas(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	roto := &spyObserver{name: "roto", fail: errors.New("db caída")}
	sano := &spyObserver{name: "sano"}
	bus.Subscribe(roto, event.TypeStockChanged)
	bus.Subscribe(sano, event.TypeStockChanged)

	// Publish no devuelve error: el fallo del observador solo se registra.
	bus.Publish(context.Background(), stockEvent("p1"))

	assert.Equal(t, 1, sano.count(),
		"el observador sano debe recibir el evento aunque otro falle")
}

func TestBus_PanicoDeUnObservadorNoAfectaALosDemas(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	panico := &spyObserver{name: "panico", panic: true}
	sano := &spyObserver{name: "sano"}
	bus.Subscribe(panico, event.TypeStockChanged)
	bus.Subscribe(sano, event.TypeStockChanged)

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), stockEvent("p1"))
	}, "el pánico de un observador no debe propagarse al publicador")

	assert.Equal(t, 1, sano.count())
}

func TestBus_SinSuscriptoresNoFalla(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), stockEvent("p1"))
	})
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	obs := &spyObserver{name: "a"}
	bus.Subscribe(obs, event.TypeStockChanged, event.TypeRequestStateChanged)

	bus.Publish(context.Background(), stockEvent("p1"))
	assert.Equal(t, 1, obs.count())

	bus.Unsubscribe(obs)
	bus.Publish(context.Background(), stockEvent("p2"))
	assert.Equal(t, 1, obs.count(),
		"después de Unsubscribe no deben llegar más eventos")
}

func TestBus_SuscripcionMultiplesTipos(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	obs := &spyObserver{name: "kpi"}
	bus.Subscribe(obs, event.TypeStockChanged, event.TypeRequestStateChanged)

	bus.Publish(context.Background(), stockEvent("p1"))
	bus.Publish(context.Background(), event.RequestStateChanged{
		RequestID:  "r1",
		FromStatus: "DRAFT",
		ToStatus:   "PENDING_APPROVAL",
		At:         time.Now(),
	})

	assert.Equal(t, 2, obs.count(), "debe recibir ambos tipos de evento")
}
