package live

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const invalidateChannel = "live:invalidate"

var (
	// ErrColecaoDesconhecida indica assinatura de coleção sem loader registrado.
	ErrColecaoDesconhecida = errors.New("live: coleção desconhecida")
	// ErrEncerrado indica hub já encerrado.
	ErrEncerrado = errors.New("live: hub encerrado")
)

// Loader materializa a lista completa de uma coleção.
type Loader func(ctx context.Context) (any, error)

type assinante struct {
	ch chan json.RawMessage
}

// Hub mantém um snapshot por coleção e o empurra inteiro a cada mudança.
// Não há diff: cada invalidação recarrega a lista e substitui a anterior.
// Instâncias distintas se avisam por pub/sub no Redis.
type Hub struct {
	mu        sync.Mutex
	loaders   map[string]Loader
	snapshots map[string]json.RawMessage
	subs      map[string]map[int]*assinante
	nextID    int
	closed    bool

	instanceID string
	redis      *redis.Client
	cancel     context.CancelFunc
	log        zerolog.Logger
}

// New cria o hub. O cliente Redis é opcional: sem ele o hub atende
// apenas assinaturas do próprio processo.
func New(redisClient *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{
		loaders:    make(map[string]Loader),
		snapshots:  make(map[string]json.RawMessage),
		subs:       make(map[string]map[int]*assinante),
		instanceID: uuid.NewString(),
		redis:      redisClient,
		log:        log,
	}
}

// Register associa o loader da coleção. Deve ocorrer antes de Start.
func (h *Hub) Register(colecao string, loader Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[colecao] = loader
}

// Start liga a escuta de invalidações vindas de outras instâncias.
func (h *Hub) Start(ctx context.Context) {
	if h.redis == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	pubsub := h.redis.Subscribe(ctx, invalidateChannel)
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				origem, colecao, found := strings.Cut(msg.Payload, "|")
				if !found || origem == h.instanceID {
					continue
				}
				if err := h.reload(ctx, colecao); err != nil {
					h.log.Warn().Err(err).Str("colecao", colecao).Msg("reload remoto falhou")
				}
			}
		}
	}()
}

// Subscribe abre uma assinatura da coleção. O snapshot corrente é entregue
// imediatamente; cada mudança posterior entrega a lista inteira de novo.
// O cancel devolvido encerra a assinatura.
func (h *Hub) Subscribe(ctx context.Context, colecao string) (<-chan json.RawMessage, func(), error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, ErrEncerrado
	}
	if _, ok := h.loaders[colecao]; !ok {
		h.mu.Unlock()
		return nil, nil, ErrColecaoDesconhecida
	}

	h.nextID++
	id := h.nextID
	sub := &assinante{ch: make(chan json.RawMessage, 1)}
	if h.subs[colecao] == nil {
		h.subs[colecao] = make(map[int]*assinante)
	}
	h.subs[colecao][id] = sub

	snapshot, temSnapshot := h.snapshots[colecao]
	h.mu.Unlock()

	if !temSnapshot {
		if err := h.reload(ctx, colecao); err != nil {
			h.log.Warn().Err(err).Str("colecao", colecao).Msg("snapshot inicial indisponível")
		}
	} else {
		h.mu.Lock()
		if subs, ok := h.subs[colecao]; ok {
			if _, ainda := subs[id]; ainda {
				sub.push(snapshot)
			}
		}
		h.mu.Unlock()
	}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[colecao]; ok {
			if s, ok := subs[id]; ok {
				delete(subs, id)
				close(s.ch)
			}
		}
	}

	return sub.ch, cancel, nil
}

// Invalidate recarrega a coleção, avisa assinantes locais e as demais instâncias.
func (h *Hub) Invalidate(ctx context.Context, colecao string) {
	if err := h.reload(ctx, colecao); err != nil {
		h.log.Warn().Err(err).Str("colecao", colecao).Msg("invalidate: reload falhou")
		return
	}

	if h.redis != nil {
		payload := h.instanceID + "|" + colecao
		if err := h.redis.Publish(ctx, invalidateChannel, payload).Err(); err != nil {
			h.log.Warn().Err(err).Str("colecao", colecao).Msg("invalidate: publish falhou")
		}
	}
}

// Close encerra todas as assinaturas; mudanças posteriores não entregam nada.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.cancel != nil {
		h.cancel()
	}
	for colecao, subs := range h.subs {
		for id, sub := range subs {
			close(sub.ch)
			delete(subs, id)
		}
		delete(h.subs, colecao)
	}
}

func (h *Hub) reload(ctx context.Context, colecao string) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrEncerrado
	}
	loader, ok := h.loaders[colecao]
	h.mu.Unlock()
	if !ok {
		return ErrColecaoDesconhecida
	}

	lista, err := loader(ctx)
	if err != nil {
		return err
	}

	snapshot, err := json.Marshal(lista)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrEncerrado
	}
	h.snapshots[colecao] = snapshot
	for _, sub := range h.subs[colecao] {
		sub.push(snapshot)
	}
	return nil
}

// push entrega o snapshot mais recente sem bloquear: se o assinante ainda
// não consumiu o anterior, o antigo é descartado (só a lista final importa).
func (a *assinante) push(snapshot json.RawMessage) {
	for {
		select {
		case a.ch <- snapshot:
			return
		default:
			select {
			case <-a.ch:
			default:
			}
		}
	}
}
