package live

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func receber(t *testing.T, ch <-chan json.RawMessage) json.RawMessage {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		if !ok {
			t.Fatalf("canal fechado antes da entrega")
		}
		return snapshot
	case <-time.After(time.Second):
		t.Fatalf("snapshot não chegou a tempo")
		return nil
	}
}

func TestSubscribeEntregaSnapshotInicial(t *testing.T) {
	hub := New(nil, zerolog.Nop())
	hub.Register("membros", func(_ context.Context) (any, error) {
		return []string{"ana", "bruna"}, nil
	})

	ch, cancel, err := hub.Subscribe(context.Background(), "membros")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	defer cancel()

	var lista []string
	if err := json.Unmarshal(receber(t, ch), &lista); err != nil {
		t.Fatalf("snapshot ilegível: %v", err)
	}
	if len(lista) != 2 {
		t.Fatalf("snapshot inicial errado: %v", lista)
	}
}

func TestInvalidateSubstituiAListaInteira(t *testing.T) {
	atual := []string{"ana"}
	hub := New(nil, zerolog.Nop())
	hub.Register("membros", func(_ context.Context) (any, error) {
		return atual, nil
	})

	ch, cancel, err := hub.Subscribe(context.Background(), "membros")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	defer cancel()
	receber(t, ch)

	atual = []string{"ana", "bruna", "carlos"}
	hub.Invalidate(context.Background(), "membros")

	var lista []string
	if err := json.Unmarshal(receber(t, ch), &lista); err != nil {
		t.Fatalf("snapshot ilegível: %v", err)
	}
	if len(lista) != 3 {
		t.Fatalf("mudança deveria entregar a lista inteira de novo: %v", lista)
	}
}

func TestSubscribeColecaoDesconhecida(t *testing.T) {
	hub := New(nil, zerolog.Nop())

	_, _, err := hub.Subscribe(context.Background(), "inexistente")
	if !errors.Is(err, ErrColecaoDesconhecida) {
		t.Fatalf("esperava ErrColecaoDesconhecida, veio %v", err)
	}
}

func TestCloseEncerraAssinaturasEMudancasNaoEntregamMais(t *testing.T) {
	hub := New(nil, zerolog.Nop())
	hub.Register("membros", func(_ context.Context) (any, error) {
		return []string{"ana"}, nil
	})

	ch, cancel, err := hub.Subscribe(context.Background(), "membros")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	defer cancel()
	receber(t, ch)

	hub.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("canal deveria estar fechado após Close")
		}
	case <-time.After(time.Second):
		t.Fatalf("canal não fechou após Close")
	}

	// mudança posterior não muta nada nem entrega
	hub.Invalidate(context.Background(), "membros")

	if _, _, err := hub.Subscribe(context.Background(), "membros"); !errors.Is(err, ErrEncerrado) {
		t.Fatalf("assinatura após Close deveria falhar com ErrEncerrado, veio %v", err)
	}
}

func TestAssinanteLentoRecebeApenasOMaisRecente(t *testing.T) {
	atual := []string{"v1"}
	hub := New(nil, zerolog.Nop())
	hub.Register("feed", func(_ context.Context) (any, error) {
		return atual, nil
	})

	ch, cancel, err := hub.Subscribe(context.Background(), "feed")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	defer cancel()

	// sem consumir nada, três mudanças seguidas
	atual = []string{"v2"}
	hub.Invalidate(context.Background(), "feed")
	atual = []string{"v3"}
	hub.Invalidate(context.Background(), "feed")
	atual = []string{"v4", "extra"}
	hub.Invalidate(context.Background(), "feed")

	var lista []string
	if err := json.Unmarshal(receber(t, ch), &lista); err != nil {
		t.Fatalf("snapshot ilegível: %v", err)
	}
	if lista[0] != "v4" {
		t.Fatalf("assinante lento deveria ver só a versão final: %v", lista)
	}
}
