package assistant

import "strings"

// Acumulador monta a resposta final a partir dos fragmentos do streaming.
// Texto é concatenado na ordem de chegada; citações são deduplicadas pela
// URI, mantendo a primeira ocorrência de cada uma.
type Acumulador struct {
	texto    strings.Builder
	citacoes []Citacao
	vistas   map[string]struct{}
}

func NewAcumulador() *Acumulador {
	return &Acumulador{vistas: make(map[string]struct{})}
}

func (a *Acumulador) Adicionar(frag Fragmento) {
	a.texto.WriteString(frag.Texto)
	for _, c := range frag.Citacoes {
		if c.URI == "" {
			continue
		}
		if _, ok := a.vistas[c.URI]; ok {
			continue
		}
		a.vistas[c.URI] = struct{}{}
		a.citacoes = append(a.citacoes, c)
	}
}

func (a *Acumulador) Texto() string {
	return a.texto.String()
}

func (a *Acumulador) Citacoes() []Citacao {
	return a.citacoes
}
