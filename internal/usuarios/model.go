package usuarios

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PapelAdmin   = "ADMIN"
	PapelStudent = "STUDENT"
)

var (
	ErrNotFound = errors.New("usuário não encontrado")
	// ErrEmailEmUso indica cadastro repetido, comparação sem distinção de caixa.
	ErrEmailEmUso = errors.New("e-mail já cadastrado")
	// ErrCredenciaisInvalidas cobre tanto e-mail inexistente quanto senha errada.
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	// ErrAcessoBloqueado indica conta existente ainda sem liberação da coordenação.
	ErrAcessoBloqueado = errors.New("acesso ainda não liberado")
	ErrSessaoInvalida  = errors.New("sessão inválida ou expirada")
)

// Usuario é a conta de acesso ao portal. O e-mail é sempre guardado em
// minúsculas e funciona como chave natural de login.
type Usuario struct {
	ID             uuid.UUID `json:"id"`
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	SenhaHash      string    `json:"-"`
	Papel          string    `json:"papel"`
	AcessoLiberado bool      `json:"acesso_liberado"`
	CriadoEm       time.Time `json:"criado_em"`
}

// RegistrarInput é o payload do cadastro público.
type RegistrarInput struct {
	Nome  string
	Email string
	Senha string
}

// TokenPair é o resultado de login e refresh.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresInSeconds int64  `json:"expires_in"`
}
