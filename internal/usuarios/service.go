package usuarios

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ligaacademica/portal/internal/auth"
	"github.com/ligaacademica/portal/internal/util"
)

const audiencia = "portal"

type repositorio interface {
	List(ctx context.Context) ([]Usuario, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error)
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	Create(ctx context.Context, u Usuario) (*Usuario, error)
	SetAcesso(ctx context.Context, id uuid.UUID, liberado bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service concentra cadastro, autenticação e sessões.
type Service struct {
	repo       repositorio
	tokens     *auth.JWTManager
	redis      *redis.Client
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewService(repo repositorio, tokens *auth.JWTManager, rdb *redis.Client, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		redis:      rdb,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log.With().Str("component", "usuarios").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Usuario, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	return s.repo.GetByID(ctx, id)
}

// Registrar cria a conta com acesso bloqueado até liberação da coordenação.
// O e-mail entra sempre minúsculo, então "Ana@Ex.com" e "ana@ex.com" colidem.
func (s *Service) Registrar(ctx context.Context, input RegistrarInput) (*Usuario, error) {
	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		return nil, errors.New("nome obrigatório")
	}

	email := util.NormalizeEmail(input.Email)
	if err := util.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(input.Senha); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailEmUso
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.Hash(input.Senha)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, Usuario{
		ID:             uuid.New(),
		Nome:           nome,
		Email:          email,
		SenhaHash:      hash,
		Papel:          PapelStudent,
		AcessoLiberado: false,
	})
}

// Login valida as credenciais e abre uma sessão. Conta sem liberação recebe
// um erro próprio para a tela conseguir distinguir de senha errada.
func (s *Service) Login(ctx context.Context, email, senha string) (*Usuario, *TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrCredenciaisInvalidas
		}
		return nil, nil, err
	}

	ok, err := auth.Verify(senha, user.SenhaHash)
	if err != nil || !ok {
		return nil, nil, ErrCredenciaisInvalidas
	}

	if !user.AcessoLiberado && user.Papel != PapelAdmin {
		return nil, nil, ErrAcessoBloqueado
	}

	pair, err := s.abrirSessao(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotaciona o token: o antigo é consumido atomicamente e um novo
// par é emitido. Reuso de token consumido cai em ErrSessaoInvalida.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*Usuario, *TokenPair, error) {
	key := auth.RefreshRedisKey(auth.HashRefreshToken(rawToken))

	subject, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, ErrSessaoInvalida
		}
		return nil, nil, err
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, nil, ErrSessaoInvalida
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrSessaoInvalida
		}
		return nil, nil, err
	}

	if !user.AcessoLiberado && user.Papel != PapelAdmin {
		return nil, nil, ErrAcessoBloqueado
	}

	pair, err := s.abrirSessao(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout invalida o refresh token atual. Token desconhecido não é erro.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	key := auth.RefreshRedisKey(auth.HashRefreshToken(rawToken))
	return s.redis.Del(ctx, key).Err()
}

// AlternarAcesso inverte somente a flag de liberação da conta.
func (s *Service) AlternarAcesso(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAcesso(ctx, id, !user.AcessoLiberado); err != nil {
		return nil, err
	}
	user.AcessoLiberado = !user.AcessoLiberado
	return user, nil
}

// Remover apaga a conta de acesso.
func (s *Service) Remover(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SeedAdmin garante a conta administrativa definida por ambiente. Sem as
// variáveis configuradas nada acontece; conta já existente é preservada.
func (s *Service) SeedAdmin(ctx context.Context, nome, email, senha string) error {
	email = util.NormalizeEmail(email)
	if email == "" || senha == "" {
		return nil
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		return err
	}

	if strings.TrimSpace(nome) == "" {
		nome = "Coordenação"
	}

	_, err = s.repo.Create(ctx, Usuario{
		ID:             uuid.New(),
		Nome:           nome,
		Email:          email,
		SenhaHash:      hash,
		Papel:          PapelAdmin,
		AcessoLiberado: true,
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("conta administrativa criada")
	return nil
}

func (s *Service) abrirSessao(ctx context.Context, user *Usuario) (*TokenPair, error) {
	access, _, err := s.tokens.GenerateAccessToken(user.ID.String(), audiencia, []string{user.Papel})
	if err != nil {
		return nil, err
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, auth.RefreshRedisKey(hash), user.ID.String(), s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     raw,
		ExpiresInSeconds: int64(s.accessTTL.Seconds()),
	}, nil
}
