package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ligaacademica/portal/internal/acervo"
	"github.com/ligaacademica/portal/internal/assistant"
	"github.com/ligaacademica/portal/internal/auth"
	"github.com/ligaacademica/portal/internal/config"
	"github.com/ligaacademica/portal/internal/eventos"
	"github.com/ligaacademica/portal/internal/feed"
	httpmiddleware "github.com/ligaacademica/portal/internal/http/middleware"
	"github.com/ligaacademica/portal/internal/inscricao"
	"github.com/ligaacademica/portal/internal/laboratorios"
	"github.com/ligaacademica/portal/internal/live"
	"github.com/ligaacademica/portal/internal/media"
	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/mensagens"
	"github.com/ligaacademica/portal/internal/presenca"
	"github.com/ligaacademica/portal/internal/projetos"
	"github.com/ligaacademica/portal/internal/storage"
	"github.com/ligaacademica/portal/internal/usuarios"
)

type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	usuarios      *usuarios.Service
	membros       *membros.Service
	projetos      *projetos.Service
	laboratorios  *laboratorios.Service
	eventos       *eventos.Service
	presenca      *presenca.Service
	mensagens     *mensagens.Service
	feed          *feed.Service
	inscricao     *inscricao.Service
	assistente    *assistant.Service
	acervo        *acervo.Service
	hub           *live.Hub
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	devCookies    bool
}

// NewRouter monta os serviços, registra as coleções no hub e devolve o
// roteador pronto. O hub devolvido deve ser encerrado no shutdown.
func NewRouter(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (http.Handler, *live.Hub, error) {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	var uploader storage.Uploader = storage.NoopUploader{}
	switch cfg.Storage.Provider {
	case "", "noop":
		// mantém uploader padrão
	case "s3", "r2", "cloudflare-r2":
		s3Cfg := storage.S3Config{
			Endpoint:     cfg.Storage.S3Endpoint,
			Region:       cfg.Storage.S3Region,
			Bucket:       cfg.Storage.S3Bucket,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
			PublicDomain: cfg.Storage.S3PublicURL,
		}
		var err error
		uploader, err = storage.NewS3Uploader(s3Cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("storage: provedor %s não suportado", cfg.Storage.Provider)
	}
	if !storage.Configured(uploader) {
		log.Warn().Msg("storage não configurado; payloads embutidos permanecerão inline")
	}

	externalizador := media.NewExternalizador(uploader, log.With().Str("component", "media").Logger())
	hub := live.New(redisClient, log.With().Str("component", "live").Logger())

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)

	usuariosService := usuarios.NewService(usuarios.NewRepository(pool), jwtManager, redisClient,
		cfg.JWTAccessTTL, cfg.JWTRefreshTTL, log.Logger)
	membrosService := membros.NewService(membros.NewRepository(pool), externalizador, hub)
	projetosService := projetos.NewService(projetos.NewRepository(pool), externalizador, hub)
	laboratoriosService := laboratorios.NewService(laboratorios.NewRepository(pool), externalizador, hub)
	eventosService := eventos.NewService(eventos.NewRepository(pool), externalizador, hub)
	presencaService := presenca.NewService(presenca.NewRepository(pool), eventosService, membrosService, hub)
	mensagensService := mensagens.NewService(mensagens.NewRepository(pool), externalizador, hub)
	feedService := feed.NewService(feed.NewRepository(pool), externalizador, hub)
	inscricaoService := inscricao.NewService(inscricao.NewRepository(pool), hub)
	acervoService := acervo.NewService(acervo.NewRepository(pool))

	geminiClient := assistant.NewGeminiClient(cfg.Assistente.APIKey, cfg.Assistente.Model)
	assistenteService := assistant.NewService(assistant.NewRepository(pool), geminiClient,
		membrosService, projetosService, cfg.Assistente.MaxHistorico, log.Logger)

	hub.Register(membros.Colecao, func(ctx context.Context) (any, error) { return membrosService.List(ctx) })
	hub.Register(projetos.Colecao, func(ctx context.Context) (any, error) { return projetosService.List(ctx) })
	hub.Register(laboratorios.Colecao, func(ctx context.Context) (any, error) { return laboratoriosService.List(ctx) })
	hub.Register(eventos.Colecao, func(ctx context.Context) (any, error) { return eventosService.List(ctx) })
	hub.Register(presenca.Colecao, func(ctx context.Context) (any, error) { return presencaService.List(ctx) })
	hub.Register(mensagens.Colecao, func(ctx context.Context) (any, error) { return mensagensService.Canal(ctx) })
	hub.Register(feed.Colecao, func(ctx context.Context) (any, error) { return feedService.List(ctx) })
	hub.Register(inscricao.Colecao, func(ctx context.Context) (any, error) { return inscricaoService.Get(ctx) })
	hub.Start(ctx)

	if err := usuariosService.SeedAdmin(ctx, cfg.Admin.Nome, cfg.Admin.Email, cfg.Admin.Senha); err != nil {
		return nil, nil, fmt.Errorf("seed admin: %w", err)
	}

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		usuarios:      usuariosService,
		membros:       membrosService,
		projetos:      projetosService,
		laboratorios:  laboratoriosService,
		eventos:       eventosService,
		presenca:      presencaService,
		mensagens:     mensagensService,
		feed:          feedService,
		inscricao:     inscricaoService,
		assistente:    assistenteService,
		acervo:        acervoService,
		hub:           hub,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
		devCookies:    devCookies,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/auth", func(authRouter chi.Router) {
			authRouter.Post("/registrar", h.Registrar)
			authRouter.Post("/login", h.Login)
			authRouter.Post("/refresh", h.Refresh)
			authRouter.Post("/logout", h.Logout)
		})

		public.Route("/publico", func(p chi.Router) {
			p.Get("/membros", h.PublicoMembros)
			p.Get("/projetos", h.PublicoProjetos)
			p.Get("/laboratorios", h.PublicoLaboratorios)
			p.Get("/eventos", h.PublicoEventos)
			p.Get("/feed", h.PublicoFeed)
			p.Get("/inscricao", h.PublicoInscricao)
		})

		public.Get("/live/{colecao}", h.LiveStream)
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(jwtManager))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)

		private.Route("/assistente", func(a chi.Router) {
			a.Get("/chat", h.AssistenteTranscricao)
			a.Post("/chat", h.AssistentePerguntar)
			a.Delete("/chat", h.AssistenteLimpar)
		})

		private.Route("/mensagens", func(m chi.Router) {
			m.Get("/", h.MinhasMensagens)
			m.Post("/", h.EnviarMensagem)
		})

		private.Route("/acervo", func(a chi.Router) {
			a.Get("/", h.MeusDocumentos)
			a.Post("/", h.AdicionarDocumento)
			a.Delete("/{id}", h.RemoverDocumento)
		})

		private.Route("/feed", func(f chi.Router) {
			f.Post("/{id}/curtir", h.CurtirPost)
			f.Post("/{id}/comentarios", h.ComentarPost)
		})

		private.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.RequireRoles(usuarios.PapelAdmin))
			admin.Route("/admin", func(ar chi.Router) {
				ar.Route("/usuarios", func(u chi.Router) {
					u.Get("/", h.ListUsuarios)
					u.Patch("/{id}/acesso", h.AlternarAcessoUsuario)
					u.Delete("/{id}", h.RemoverUsuario)
				})
				ar.Route("/membros", func(m chi.Router) {
					m.Get("/", h.ListMembros)
					m.Post("/", h.SalvarMembro)
					m.Patch("/{id}/acesso", h.AlternarAcessoMembro)
					m.Delete("/{id}", h.RemoverMembro)
				})
				ar.Route("/projetos", func(p chi.Router) {
					p.Get("/", h.ListProjetos)
					p.Post("/", h.SalvarProjeto)
					p.Delete("/{id}", h.RemoverProjeto)
				})
				ar.Route("/laboratorios", func(l chi.Router) {
					l.Get("/", h.ListLaboratorios)
					l.Post("/", h.SalvarLaboratorio)
					l.Delete("/{id}", h.RemoverLaboratorio)
				})
				ar.Route("/eventos", func(e chi.Router) {
					e.Get("/", h.ListEventos)
					e.Post("/", h.SalvarEvento)
					e.Delete("/{id}", h.RemoverEvento)
				})
				ar.Route("/presenca", func(p chi.Router) {
					p.Get("/", h.ListPresencas)
					p.Post("/", h.RegistrarPresenca)
					p.Delete("/{id}", h.RemoverPresenca)
				})
				ar.Route("/feed", func(f chi.Router) {
					f.Post("/", h.SalvarPost)
					f.Delete("/{id}", h.RemoverPost)
				})
				ar.Route("/mensagens", func(m chi.Router) {
					m.Get("/", h.CanalMensagens)
				})
				ar.Put("/inscricao", h.AtualizarInscricao)
				ar.Post("/acervo", h.AdicionarDocumentoPara)
			})
		})
	})

	return r, hub, nil
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbErr := h.pool.Ping(ctx)
	redisErr := h.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"db":    errorString(dbErr),
			"redis": errorString(redisErr),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
