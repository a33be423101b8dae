package http

import (
	"log/slog"
	"slices"
	"time"

	"github.com/geocoder89/vallas-api/internal/auth"
	"github.com/geocoder89/vallas-api/internal/config"
	"github.com/geocoder89/vallas-api/internal/docstore"
	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/geocoder89/vallas-api/internal/http/handlers"
	"github.com/geocoder89/vallas-api/internal/http/middlewares"
	"github.com/geocoder89/vallas-api/internal/observability"
	"github.com/geocoder89/vallas-api/internal/repo"
	"github.com/geocoder89/vallas-api/internal/service"
	"github.com/geocoder89/vallas-api/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	jsonBodyLimit = 1 << 20
	// multipart framing on top of the file itself
	multipartOverhead = 64 << 10
)

// crudRoutes is implemented by every entity handler.
type crudRoutes interface {
	List(*gin.Context)
	Search(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

// access lists the middleware in front of each kind of route.
type access struct {
	read, write, remove []gin.HandlerFunc
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(slices.Clone(mw), h)
}

// mountCRUD registers the uniform entity routes. /search goes before /:id.
func mountCRUD(g *gin.RouterGroup, path string, h crudRoutes, a access) {
	g.GET(path, chain(a.read, h.List)...)
	g.GET(path+"/search", chain(a.read, h.Search)...)
	g.GET(path+"/:id", chain(a.read, h.Get)...)
	g.POST(path, chain(a.write, h.Create)...)
	g.PUT(path+"/:id", chain(a.write, h.Update)...)
	g.DELETE(path+"/:id", chain(a.remove, h.Delete)...)
}

// NewRouter builds the API over store. prom may be nil.
func NewRouter(log *slog.Logger, store docstore.Store, cfg config.Config, prom *observability.Prom) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	// Recovery sits inside RequestLogger so panics still get an access line.
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.Recovery(log, !cfg.IsProduction()))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}
	if cfg.OTELEndpoint != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}

	// health
	h := handlers.NewHealthHandler(store.Ping)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(h.NotFound)

	// wire up services
	vallasSvc := service.NewVallasService(repo.NewVallas(store), log)
	camionesSvc := service.NewCamionesService(repo.NewCamiones(store), log)
	empleadosSvc := service.NewEmpleadosService(repo.NewEmpleados(store), log)
	operativosSvc := service.NewOperativosService(repo.NewOperativos(store), log)
	movimientosSvc := service.NewMovimientosService(repo.NewMovimientos(store), log)

	usuariosRepo := repo.NewUsuarios(store)
	usuariosSvc := service.NewUsuariosService(usuariosRepo, log)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// a typed nil *Prom would not compare equal to nil inside the service
	var loginRec service.LoginRecorder
	if prom != nil {
		loginRec = prom
	}
	authSvc := service.NewAuthService(usuariosRepo, jwtManager, loginRec, log)

	authMW := middlewares.NewAuthMiddleware(jwtManager)

	jsonBody := []gin.HandlerFunc{middlewares.RequireJSON(), middlewares.MaxBodyBytes(jsonBodyLimit)}
	authed := append([]gin.HandlerFunc{authMW.RequireAuth()}, jsonBody...)
	admin := append(slices.Clone(authed), authMW.RequireRoles(usuario.RolAdmin))

	api := r.Group("/api")

	// auth
	login := []gin.HandlerFunc{}
	if cfg.LoginRateLimit > 0 {
		limiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
		login = append(login, limiter.RateLimiterMiddleware(middlewares.KeyByIP))
	}
	login = append(login, jsonBody...)
	api.POST("/auth/login", chain(login, handlers.NewAuthHandler(authSvc).Login)...)

	mountCRUD(api, "/vallas", handlers.NewVallasHandler(vallasSvc), access{write: authed, remove: admin})
	mountCRUD(api, "/camiones", handlers.NewCamionesHandler(camionesSvc), access{write: authed, remove: admin})
	mountCRUD(api, "/empleados", handlers.NewEmpleadosHandler(empleadosSvc), access{read: authed, write: authed, remove: admin})
	mountCRUD(api, "/operativos", handlers.NewOperativosHandler(operativosSvc), access{write: authed, remove: authed})
	mountCRUD(api, "/movimientos", handlers.NewMovimientosHandler(movimientosSvc), access{write: authed, remove: authed})

	usuariosHandler := handlers.NewUsuariosHandler(usuariosSvc)
	mountCRUD(api, "/usuarios", usuariosHandler, access{read: admin, write: admin, remove: admin})
	api.PUT("/usuarios/password/:id", chain(admin, usuariosHandler.ResetPassword)...)

	// upload
	uploadHandler := handlers.NewUploadHandler(upload.New(upload.Mode(cfg.UploadMode), cfg.UploadDir))
	uploadChain := []gin.HandlerFunc{authMW.RequireAuth()}
	if cfg.UploadRateLimit > 0 {
		limiter := middlewares.NewRateLimiter(cfg.UploadRateLimit, time.Minute)
		uploadChain = append(uploadChain, limiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	}
	uploadChain = append(uploadChain, middlewares.MaxBodyBytes(cfg.UploadMaxBytes+multipartOverhead))
	api.POST("/upload", chain(uploadChain, uploadHandler.Upload)...)

	return r
}
