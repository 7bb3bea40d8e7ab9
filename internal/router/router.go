package router

import (
	"database/sql"
	"net/http"

	_ "lab-semillas/docs"

	mem "lab-semillas/internal/adapters/storage/memory"
	pg "lab-semillas/internal/adapters/storage/postgres"
	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/dashboard"
	"lab-semillas/internal/domain/germinacion"
	"lab-semillas/internal/domain/historial"
	"lab-semillas/internal/domain/lotes"
	"lab-semillas/internal/domain/pms"
	"lab-semillas/internal/domain/pureza"
	"lab-semillas/internal/domain/tetrazolio"
	"lab-semillas/internal/domain/usuarios"
	"lab-semillas/internal/middleware"
	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/platform/metrics"
	"lab-semillas/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger      logger.Logger
	Notificador analisis.Notificador
	Metrics     *metrics.Metrics

	// HistorialRepo reemplaza al repo de historial de la base principal (p.ej. SQLite).
	HistorialRepo historial.Repository

	// DevUsers siembra usuarios cuando no hay DB.
	DevUsers []usuarios.Usuario
}

type repos struct {
	lotes     lotes.Repository
	usuarios  usuarios.Repository
	historial historial.Repository
	dashboard dashboard.Repository

	germinaciones analisis.Repository[*germinacion.Germinacion]
	purezas       analisis.Repository[*pureza.Pureza]
	pms           analisis.Repository[*pms.PesoMilSemillas]
	tetrazolios   analisis.Repository[*tetrazolio.Tetrazolio]
}

func postgresRepos(db *sql.DB) repos {
	return repos{
		lotes:         pg.NewLotesRepo(db),
		usuarios:      pg.NewUsuariosRepo(db),
		historial:     pg.NewHistorialRepo(db),
		dashboard:     pg.NewDashboardRepo(db),
		germinaciones: pg.NewGerminacionRepo(db),
		purezas:       pg.NewPurezaRepo(db),
		pms:           pg.NewPMSRepo(db),
		tetrazolios:   pg.NewTetrazolioRepo(db),
	}
}

func memoryRepos(devUsers []usuarios.Usuario) repos {
	loteRepo := mem.NewLoteRepo()
	germRepo := mem.NewAnalisisRepo(germinacion.Clonar)
	purRepo := mem.NewAnalisisRepo(pureza.Clonar)
	pmsRepo := mem.NewAnalisisRepo(pms.Clonar)
	tzRepo := mem.NewAnalisisRepo(tetrazolio.Clonar)

	return repos{
		lotes:         loteRepo,
		usuarios:      mem.NewUsuarioRepo(devUsers),
		historial:     mem.NewHistorialRepo(),
		dashboard:     mem.NewDashboardRepo(loteRepo, germRepo, purRepo, pmsRepo, tzRepo),
		germinaciones: germRepo,
		purezas:       purRepo,
		pms:           pmsRepo,
		tetrazolios:   tzRepo,
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	} else {
		rp = memoryRepos(opts.DevUsers)
	}
	if opts.HistorialRepo != nil {
		rp.historial = opts.HistorialRepo
	}

	recOpts := historial.Options{Logger: log}
	engOpts := analisis.Options{
		Notificador: opts.Notificador,
		Logger:      log,
	}
	if opts.Metrics != nil {
		recOpts.Metricas = opts.Metrics
		engOpts.Metricas = opts.Metrics
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	recorder := historial.NewRecorder(rp.historial, rp.usuarios, recOpts)
	engOpts.Auditor = recorder
	eng := analisis.NewEngine(engOpts)

	// Services por módulo
	lotesSvc := lotes.NewService(rp.lotes)

	// Rutas por módulo
	lotes.RegisterRoutes(r, lotesSvc)
	germinacion.RegisterRoutes(r, germinacion.NewService(eng, lotesSvc, rp.germinaciones))
	pureza.RegisterRoutes(r, pureza.NewService(eng, lotesSvc, rp.purezas))
	pms.RegisterRoutes(r, pms.NewService(eng, lotesSvc, rp.pms))
	tetrazolio.RegisterRoutes(r, tetrazolio.NewService(eng, lotesSvc, rp.tetrazolios))
	historial.RegisterRoutes(r, recorder)
	dashboard.RegisterRoutes(r, dashboard.NewService(rp.dashboard))

	return r
}
