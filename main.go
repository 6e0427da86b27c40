package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	auth "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/auth"
	batch "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/batch"
	importer "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/importer"
	sweep "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/sweep"
	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
	config "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/config"
	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
	profile "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/profile"
	repo "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, db *sql.DB, cfg *config.Config, metrics *observability.Metrics) {
	repository := repo.NewPostgres(db)

	authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Users: repository}
	profileH := &profile.ProfileHandler{Repo: repository}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")

	windH := &wind.Handler{Runs: repository, Metrics: metrics}
	batchH := &batch.Handler{Metrics: metrics}
	importerH := &importer.Handler{Metrics: metrics}
	sweepH := &sweep.Handler{Metrics: metrics}

	secureApi.HandleFunc("/tools/wind/calc", windH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/wind/zones", windH.Zones).Methods("POST")
	secureApi.HandleFunc("/tools/wind/peak-pressure", windH.PeakPressure).Methods("POST")
	secureApi.HandleFunc("/tools/wind/terrain", windH.TerrainList).Methods("GET")
	secureApi.HandleFunc("/tools/wind/terrain/{code}", windH.TerrainGet).Methods("GET")
	secureApi.HandleFunc("/tools/wind/batch", batchH.Wind).Methods("POST")
	secureApi.HandleFunc("/tools/wind/import", importerH.Wind).Methods("POST")
	secureApi.HandleFunc("/tools/wind/sweep", sweepH.Wind).Methods("POST")
	secureApi.HandleFunc("/tools/wind/runs", windH.RunHistory).Methods("GET")

	// Scrape endpoint stays outside the rate-limited /api tree.
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := repo.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Database error: ", err)
	}
	defer db.Close()

	metrics := observability.NewMetrics()

	router := mux.NewRouter()
	log.Println("Starting server on", cfg.HTTPAddr)
	HandleList(router, db, cfg, metrics)
	handler := CORS(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCertFile != "" {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped cleanly")

	wg.Wait()
}
