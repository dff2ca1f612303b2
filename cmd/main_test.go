package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/adapters/repository"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

func TestOpenStore(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		cfg := config.New()

		convey.Convey("The memory driver opens an in-memory store", func() {
			s, err := openStore(cfg)
			convey.So(err, convey.ShouldBeNil)
			_, ok := s.(*repository.MemoryStore)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.Close(), convey.ShouldBeNil)
		})

		convey.Convey("The sqlite driver opens the configured file", func() {
			cfg.StoreDriver = config.DriverSQLite
			cfg.StorePath = filepath.Join(t.TempDir(), "courtside.db")
			s, err := openStore(cfg)
			convey.So(err, convey.ShouldBeNil)
			_, ok := s.(*repository.SQLiteStore)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.Close(), convey.ShouldBeNil)
		})
	})
}

func TestHandler(t *testing.T) {
	convey.Convey("Given the wired handler", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.CORSOrigins = []string{"https://scorer.example"}
		svc := app.New(app.WithMatchDefaults(cfg.MatchDefaults()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop(ctx)
		h := newHandler(ctx, cfg, svc, nil)

		convey.Convey("The API and docs routes are reachable", func() {
			for _, path := range []string{"/healthz", "/matches", "/stats", "/openapi.yaml", "/metrics"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Allowed origins get CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Origin", "https://scorer.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "https://scorer.example")
		})

		convey.Convey("Other origins do not", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Origin", "https://elsewhere.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldBeEmpty)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("run returns once its context is cancelled", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		convey.So(run(ctx, cfg), convey.ShouldBeNil)
	})
}
