package app

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/snapgreet/internal/handler"
	"github.com/snapgreet/internal/middleware"
	"github.com/snapgreet/internal/web"
)

func (app App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	// The capture page may be hosted separately from this API.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS))))

	// Landing page with the camera capture client
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		// http.ServeFileFS equivalent; requires Go 1.22+, toolchain is 1.21.
		f, err := web.StaticFS.Open("index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		rs, ok := f.(io.ReadSeeker)
		if !ok {
			http.Error(w, "500 internal server error", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, "index.html", info.ModTime(), rs)
	})

	// Health check
	r.Get("/api/health", handler.Health())

	// Photo submissions
	submitHandler := handler.NewSubmitHandler(app.logger)
	r.Post("/submit", submitHandler.Submit)

	return r
}
