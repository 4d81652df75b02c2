package web

import (
	"log"
	"net/http"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/transport/web/mw"
	"github.com/Wizlit-Org/file-service/internal/transport/web/v1/file"
	"github.com/Wizlit-Org/file-service/internal/transport/web/v1/health"
)

func newRouter(hh *health.Handler, fh *file.Handler, tokens domain.TokenManager, maxBody int64, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// files (под Bearer-токеном)
	auth := mw.AuthDeps{Tokens: tokens}
	mux.Handle("POST /v1/files", mw.RequireAuth(auth, limitBody(maxBody, fh.Upload)))
	mux.Handle("GET /v1/files/{fileId}", mw.RequireAuth(auth, http.HandlerFunc(fh.View)))

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

// limitBody режет тело запроса; превышение всплывёт как *http.MaxBytesError
func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
