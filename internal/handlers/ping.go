package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/proposal-service/internal/utils"
)

// PingHandler отвечает "ok", если хранилище доступно. check может быть nil.
func PingHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				utils.SendErrorResponse(w, http.StatusServiceUnavailable, "storage is unavailable")
				return
			}
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	}
}
