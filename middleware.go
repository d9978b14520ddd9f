package portal

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func compress(next http.Handler) http.Handler {
	return gziphandler.GzipHandler(next)
}

// accessLog writes one line per request. Streams are logged when they close.
func (a *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http")
	})
}

// actionLimiter limits action posts per client IP when ActionRate is set.
func (a *App) actionLimiter() []func(http.Handler) http.Handler {
	if a.cfg.ActionRate == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(a.cfg.ActionRate)
	if err != nil {
		a.log.Error().Err(err).Str("rate", a.cfg.ActionRate).Msg("invalid action rate, limiting disabled")
		return nil
	}
	mw := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))
	return []func(http.Handler) http.Handler{mw.Handler}
}
