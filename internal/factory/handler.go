package factory

import (
	"net/http"

	"github.com/mcoot/blogadmin/internal/api"
	"github.com/mcoot/blogadmin/internal/web"
)

// Handler combines the API, web and metrics routes into one handler
func (a *App) Handler() http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:           a.Logger,
		Metrics:          a.Metrics,
		Clock:            a.Clock,
		AuthService:      a.AuthService,
		AnalyticsService: a.AnalyticsService,
		Categories:       a.Storage,
		Cookies:          a.Cookies,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           a.Logger,
		Metrics:          a.Metrics,
		Clock:            a.Clock,
		AuthService:      a.AuthService,
		AnalyticsService: a.AnalyticsService,
		Cookies:          a.Cookies,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", a.Metrics.Handler())
	mux.Handle("/", webRouter)
	return mux
}
