package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(base(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(base(next))))
		}
	)

	mux.Handle("POST /api/plans/generate", session(http.HandlerFunc(app.planGeneratePOST)))
	mux.Handle("GET /api/plans/favorites", session(http.HandlerFunc(app.planFavoritesGET)))
	mux.Handle("GET /api/plans/{id}", session(http.HandlerFunc(app.planGET)))
	mux.Handle("POST /api/plans/{id}/favorite", session(http.HandlerFunc(app.planFavoritePOST)))
	mux.Handle("DELETE /api/plans/{id}/favorite", session(http.HandlerFunc(app.planFavoriteDELETE)))
	mux.Handle("POST /api/plans/{id}/exercises/{exercise}/complete",
		session(http.HandlerFunc(app.exerciseCompletePOST)))
	mux.Handle("POST /api/plans/{id}/rating", session(http.HandlerFunc(app.planRatingPOST)))

	mux.Handle("GET /api/recommendations", session(http.HandlerFunc(app.recommendationsGET)))
	mux.Handle("GET /api/difficulty", session(http.HandlerFunc(app.difficultyGET)))
	mux.Handle("GET /api/stats", session(http.HandlerFunc(app.statsGET)))

	mux.Handle("GET /api/profile", session(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profile", session(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/exercises/{name}/instructions", session(http.HandlerFunc(app.exerciseInstructionsGET)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))

	return mux
}
