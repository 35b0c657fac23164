package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/services"
)

// SetupRoutes defines the application's routes and returns the root handler.
func SetupRoutes(db controllers.Pinger, postService *services.PostService, metrics *middleware.Metrics) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)

	// mux skips middleware for unmatched requests, so wrap these by hand.
	router.NotFoundHandler = middleware.Logger(metrics.Middleware(http.HandlerFunc(controllers.NotFound)))
	router.MethodNotAllowedHandler = middleware.Logger(metrics.Middleware(http.HandlerFunc(controllers.MethodNotAllowed)))

	healthController := controllers.NewHealthController(db)
	postController := controllers.NewPostController(postService)

	router.HandleFunc("/", healthController.Live).Methods(http.MethodGet)
	router.HandleFunc("/ping", healthController.Ping).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Posts endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	posts.HandleFunc("", postController.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{id}", postController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", postController.Update).Methods(http.MethodPut)
	posts.HandleFunc("/{id}", postController.Delete).Methods(http.MethodDelete)

	return middleware.CORS(router)
}
