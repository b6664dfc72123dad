package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"redsocial/cmd/app"
	"redsocial/internal/config"
	handlers "redsocial/internal/handler"
	"redsocial/internal/middleware"
	"redsocial/internal/realtime"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		logrus.Fatal("JWT_SECRET_KEY is not set")
	}

	db, _, services, hub := app.App(cfg)
	defer db.CloseDB()

	go hub.Run()

	handler := handlers.NewHandlers(services, db, cfg)

	// setting up routes
	router := mux.NewRouter()
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, w, r)
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/{username}", handler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile/{username}", handler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile/{username}", handler.UpdateProfile).Methods(http.MethodPut)

	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/comment", handler.CreateComment).Methods(http.MethodPost)

	// everything else is the single-page app
	router.PathPrefix("/").Handler(handlers.NewSPAHandler(cfg.StaticDir))

	// CORS sits outside auth so token rejections still carry CORS headers
	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CacheControlMiddleware,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logrus.WithField("addr", addr).Info("server listening")

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
