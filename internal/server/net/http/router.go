// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - cross-origin политику (CORS);
//   - проверку JWT access-токенов на защищённых маршрутах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/api"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/middleware"
	"github.com/jotvibfeng/development-platforms-ca/internal/shared/logger"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования и CORS для всех запросов;
//   - swagger-документацию на /swagger/*;
//   - публичные эндпоинты /auth/register, /auth/login и GET /articles;
//   - группу защищённых JWT эндпоинтов (POST /articles, PUT /users/{userId}).
func NewRouter(h *api.Handler, log *logger.HTTPLogger, corsCfg config.CORSConfig) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(log))
	// cross-origin политика
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: corsCfg.AllowedMethods,
		AllowedHeaders: corsCfg.AllowedHeaders,
		MaxAge:         corsCfg.MaxAge,
	}))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// Публичные пути
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequiredUserData).Post("/register", h.Register)
		r.With(middleware.ValidateRequiredUserData).Post("/login", h.Login)
	})
	r.Get("/articles", h.ListArticles)
	// защищённые пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())

		r.Post("/articles", h.CreateArticle)
		r.With(middleware.ValidateUserID, middleware.ValidatePartialUserData).
			Put("/users/{userId}", h.UpdateUser)
	})

	return r
}
