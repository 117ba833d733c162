package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kube-rca/taskboard/internal/logging"
)

type RouterDeps struct {
	Log            logging.Logger
	Tokens         tokenVerifier
	Auth           authService
	Tasks          taskService
	AllowedOrigins []string
}

// NewRouter builds the engine. Middleware runs in the order listed; the
// protected groups add AuthMiddleware last, right before the handler.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		Recovery(deps.Log),
		RequestLogger(deps.Log),
		CORSMiddleware(deps.AllowedOrigins, false),
	)

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)

	requireAuth := AuthMiddleware(deps.Tokens)
	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	taskHandler := NewTaskHandler(deps.Tasks, deps.Log)

	users := r.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	protectedUsers := users.Group("", requireAuth)
	protectedUsers.GET("/get_user", authHandler.ListUsers)
	protectedUsers.GET("/me", authHandler.Me)

	tasks := r.Group("/tasks", requireAuth)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/:task_id", taskHandler.GetTask)
	tasks.PUT("/:task_id", taskHandler.UpdateTask)
	tasks.DELETE("/:task_id", taskHandler.DeleteTask)

	return r
}
