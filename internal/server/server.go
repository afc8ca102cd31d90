package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskdesk/internal/config"
	"taskdesk/internal/controller"
	"taskdesk/internal/gate"
	"taskdesk/internal/handler"
	"taskdesk/internal/middleware"
	"taskdesk/internal/notify"
)

const notificationLimit = 50

type Server struct {
	Engine *gin.Engine
	App    *App
	Config *config.Config

	unwatch []func()
}

func Init(ctx context.Context, cfg *config.Config) (*Server, error) {
	app, err := NewApp(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Restore the session in the background; guarded routes answer
	// "resolving" until it is done.
	go func() {
		if err := app.Session.Initialize(context.Background()); err != nil {
			log.Err(err).Msg("error restoring session")
		}
	}()

	app.Busy.OnChange(func(busy bool) {
		log.Debug().Bool("busy", busy).Msg("busy state changed")
	})

	s := &Server{
		Engine: NewEngine(app, notify.NewInbox(notificationLimit)),
		App:    app,
		Config: cfg,
	}
	for _, d := range gate.Routes {
		path := d.Path
		s.unwatch = append(s.unwatch, gate.Watch(app.Session, d, func(dec gate.Decision) {
			log.Debug().Str("route", path).Str("state", string(dec.State)).Str("redirect", dec.Redirect).Msg("route access changed")
		}))
	}
	return s, nil
}

// NewEngine builds the route surface on top of app.
func NewEngine(app *App, inbox *notify.Inbox) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	svc := app.Client
	reports := controller.NewReports(svc, inbox)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(controller.NewAuth(svc, app.Session, app.Busy), inbox)
	statusHandler := handler.NewStatusHandler(app.Session, app.Busy)
	adminTasks := handler.NewTaskHandler(controller.NewTaskList(svc, app.Busy, inbox), reports, inbox)
	memberTasks := handler.NewTaskHandler(controller.NewTaskList(svc, app.Busy, inbox), reports, inbox)
	editorHandler := handler.NewEditorHandler(controller.NewEditor(svc, app.Busy, inbox), inbox)
	userHandler := handler.NewUserHandler(controller.NewUsers(svc, app.Busy, inbox), reports, inbox)
	detailsHandler := handler.NewDetailsHandler(controller.NewTaskDetails(svc, app.Busy, inbox), inbox)
	adminDashboard := handler.NewDashboardHandler(controller.NewDashboard(svc, app.Busy, inbox), inbox)
	memberDashboard := handler.NewDashboardHandler(controller.NewDashboard(svc, app.Busy, inbox), inbox)

	guard := func(path string) gin.HandlerFunc {
		return middleware.GuardRoute(app.Session, path)
	}

	// Public routes
	r.GET(gate.PathRoot, middleware.RootRedirect(app.Session))
	r.POST(gate.PathLogin, authHandler.Login)
	r.POST(gate.PathSignup, authHandler.Signup)
	r.POST("/logout", authHandler.Logout)
	r.GET(gate.PathUnauthorized, authHandler.Unauthorized)
	r.GET("/status", statusHandler.Status)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Admin routes
	r.GET(gate.PathAdminDashboard, guard(gate.PathAdminDashboard), adminDashboard.Show)
	r.GET(gate.PathAdminTasks, guard(gate.PathAdminTasks), adminTasks.List)
	r.GET(gate.PathAdminTasks+"/report", guard(gate.PathAdminTasks), adminTasks.Report)
	r.GET(gate.PathAdminCreateTask, guard(gate.PathAdminCreateTask), editorHandler.Open)
	r.POST(gate.PathAdminCreateTask, guard(gate.PathAdminCreateTask), editorHandler.Submit)
	r.DELETE(gate.PathAdminCreateTask, guard(gate.PathAdminCreateTask), editorHandler.Delete)
	r.GET(gate.PathAdminUsers, guard(gate.PathAdminUsers), userHandler.List)
	r.GET(gate.PathAdminUsers+"/report", guard(gate.PathAdminUsers), userHandler.Report)

	// Member routes
	r.GET(gate.PathUserDashboard, guard(gate.PathUserDashboard), memberDashboard.Show)
	r.GET(gate.PathUserTasks, guard(gate.PathUserTasks), memberTasks.List)
	r.GET(gate.PathUserTaskDetails, guard(gate.PathUserTaskDetails), detailsHandler.Get)
	r.POST(gate.PathUserTaskDetails+"/todo/:index", guard(gate.PathUserTaskDetails), detailsHandler.Toggle)

	return r
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", s.Config.ServerPort).Str("api", s.Config.APIBaseURL).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen: %w", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	for _, stop := range s.unwatch {
		stop()
	}
	if err := s.App.Close(); err != nil {
		log.Err(err).Msg("error closing credential store")
	}

	log.Info().Msg("server exited properly")
	return nil
}
