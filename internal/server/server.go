package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"course-upgrade-service/internal/handler"
	"course-upgrade-service/internal/middleware"
	"course-upgrade-service/internal/ws"
)

type Server struct {
	echo           *echo.Echo
	upgradeHandler *handler.UpgradeHandler
	hub            *ws.Hub
}

func NewServer(upgradeHandler *handler.UpgradeHandler, hub *ws.Hub) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		upgradeHandler: upgradeHandler,
		hub:            hub,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", middleware.AuthMiddleware())

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- course upgrade --------
	up := api.Group("/upgrade")
	up.POST("/context", s.upgradeHandler.SetContext)
	up.POST("/events", s.upgradeHandler.PostState)
	up.GET("/record", s.upgradeHandler.GetRecord)
	up.POST("/alerts/actions", s.upgradeHandler.PostAlertAction)

	// -------- presentation channel --------
	api.GET("/ws", s.hub.ServeWS)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
