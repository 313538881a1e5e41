package cmd

import (
	"context"
	"fmt"
	"time"

	"divtracker/internal/delivery/http"

	"go.uber.org/zap"
)

type GatewayServer struct {
	ctx     context.Context
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewGatewayServer(ctx context.Context, appDep *AppDependency, handler *http.HttpAPIHandler) *GatewayServer {
	return &GatewayServer{
		ctx:     ctx,
		appDep:  appDep,
		handler: handler,
	}
}

func (s *GatewayServer) Start() error {
	s.appDep.log.Info("Starting gateway", zap.Int("port", s.appDep.cfg.Gateway.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.Gateway.Port)

	s.handler.SetupRoutes()

	return s.appDep.echo.Start(address)
}

func (s *GatewayServer) Stop() error {
	s.appDep.log.Info("Shutting down gateway")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Error("Error when stopping gateway", zap.Error(err))
		return err
	}

	s.appDep.log.Info("Gateway stopped successfully")
	return nil
}
