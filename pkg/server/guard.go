package server

import (
	"fmt"

	"github.com/NeuralTrust/TrustGuard/pkg/config"
	"github.com/NeuralTrust/TrustGuard/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	GuardServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// GuardServer answers rate limit checks for other services.
	GuardServer struct {
		*BaseServer
	}
)

func NewGuardServer(di GuardServerDI) *GuardServer {
	return &GuardServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
}

func (s *GuardServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.GuardPort)
	s.Logger.WithField("addr", addr).Info("starting guard server")
	return s.Router.Listen(addr)
}
