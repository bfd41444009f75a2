package services

import (
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authenticator has no dependencies; the user service verifies passwords through it.
	container.Authenticator = NewAuthenticator(cfg.Token)
	container.User = NewUserService(repos.UserRepo, container.Authenticator)
	container.Auth = NewAuthService(container.User, container.Authenticator)

	return container
}
