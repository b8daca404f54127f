package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/spaceflight-news/internal/user/delivery/http"
	"github.com/tair/spaceflight-news/internal/user/domain"
	"github.com/tair/spaceflight-news/internal/user/repository"
	"github.com/tair/spaceflight-news/internal/user/usecase/command"
	"github.com/tair/spaceflight-news/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Command Handlers Providers
func ProvideRegisterUserHandler(repo domain.UserRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.UserRepository) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo)
}

// Query Handlers Providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// HTTPSet builds the user HTTP handler from a database and a metrics registerer
var HTTPSet = wire.NewSet(
	AllHandlersSet,
	http.NewUserHandlerWithDI,
)
