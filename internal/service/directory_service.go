package service

import (
	"context"
	"fmt"

	"retro-board-be/internal/dto"
	"retro-board-be/internal/entity"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/repository/memory"
	"retro-board-be/internal/repository/specification"
	"retro-board-be/internal/repository/unitofwork"
)

const (
	DefaultServiceUsername = "gen_ai_serviceuser"
	DefaultServiceEmail    = "genai@retrospectives.local"
	ServiceFullName        = "GenAI Service"
	ServiceRole            = "service"
)

type IDirectoryService interface {
	// ResolveServiceUser returns the synthetic author of generated notes, or nil when it does not exist.
	ResolveServiceUser(ctx context.Context) (*entity.User, error)
	EnsureServiceUser(ctx context.Context, req *dto.EnsureServiceUserRequest) (*dto.EnsureServiceUserResponse, error)
}

type directoryService struct {
	uowFactory      unitofwork.RepositoryFactory
	cache           *memory.IdentityCache
	serviceUsername string
	logger          logger.ILogger
}

func NewDirectoryService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.IdentityCache,
	serviceUsername string,
	logger logger.ILogger,
) IDirectoryService {
	if serviceUsername == "" {
		serviceUsername = DefaultServiceUsername
	}
	return &directoryService{
		uowFactory:      uowFactory,
		cache:           cache,
		serviceUsername: serviceUsername,
		logger:          logger,
	}
}

func (s *directoryService) ResolveServiceUser(ctx context.Context) (*entity.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(s.serviceUsername); ok {
			return user, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: s.serviceUsername})
	if err != nil {
		return nil, fmt.Errorf("lookup service user %s: %w", s.serviceUsername, err)
	}
	if user == nil {
		// misses are not cached so a newly created user is picked up right away
		return nil, nil
	}

	if s.cache != nil {
		s.cache.Save(user)
	}
	return user, nil
}

func (s *directoryService) EnsureServiceUser(ctx context.Context, req *dto.EnsureServiceUserRequest) (*dto.EnsureServiceUserResponse, error) {
	username := req.Username
	if username == "" {
		username = s.serviceUsername
	}
	email := req.Email
	if email == "" {
		email = DefaultServiceEmail
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}

	replaced := false
	if existing != nil {
		if !req.Force {
			return &dto.EnsureServiceUserResponse{
				Id:       existing.Id,
				Username: existing.Username,
				Email:    existing.Email,
			}, nil
		}
		if err := uow.UserRepository().Delete(ctx, existing.Id); err != nil {
			return nil, fmt.Errorf("delete service user: %w", err)
		}
		replaced = true
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		FullName: ServiceFullName,
		Role:     ServiceRole,
		IsActive: true,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create service user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Delete(username)
	}

	s.logger.Info("DirectoryService", "Service user created", map[string]interface{}{
		"username": username,
		"user_id":  user.Id.String(),
		"replaced": replaced,
	})

	return &dto.EnsureServiceUserResponse{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
		Created:  true,
		Replaced: replaced,
	}, nil
}
