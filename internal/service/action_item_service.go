package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retro-board-be/internal/dto"
	"retro-board-be/internal/entity"
	"retro-board-be/internal/mapper"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/repository/specification"
	"retro-board-be/internal/repository/unitofwork"
	"retro-board-be/pkg/events"
	"retro-board-be/pkg/insight/candidate"
	"retro-board-be/pkg/insight/layout"
	"retro-board-be/pkg/insight/prompt"
	"retro-board-be/pkg/llm"
	"retro-board-be/pkg/lock"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultGenerationLockTTL = 5 * time.Minute

type IActionItemService interface {
	GenerateActionItems(ctx context.Context, req *dto.GenerateActionItemsRequest) (*dto.GenerateActionItemsResponse, error)
	// Materialize persists a validated batch as action notes, all or nothing.
	Materialize(ctx context.Context, retrospectiveId uuid.UUID, batch candidate.Batch) ([]*entity.RetrospectiveItem, error)
}

type actionItemService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	directory   IDirectoryService
	layout      layout.Strategy
	locker      lock.Locker
	lockTTL     time.Duration
	publisher   events.Publisher
	logger      logger.ILogger
}

func NewActionItemService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	directory IDirectoryService,
	layoutStrategy layout.Strategy,
	locker lock.Locker,
	lockTTL time.Duration,
	publisher events.Publisher,
	logger logger.ILogger,
) IActionItemService {
	if layoutStrategy == nil {
		layoutStrategy = layout.NewRow()
	}
	if lockTTL <= 0 {
		lockTTL = DefaultGenerationLockTTL
	}
	return &actionItemService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		directory:   directory,
		layout:      layoutStrategy,
		locker:      locker,
		lockTTL:     lockTTL,
		publisher:   publisher,
		logger:      logger,
	}
}

func generationLockKey(retrospectiveId uuid.UUID) string {
	return "retro:" + retrospectiveId.String() + ":generate"
}

func (s *actionItemService) GenerateActionItems(ctx context.Context, req *dto.GenerateActionItemsRequest) (res *dto.GenerateActionItemsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ActionItemService.GenerateActionItems")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("retrospective.id", req.RetrospectiveId.String()))

	if s.locker != nil {
		lease, err := s.locker.Acquire(ctx, generationLockKey(req.RetrospectiveId), s.lockTTL)
		if err != nil {
			if errors.Is(err, lock.ErrLockHeld) {
				return nil, fmt.Errorf("%w: retrospective %s", ErrGenerationInProgress, req.RetrospectiveId)
			}
			return nil, fmt.Errorf("acquire generation lock: %w", err)
		}
		defer func() {
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("ActionItemService", "Failed to release generation lock", map[string]interface{}{
					"retrospective_id": req.RetrospectiveId.String(),
					"error":            err.Error(),
				})
			}
		}()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	retro, err := uow.RetrospectiveRepository().FindOne(ctx, specification.ByID{ID: req.RetrospectiveId})
	if err != nil {
		return nil, fmt.Errorf("fetch retrospective: %w", err)
	}
	if retro == nil {
		return nil, fmt.Errorf("%w: retrospective %s", ErrScopeNotFound, req.RetrospectiveId)
	}

	items, err := uow.RetrospectiveItemRepository().FindAll(ctx,
		specification.ByRetrospectiveID{RetrospectiveID: req.RetrospectiveId},
		specification.StableOrder{},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	res = &dto.GenerateActionItemsResponse{
		RetrospectiveId: req.RetrospectiveId,
		SourceItemCount: len(items),
		Items:           []dto.RetrospectiveItemResponse{},
	}
	if len(items) == 0 {
		s.logger.Info("ActionItemService", "Retrospective has no items, skipping generation", map[string]interface{}{
			"retrospective_id": req.RetrospectiveId.String(),
		})
		return res, nil
	}

	notes := make([]prompt.Note, len(items))
	for i, item := range items {
		notes[i] = prompt.Note{Category: string(item.Category), Content: item.Content}
	}

	opts := []llm.Option{llm.WithFormat(candidate.Schema)}
	if req.Host != "" {
		opts = append(opts, llm.WithHost(req.Host))
	}
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}

	start := time.Now()
	chatResp, err := s.llmProvider.Chat(ctx, prompt.NewBuilder(notes).Build(), opts...)
	if err != nil {
		s.logger.Error("ActionItemService", "Generation endpoint call failed", map[string]interface{}{
			"retrospective_id": req.RetrospectiveId.String(),
			"host":             req.Host,
			"model":            req.Model,
			"error":            err,
		})
		return nil, fmt.Errorf("generate action items: %w", err)
	}

	batch, err := candidate.Parse(chatResp.Content)
	if err != nil {
		s.logger.Error("ActionItemService", "Generation output rejected", map[string]interface{}{
			"retrospective_id": req.RetrospectiveId.String(),
			"raw":              chatResp.Content,
			"error":            err,
		})
		return nil, err
	}

	created, err := s.Materialize(ctx, req.RetrospectiveId, batch)
	if err != nil {
		return nil, err
	}
	res.Items = mapper.ToRetrospectiveItemResponses(created)

	publishEvent(ctx, s.publisher, s.logger, "ActionItemService", events.BaseEvent{
		Type: events.TypeActionItemsGenerated,
		Data: map[string]interface{}{
			"retrospective_id": req.RetrospectiveId.String(),
			"item_count":       len(created),
			"model":            chatResp.Model,
		},
		OccurredAt: time.Now(),
	})

	s.logger.Info("ActionItemService", "Action items generated", map[string]interface{}{
		"retrospective_id": req.RetrospectiveId.String(),
		"source_items":     len(items),
		"generated":        len(created),
		"duration_ms":      time.Since(start).Milliseconds(),
	})

	return res, nil
}

func (s *actionItemService) Materialize(ctx context.Context, retrospectiveId uuid.UUID, batch candidate.Batch) ([]*entity.RetrospectiveItem, error) {
	if len(batch) == 0 {
		return []*entity.RetrospectiveItem{}, nil
	}

	authorId := s.resolveAuthor(ctx)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	created := make([]*entity.RetrospectiveItem, 0, len(batch))
	for i, c := range batch {
		item := &entity.RetrospectiveItem{
			RetrospectiveId: retrospectiveId,
			Category:        entity.CategoryActions,
			Content:         c.Content,
			AuthorId:        authorId,
			Position:        s.layout.Place(i),
		}
		if err := uow.RetrospectiveItemRepository().Create(ctx, item); err != nil {
			s.logger.Error("ActionItemService", "Failed to persist action item", map[string]interface{}{
				"retrospective_id": retrospectiveId.String(),
				"index":            i,
				"error":            err,
			})
			return nil, &MaterializationError{Index: i, Err: err}
		}
		created = append(created, item)
	}

	if err := uow.Commit(); err != nil {
		return nil, &MaterializationError{Index: len(batch) - 1, Err: err}
	}

	return created, nil
}

// resolveAuthor returns nil when the service user is missing or cannot be looked up.
func (s *actionItemService) resolveAuthor(ctx context.Context) *uuid.UUID {
	if s.directory == nil {
		return nil
	}
	user, err := s.directory.ResolveServiceUser(ctx)
	if err != nil {
		s.logger.Warn("ActionItemService", "Service user lookup failed, creating items without author", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if user == nil {
		s.logger.Warn("ActionItemService", "Service user not found, creating items without author", nil)
		return nil
	}
	id := user.Id
	return &id
}
