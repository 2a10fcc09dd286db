package service

import (
	"context"
	"fmt"
	"time"

	"retro-board-be/internal/dto"
	"retro-board-be/internal/entity"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/repository/specification"
	"retro-board-be/internal/repository/unitofwork"
	"retro-board-be/pkg/cluster"
	"retro-board-be/pkg/embedding"
	"retro-board-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type IClusteringService interface {
	// ClusterItems computes labels for one (retrospective, category) scope without writing anything.
	ClusterItems(ctx context.Context, retrospectiveId uuid.UUID, category entity.Category) (*dto.ClusterItemsResponse, error)
	// ApplyClusters computes labels and stores them on the notes in one transaction.
	ApplyClusters(ctx context.Context, retrospectiveId uuid.UUID, category entity.Category) (*dto.ClusterItemsResponse, error)
}

type clusteringService struct {
	uowFactory unitofwork.RepositoryFactory
	encoder    embedding.Encoder
	engine     *cluster.DBSCAN
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewClusteringService(
	uowFactory unitofwork.RepositoryFactory,
	encoder embedding.Encoder,
	engine *cluster.DBSCAN,
	publisher events.Publisher,
	logger logger.ILogger,
) IClusteringService {
	return &clusteringService{
		uowFactory: uowFactory,
		encoder:    encoder,
		engine:     engine,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *clusteringService) ClusterItems(ctx context.Context, retrospectiveId uuid.UUID, category entity.Category) (res *dto.ClusterItemsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ClusteringService.ClusterItems")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("retrospective.id", retrospectiveId.String()),
		attribute.String("retrospective.category", string(category)),
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, res, err = s.compute(ctx, uow, retrospectiveId, category)
	return res, err
}

func (s *clusteringService) ApplyClusters(ctx context.Context, retrospectiveId uuid.UUID, category entity.Category) (res *dto.ClusterItemsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ClusteringService.ApplyClusters")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("retrospective.id", retrospectiveId.String()),
		attribute.String("retrospective.category", string(category)),
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// labels are computed from the locked rows they are written back to
	items, res, err := s.compute(ctx, uow, retrospectiveId, category, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		if err := uow.RetrospectiveItemRepository().UpdateClusterId(ctx, item.Id, res.Labels[i]); err != nil {
			s.logger.Error("ClusteringService", "Failed to store cluster label", map[string]interface{}{
				"item_id": item.Id.String(),
				"error":   err,
			})
			return nil, fmt.Errorf("store cluster label for item %s: %w", item.Id, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	res.Applied = true

	publishEvent(ctx, s.publisher, s.logger, "ClusteringService", events.BaseEvent{
		Type: events.TypeClustersApplied,
		Data: map[string]interface{}{
			"retrospective_id": retrospectiveId.String(),
			"category":         string(category),
			"cluster_count":    res.ClusterCount,
			"item_count":       len(items),
		},
		OccurredAt: time.Now(),
	})

	s.logger.Info("ClusteringService", "Cluster labels applied", map[string]interface{}{
		"retrospective_id": retrospectiveId.String(),
		"category":         string(category),
		"cluster_count":    res.ClusterCount,
		"item_count":       len(items),
	})

	return res, nil
}

func (s *clusteringService) compute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	retrospectiveId uuid.UUID,
	category entity.Category,
	extra ...specification.Specification,
) ([]*entity.RetrospectiveItem, *dto.ClusterItemsResponse, error) {
	if !category.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	specs := append([]specification.Specification{
		specification.ByRetrospectiveID{RetrospectiveID: retrospectiveId},
		specification.ByCategory{Category: category},
		specification.StableOrder{},
	}, extra...)
	items, err := uow.RetrospectiveItemRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: retrospective %s has no %s items", ErrScopeNotFound, retrospectiveId, category)
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Content
	}

	start := time.Now()
	vectors, err := s.encoder.Encode(ctx, texts)
	if err != nil {
		s.logger.Error("ClusteringService", "Failed to encode items", map[string]interface{}{
			"retrospective_id": retrospectiveId.String(),
			"model":            s.encoder.Model(),
			"error":            err,
		})
		return nil, nil, fmt.Errorf("encode items: %w", err)
	}

	labels, err := s.engine.Fit(vectors)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster items: %w", err)
	}

	res := &dto.ClusterItemsResponse{
		RetrospectiveId: retrospectiveId,
		Category:        string(category),
		Labels:          labels,
		Items:           make([]dto.ClusterAssignment, len(items)),
	}
	seen := make(map[int]struct{})
	for i, item := range items {
		res.Items[i] = dto.ClusterAssignment{
			ItemId:    item.Id,
			Content:   item.Content,
			ClusterId: labels[i],
		}
		if labels[i] != cluster.Noise {
			seen[labels[i]] = struct{}{}
		}
	}
	res.ClusterCount = len(seen)

	s.logger.Debug("ClusteringService", "Items clustered", map[string]interface{}{
		"retrospective_id": retrospectiveId.String(),
		"category":         string(category),
		"items":            len(items),
		"clusters":         res.ClusterCount,
		"duration_ms":      time.Since(start).Milliseconds(),
	})

	return items, res, nil
}
