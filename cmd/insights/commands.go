package main

import (
	"fmt"
	"strings"

	"retro-board-be/internal/bootstrap"
	"retro-board-be/internal/config"
	"retro-board-be/internal/dto"
	"retro-board-be/internal/entity"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func parseRetrospectiveID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid retrospective id %q: %w", raw, err)
	}
	return id, nil
}

func parseCategory(raw string) (entity.Category, error) {
	category := entity.Category(strings.ToLower(strings.TrimSpace(raw)))
	if !category.Valid() {
		return "", fmt.Errorf("invalid category %q (want one of %v)", raw, entity.Categories)
	}
	return category, nil
}

func runCluster(cmd *cobra.Command, args []string) error {
	return clusterCommand(cmd, false)
}

func runApplyClusters(cmd *cobra.Command, args []string) error {
	return clusterCommand(cmd, true)
}

func clusterCommand(cmd *cobra.Command, apply bool) error {
	retroId, err := parseRetrospectiveID(retroFlag)
	if err != nil {
		return err
	}
	category, err := parseCategory(categoryFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	return withContainer(ctx, func(_ *config.Config, c *bootstrap.Container) error {
		var (
			res *dto.ClusterItemsResponse
			err error
		)
		if apply {
			res, err = c.ClusteringService.ApplyClusters(ctx, retroId, category)
		} else {
			res, err = c.ClusteringService.ClusterItems(ctx, retroId, category)
		}
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printClusters(cmd.OutOrStdout(), res)
		return nil
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	retroId, err := parseRetrospectiveID(retroFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	return withContainer(ctx, func(_ *config.Config, c *bootstrap.Container) error {
		res, err := c.ActionItemService.GenerateActionItems(ctx, &dto.GenerateActionItemsRequest{
			RetrospectiveId: retroId,
			Host:            hostFlag,
			Model:           modelFlag,
		})
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printActionItems(cmd.OutOrStdout(), res)
		return nil
	})
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withContainer(ctx, func(cfg *config.Config, c *bootstrap.Container) error {
		email := emailFlag
		if email == "" {
			email = cfg.Insight.ServiceEmail
		}
		res, err := c.DirectoryService.EnsureServiceUser(ctx, &dto.EnsureServiceUserRequest{
			Username: usernameFlag,
			Email:    email,
			Force:    forceFlag,
		})
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printServiceUser(cmd.OutOrStdout(), res)
		return nil
	})
}

func runWarmup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withContainer(ctx, func(_ *config.Config, c *bootstrap.Container) error {
		if err := c.Encoder.Warmup(ctx); err != nil {
			return err
		}
		okColor.Fprintf(cmd.OutOrStdout(), "Embedding model %s ready (dimension %d)\n", c.Encoder.Model(), c.Encoder.Dimension())
		return nil
	})
}
