package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"retro-board-be/internal/dto"
	"retro-board-be/internal/service"
	"retro-board-be/pkg/cluster"
	"retro-board-be/pkg/insight/candidate"
	"retro-board-be/pkg/llm"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed, color.Bold)
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printClusters(w io.Writer, res *dto.ClusterItemsResponse) {
	headerColor.Fprintf(w, "Retrospective %s / %s: %d notes in %d clusters\n",
		res.RetrospectiveId, res.Category, len(res.Items), res.ClusterCount)

	for _, group := range cluster.Partition(res.Labels) {
		label := res.Labels[group[0]]
		if label == cluster.Noise {
			warnColor.Fprintln(w, "noise")
		} else {
			okColor.Fprintf(w, "cluster %d\n", label)
		}
		for _, i := range group {
			fmt.Fprintf(w, "  - %s\n", res.Items[i].Content)
		}
	}

	if res.Applied {
		okColor.Fprintln(w, "Labels stored.")
	}
}

func printActionItems(w io.Writer, res *dto.GenerateActionItemsResponse) {
	switch {
	case res.SourceItemCount == 0:
		warnColor.Fprintf(w, "Retrospective %s has no notes, nothing generated.\n", res.RetrospectiveId)
		return
	case len(res.Items) == 0:
		warnColor.Fprintf(w, "The model proposed no action items from %d notes in retrospective %s.\n", res.SourceItemCount, res.RetrospectiveId)
		return
	}

	headerColor.Fprintf(w, "Generated %d action items for retrospective %s\n", len(res.Items), res.RetrospectiveId)
	for _, item := range res.Items {
		fmt.Fprintf(w, "  [%4d,%4d] %s\n", item.XMinimized, item.YMinimized, item.Content)
	}
}

func printServiceUser(w io.Writer, res *dto.EnsureServiceUserResponse) {
	switch {
	case res.Replaced:
		okColor.Fprintf(w, "Recreated service user %s (%s)\n", res.Username, res.Id)
	case res.Created:
		okColor.Fprintf(w, "Created service user %s (%s)\n", res.Username, res.Id)
	default:
		warnColor.Fprintf(w, "Service user %s already exists (%s), use --force to recreate\n", res.Username, res.Id)
	}
}

// printError adds a hint for the failures an operator can act on.
func printError(w io.Writer, err error) {
	errColor.Fprintf(w, "Error: %v\n", err)

	var invalid *candidate.InvalidOutputError
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		fmt.Fprintln(w, "Check that the generation endpoint is running (OLLAMA_HOST or --host).")
	case errors.As(err, &invalid):
		fmt.Fprintf(w, "Model output was:\n%s\n", invalid.Raw)
	case errors.Is(err, service.ErrGenerationInProgress):
		fmt.Fprintln(w, "Another generation for this retrospective is running, try again later.")
	case errors.Is(err, service.ErrScopeNotFound):
		fmt.Fprintln(w, "Nothing matched the given retrospective and category.")
	}
}
