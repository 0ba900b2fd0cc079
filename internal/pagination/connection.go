// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package pagination

import (
	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// BuildRecipeConnection assembles a connection envelope from one page of
// recipes. offset is the zero-based position of the first item in the page,
// totalCount the number of items matching the filter.
//
// Page boundary semantics:
//   - HasNextPage:     offset+len(recipes) < totalCount
//   - HasPreviousPage: offset > 0
//   - Start/EndCursor: cursors of the first and last edge, nil when empty
//
// Each edge's cursor encodes that item's absolute position, so resuming
// from EndCursor continues immediately after the last seen item.
func BuildRecipeConnection(recipes []models.Recipe, offset, totalCount int) models.RecipeConnection {
	edges := make([]models.RecipeEdge, len(recipes))
	for i, r := range recipes {
		edges[i] = models.RecipeEdge{
			Cursor: EncodeCursor(offset + i),
			Node:   r,
		}
	}

	pageInfo := models.PageInfo{
		HasNextPage:     offset+len(recipes) < totalCount,
		HasPreviousPage: offset > 0,
	}
	if len(edges) > 0 {
		pageInfo.StartCursor = &edges[0].Cursor
		pageInfo.EndCursor = &edges[len(edges)-1].Cursor
	}

	return models.RecipeConnection{
		Edges:      edges,
		PageInfo:   pageInfo,
		TotalCount: totalCount,
	}
}
