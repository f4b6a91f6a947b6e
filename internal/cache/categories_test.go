// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/internal/model"
)

func testCounts() model.Paged[model.Category] {
	return model.Paged[model.Category]{
		Content: []model.Category{
			{Name: "Go", Count: 12},
			{Name: "Databases", Count: 4},
		},
		Page:       0,
		Size:       20,
		TotalPages: 1,
		TotalItems: 2,
	}
}

func TestCategoriesRoundTrip(t *testing.T) {
	c := NewCategories(Config{TTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	if _, ok := c.Get(ctx, 0, 20, ""); ok {
		t.Fatal("Get hit before Put")
	}

	c.Put(ctx, 0, 20, "", testCounts())

	got, ok := c.Get(ctx, 0, 20, "")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if len(got.Content) != 2 || got.Content[0].Name != "Go" || got.Content[0].Count != 12 {
		t.Errorf("Get = %+v, want cached counts", got.Content)
	}
}

func TestCategoriesKeyedBySearchAndPage(t *testing.T) {
	c := NewCategories(Config{TTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	c.Put(ctx, 0, 20, "", testCounts())

	if _, ok := c.Get(ctx, 1, 20, ""); ok {
		t.Error("different page hit the same entry")
	}
	if _, ok := c.Get(ctx, 0, 20, "go"); ok {
		t.Error("different search hit the same entry")
	}
}

func TestCategoriesInvalidate(t *testing.T) {
	c := NewCategories(Config{TTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	c.Put(ctx, 0, 20, "", testCounts())
	c.Put(ctx, 1, 20, "", testCounts())

	c.Invalidate(ctx)

	if _, ok := c.Get(ctx, 0, 20, ""); ok {
		t.Error("page 0 survived Invalidate")
	}
	if _, ok := c.Get(ctx, 1, 20, ""); ok {
		t.Error("page 1 survived Invalidate")
	}
}
