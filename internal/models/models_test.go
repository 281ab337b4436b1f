// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package models

import "testing"

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		startIndex int
		pageSize   int
		want       PaginationMeta
	}{
		{
			"middle page",
			25, 10, 10,
			PaginationMeta{CurrentPage: 2, TotalPages: 3, TotalItems: 25, PageSize: 10, HasNextPage: true, HasPrevPage: true},
		},
		{
			"first page",
			25, 0, 10,
			PaginationMeta{CurrentPage: 1, TotalPages: 3, TotalItems: 25, PageSize: 10, HasNextPage: true, HasPrevPage: false},
		},
		{
			"last page",
			25, 20, 10,
			PaginationMeta{CurrentPage: 3, TotalPages: 3, TotalItems: 25, PageSize: 10, HasNextPage: false, HasPrevPage: true},
		},
		{
			"empty result",
			0, 0, 10,
			PaginationMeta{CurrentPage: 1, TotalPages: 0, TotalItems: 0, PageSize: 10, HasNextPage: false, HasPrevPage: false},
		},
		{
			"single full page",
			10, 0, 10,
			PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 10, PageSize: 10, HasNextPage: false, HasPrevPage: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPaginationMeta(tt.totalItems, tt.startIndex, tt.pageSize); got != tt.want {
				t.Errorf("NewPaginationMeta = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPaginationMetaClampsPageSize(t *testing.T) {
	got := NewPaginationMeta(5, 0, 0)

	if got.PageSize != 1 || got.TotalPages != 5 {
		t.Errorf("PaginationMeta = %+v, want page size clamped to 1", got)
	}
}
