package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeAverageCategoryRating(t *testing.T) {
	review := Review{
		ReviewCategories: []ReviewCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 9},
			{Category: "location", Rating: 7},
		},
	}

	review.RecomputeAverageCategoryRating()

	assert.Equal(t, 8.67, review.AverageCategoryRating)
}

func TestRecomputeAverageCategoryRating_NoCategories(t *testing.T) {
	review := Review{AverageCategoryRating: 5.5}

	review.RecomputeAverageCategoryRating()

	assert.Zero(t, review.AverageCategoryRating)
}

func TestSetApproved_Transitions(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	review := Review{}

	review.SetApproved(true, "manager-1", now)

	assert.True(t, review.IsApproved)
	assert.Equal(t, "manager-1", *review.ApprovedBy)
	assert.Equal(t, now, *review.ApprovedAt)

	review.SetApproved(false, "", now.Add(time.Hour))

	assert.False(t, review.IsApproved)
	assert.Nil(t, review.ApprovedBy)
	assert.Nil(t, review.ApprovedAt)

	later := now.Add(2 * time.Hour)
	review.SetApproved(true, "", later)

	assert.True(t, review.IsApproved)
	assert.Equal(t, DefaultApprovedBy, *review.ApprovedBy)
	assert.Equal(t, later, *review.ApprovedAt)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.67, Round2(8.666666))
	assert.Equal(t, 8.66, Round2(8.664))
	assert.Equal(t, 10.0, Round2(10))
	assert.Equal(t, 0.0, Round2(0))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPagination_SinglePage(t *testing.T) {
	p := NewPagination(1, 20, 5)

	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPagination_Empty(t *testing.T) {
	p := NewPagination(1, 20, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPagination_LastPage(t *testing.T) {
	p := NewPagination(3, 20, 45)

	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
