package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainFetcher serves pages keyed by the token that requests them.
func chainFetcher(pages map[string]Page[int], calls *[]string) PageFetcher[int] {
	return func(_ context.Context, token string) (Page[int], error) {
		*calls = append(*calls, token)
		p, ok := pages[token]
		if !ok {
			return Page[int]{}, errors.New("unknown token " + token)
		}
		return p, nil
	}
}

var threePages = map[string]Page[int]{
	"":   {Items: []int{1, 2}, NextToken: "t2"},
	"t2": {Items: []int{3, 4}, NextToken: "t3"},
	"t3": {Items: []int{5}},
}

func TestPager_FollowsTokensInOrder(t *testing.T) {
	var calls []string
	p := NewPager(chainFetcher(threePages, &calls), "")

	var got []int
	for !p.Done() {
		items, err := p.Next(context.Background())
		require.NoError(t, err)
		got = append(got, items...)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.Equal(t, []string{"", "t2", "t3"}, calls)
	assert.Equal(t, 3, p.Pages())
	assert.Empty(t, p.Cursor())
}

func TestPager_IsNotRestartable(t *testing.T) {
	var calls []string
	p := NewPager(chainFetcher(map[string]Page[int]{"": {Items: []int{1}}}, &calls), "")

	_, err := p.Next(context.Background())
	require.NoError(t, err)
	require.True(t, p.Done())

	_, err = p.Next(context.Background())
	assert.ErrorIs(t, err, ErrPagerExhausted)
	assert.Len(t, calls, 1)
}

func TestPager_FailedFetchKeepsCursor(t *testing.T) {
	fail := true
	p := NewPager(func(_ context.Context, token string) (Page[int], error) {
		if token == "t2" && fail {
			fail = false
			return Page[int]{}, ErrRemoteUnavailable
		}
		return threePages[token], nil
	}, "")

	_, err := p.Next(context.Background())
	require.NoError(t, err)

	_, err = p.Next(context.Background())
	require.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Equal(t, "t2", p.Cursor())
	assert.False(t, p.Done())

	items, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, items)
}

func TestPager_ResumesFromCursor(t *testing.T) {
	var calls []string
	p := NewPager(chainFetcher(threePages, &calls), "t3")

	items, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{5}, items)
	assert.Equal(t, []string{"t3"}, calls)
}

func TestPager_All(t *testing.T) {
	var calls []string
	p := NewPager(chainFetcher(threePages, &calls), "")

	var got []int
	for item, err := range p.All(context.Background()) {
		require.NoError(t, err)
		got = append(got, item)
		if item == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, "t3", p.Cursor())
}

func TestPager_AllStopsOnError(t *testing.T) {
	p := NewPager(func(context.Context, string) (Page[int], error) {
		return Page[int]{}, ErrRateLimited
	}, "")

	var errs []error
	for _, err := range p.All(context.Background()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrRateLimited)
}
