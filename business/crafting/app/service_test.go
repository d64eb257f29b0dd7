package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
)

type stubRecipes struct {
	recipes []domain.Recipe
	err     error
	calls   int
}

func (s *stubRecipes) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	s.calls++
	return s.recipes, s.err
}

type stubSnapshots struct {
	snap  *marketDomain.Snapshot
	err   error
	calls int
}

func (s *stubSnapshots) Snapshot(ctx context.Context) (*marketDomain.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

func TestService_Opportunities(t *testing.T) {
	recipes := &stubRecipes{recipes: []domain.Recipe{stoneAxe()}}
	snaps := &stubSnapshots{snap: stoneAxeMarket().snap}
	svc := NewService(recipes, snaps, newTestEngine(), nil, &mockLogger{})

	res, err := svc.Opportunities(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.RecipeCount)
	require.Len(t, res.Opportunities, 1)
	assert.Equal(t, "Stone Axe", res.Opportunities[0].Variant)
	assert.Same(t, snaps.snap, res.Snapshot)
}

func TestService_OpportunitiesFrom_ReusesSnapshot(t *testing.T) {
	recipes := &stubRecipes{recipes: []domain.Recipe{stoneAxe()}}
	snaps := &stubSnapshots{}
	svc := NewService(recipes, snaps, newTestEngine(), nil, &mockLogger{})

	res, err := svc.OpportunitiesFrom(context.Background(), stoneAxeMarket().snap)

	require.NoError(t, err)
	assert.Len(t, res.Opportunities, 1)
	assert.Equal(t, 0, snaps.calls)
	assert.Equal(t, 1, recipes.calls)
}

func TestService_Errors(t *testing.T) {
	fetchErr := errors.New("connection refused")

	t.Run("snapshot failure skips recipes", func(t *testing.T) {
		recipes := &stubRecipes{recipes: []domain.Recipe{stoneAxe()}}
		svc := NewService(recipes, &stubSnapshots{err: fetchErr}, newTestEngine(), nil, &mockLogger{})

		_, err := svc.Opportunities(context.Background())

		assert.ErrorIs(t, err, fetchErr)
		assert.Equal(t, 0, recipes.calls)
	})

	t.Run("recipe failure", func(t *testing.T) {
		svc := NewService(&stubRecipes{err: fetchErr}, &stubSnapshots{snap: stoneAxeMarket().snap}, newTestEngine(), nil, &mockLogger{})

		_, err := svc.Professions(context.Background())
		assert.ErrorIs(t, err, fetchErr)

		_, err = svc.OpportunitiesFrom(context.Background(), stoneAxeMarket().snap)
		assert.ErrorIs(t, err, fetchErr)
	})
}
