package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/catalog"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

func TestSeeder_SeedOrchestrations(t *testing.T) {
	dao := NewTemplateDAO(testDB(t))
	seeder := NewSeeder(dao, nil)
	ctx := context.Background()

	// First run on an empty store seeds the full catalog.
	result, err := seeder.SeedOrchestrations(ctx)
	require.NoError(t, err)
	assert.False(t, result.AlreadySeeded)
	assert.Equal(t, catalog.TotalSeedTemplates, result.TotalSeeded)

	count, err := dao.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, count)

	// Second run is a no-op.
	result, err = seeder.SeedOrchestrations(ctx)
	require.NoError(t, err)
	assert.True(t, result.AlreadySeeded)
	assert.Zero(t, result.TotalSeeded)

	count, err = dao.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, count)
}

func TestTemplateDAO_ListFilters(t *testing.T) {
	dao := NewTemplateDAO(testDB(t))
	seeder := NewSeeder(dao, nil)
	ctx := context.Background()

	_, err := seeder.SeedOrchestrations(ctx)
	require.NoError(t, err)

	enterprise, err := dao.List(ctx, TemplateFilter{Tier: types.TierEnterprise})
	require.NoError(t, err)
	assert.Len(t, enterprise, 30)
	for _, tpl := range enterprise {
		assert.Equal(t, types.TierEnterprise, tpl.Tier)
	}

	consensus, err := dao.List(ctx, TemplateFilter{
		Tier:    types.TierEnterprise,
		Pattern: catalog.PatternConsensus,
	})
	require.NoError(t, err)
	assert.Len(t, consensus, 10)
	for _, tpl := range consensus {
		assert.GreaterOrEqual(t, tpl.ConsensusThreshold, 0.80)
		require.NotEmpty(t, tpl.ConsensusAgents)
		assert.NotEmpty(t, tpl.Question)
	}

	active, err := dao.List(ctx, TemplateFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 120)
}

func TestTemplateDAO_RoundTripPayload(t *testing.T) {
	dao := NewTemplateDAO(testDB(t))
	seeder := NewSeeder(dao, nil)
	ctx := context.Background()

	_, err := seeder.SeedOrchestrations(ctx)
	require.NoError(t, err)

	chains, err := dao.List(ctx, TemplateFilter{Pattern: catalog.PatternChain})
	require.NoError(t, err)
	require.NotEmpty(t, chains)

	for _, tpl := range chains {
		require.NoError(t, tpl.Validate())
		assert.NotEmpty(t, tpl.InitialInput)
		require.Len(t, tpl.Chain, 3)
		assert.Equal(t, "summary", tpl.Chain[1].InputTransform)
		assert.Equal(t, "action", tpl.Chain[2].InputTransform)
	}
}

func TestMigrator_Idempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Schema is already initialized by testDB; a second run must not fail.
	require.NoError(t, db.InitSchema(ctx))

	version, err := NewMigrator(db).CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}
