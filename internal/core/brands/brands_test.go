package brands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
	"github.com/thislife/planner/internal/store/sqlite"
)

func newService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	return New(s), s
}

func TestPromoteIdeaLinksBack(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	idea, err := st.Ideas().Create(ctx, &model.Idea{Text: "candle shop", Category: "E-commerce"})
	require.NoError(t, err)

	created, err := svc.PromoteIdea(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "candle shop", created.Name)
	assert.Equal(t, idea.ID, created.SourceIdea)
	assert.Equal(t, 0, created.Order)

	list, err := st.Ideas().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].LinkedBrand)
	assert.Equal(t, created.ID, *list[0].LinkedBrand)
}

func TestPromotePipelineOccupiesSingletonSlot(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	p1, err := st.Brands().CreatePipeline(ctx, &model.PipelineBrand{Name: "Alpha", Order: 0})
	require.NoError(t, err)
	p2, err := st.Brands().CreatePipeline(ctx, &model.PipelineBrand{Name: "Beta", Order: 1})
	require.NoError(t, err)

	cur, err := svc.PromotePipeline(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", cur.Name)
	assert.Equal(t, 1, cur.Phase)

	// Slot occupied: second promote is rejected and nothing changes.
	_, err = svc.PromotePipeline(ctx, p2.ID)
	require.ErrorIs(t, err, model.ErrCurrentBrandExists)

	pipeline, err := st.Brands().ListPipeline(ctx)
	require.NoError(t, err)
	require.Len(t, pipeline, 1)
	assert.Equal(t, p2.ID, pipeline[0].ID)

	got, err := st.Brands().GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
}

func TestPromotePipelineMissing(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.PromotePipeline(context.Background(), "pipeline_brand_missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestMarkAutomated(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	_, err := svc.MarkAutomated(ctx)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, st.Brands().PutCurrent(ctx, model.NewCurrentBrand("Forge", time.Now().UTC())))

	live, err := svc.MarkAutomated(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Forge", live.Name)
	assert.Equal(t, 3, live.Phase)
	assert.Equal(t, "current_brand_transition", live.Source)
	assert.Equal(t, "active", live.Status)

	cur, err := st.Brands().GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestCloseLiveSumsRevenue(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	live, err := st.Brands().CreateLive(ctx, &model.LiveBrand{Name: "Forge", StartDate: "2026-03-01"})
	require.NoError(t, err)
	require.NoError(t, st.Brands().LogRevenue(ctx, live.ID, "2026-03-02", 100))
	require.NoError(t, st.Brands().LogRevenue(ctx, live.ID, "2026-03-03", 0))
	require.NoError(t, st.Brands().LogRevenue(ctx, live.ID, "2026-03-04", 50.5))

	closedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	arch, err := svc.CloseLive(ctx, live.ID, "automated_closed", closedAt)
	require.NoError(t, err)
	assert.Equal(t, 150.5, arch.TotalRevenue)
	assert.Equal(t, "2026-04-01", arch.ClosedDate)
	assert.Equal(t, "Forge closed after active run.", arch.Summary)

	liveList, err := st.Brands().ListLive(ctx)
	require.NoError(t, err)
	assert.Empty(t, liveList)
}

func TestReorderSwapsNeighbours(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	var ids []string
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		b, err := st.Brands().CreatePipeline(ctx, &model.PipelineBrand{Name: name, Order: i})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	require.NoError(t, svc.Reorder(ctx, ids[1], ReorderUp))
	pipeline, err := st.Brands().ListPipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, pipelineNames(pipeline))

	// Boundary moves change nothing.
	require.NoError(t, svc.Reorder(ctx, ids[1], ReorderUp))
	pipeline, err = st.Brands().ListPipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, pipelineNames(pipeline))

	require.NoError(t, svc.Reorder(ctx, ids[2], ReorderDown))
	pipeline, err = st.Brands().ListPipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, pipelineNames(pipeline))

	err = svc.Reorder(ctx, ids[0], "sideways")
	require.ErrorIs(t, err, model.ErrValidation)
}

func pipelineNames(pipeline []*model.PipelineBrand) []string {
	names := make([]string, len(pipeline))
	for i, b := range pipeline {
		names[i] = b.Name
	}
	return names
}

func TestAddDailyLogReplacesSameDay(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Brands().PutCurrent(ctx, model.NewCurrentBrand("Forge", now)))

	_, err := svc.AddDailyLog(ctx, "set up supplier", now)
	require.NoError(t, err)
	cur, err := svc.AddDailyLog(ctx, "supplier confirmed", now.Add(2*time.Hour))
	require.NoError(t, err)

	require.Len(t, cur.DailyLogs, 1)
	assert.Equal(t, "supplier confirmed", cur.DailyLogs["2026-03-05"].Text)
}

func TestSetPhaseForwardOnly(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, st.Brands().PutCurrent(ctx, model.NewCurrentBrand("Forge", now)))

	cur, err := svc.SetPhase(ctx, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Phase)

	_, err = svc.SetPhase(ctx, 1, now)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.SetPhase(ctx, 4, now)
	assert.True(t, errors.Is(err, model.ErrValidation))
}
