package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

type StatsOutput struct {
	Body StatsResponse
}

type ListAuditInput struct {
	Entity   string `query:"entity" required:"false" enum:"property,listing,lease" doc:"Filter by entity kind"`
	EntityID string `query:"entity_id" required:"false" doc:"Filter by entity"`
	ActorID  string `query:"actor_id" required:"false" doc:"Filter by actor"`
	PageInput
}

type ListAuditOutput struct {
	Body []AuditEntryResponse
}

func registerHousingOffice(api huma.API, dashboard *app.Dashboard, audit *app.AuditTrail) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Housing Office queue counts",
		Tags:        []string{"Housing Office"},
	}, func(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
		stats, err := dashboard.Stats(ctx, ActorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &StatsOutput{Body: toStatsResponse(stats)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-audit",
		Method:      http.MethodGet,
		Path:        "/api/v1/audit",
		Summary:     "Read the workflow audit trail, newest first",
		Tags:        []string{"Housing Office"},
	}, func(ctx context.Context, input *ListAuditInput) (*ListAuditOutput, error) {
		entries, err := audit.List(ctx, ActorFrom(ctx), domain.AuditFilter{
			Entity:   domain.EntityKind(input.Entity),
			EntityID: input.EntityID,
			ActorID:  input.ActorID,
			Limit:    input.Limit,
			Offset:   input.Offset,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]AuditEntryResponse, len(entries))
		for i, e := range entries {
			resp[i] = toAuditEntryResponse(e)
		}
		return &ListAuditOutput{Body: resp}, nil
	})
}
