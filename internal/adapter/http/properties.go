package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

// --- Create Property ---

type CreatePropertyInput struct {
	Body domain.PropertyAttributes
}

type PropertyOutput struct {
	Body PropertyResponse
}

// --- List Properties ---

type ListPropertiesInput struct {
	Status     string `query:"status" required:"false" enum:"draft,pending_review,approved,rejected" doc:"Filter by review state"`
	LandlordID string `query:"landlord_id" required:"false" doc:"Filter by owner"`
	City       string `query:"city" required:"false" doc:"Filter by city (case-insensitive)"`
	PageInput
}

type ListPropertiesOutput struct {
	Body []PropertyResponse
}

// --- Update Property ---

type UpdatePropertyInput struct {
	ID   string `path:"id" doc:"Property ID"`
	Body struct {
		Attributes *domain.PropertyAttributes `json:"attributes,omitempty" doc:"Replacement attributes (owner only)"`
		Comments   *string                    `json:"comments,omitempty" doc:"Review comments (Housing Office only)"`
	}
}

func registerProperties(api huma.API, wf *app.Workflow) {
	tags := []string{"Properties"}

	huma.Register(api, huma.Operation{
		OperationID:   "create-property",
		Method:        http.MethodPost,
		Path:          "/api/v1/properties",
		Summary:       "Register a property as a draft",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePropertyInput) (*PropertyOutput, error) {
		p, err := wf.CreateProperty(ctx, ActorFrom(ctx), input.Body)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-properties",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties",
		Summary:     "List properties visible to the caller",
		Tags:        tags,
	}, func(ctx context.Context, input *ListPropertiesInput) (*ListPropertiesOutput, error) {
		filter := domain.PropertyFilter{
			LandlordID: input.LandlordID,
			City:       input.City,
			Limit:      input.Limit,
			Offset:     input.Offset,
		}
		if input.Status != "" {
			s := domain.PropertyStatus(input.Status)
			filter.Status = &s
		}

		properties, err := wf.ListProperties(ctx, ActorFrom(ctx), filter)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListPropertiesOutput{Body: toPropertyResponses(properties)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-property",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}",
		Summary:     "Get a property by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*PropertyOutput, error) {
		p, err := wf.GetProperty(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-property",
		Method:      http.MethodPatch,
		Path:        "/api/v1/properties/{id}",
		Summary:     "Edit attributes (owner) or review comments (Housing Office)",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdatePropertyInput) (*PropertyOutput, error) {
		p, err := wf.UpdateProperty(ctx, ActorFrom(ctx), input.ID, app.PropertyUpdate{
			Attributes: input.Body.Attributes,
			Comments:   input.Body.Comments,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-property",
		Method:      http.MethodPost,
		Path:        "/api/v1/properties/{id}/submit",
		Summary:     "Submit a property for Housing Office review",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*PropertyOutput, error) {
		p, err := wf.SubmitProperty(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "approve-property",
		Method:      http.MethodPost,
		Path:        "/api/v1/properties/{id}/approve",
		Summary:     "Approve a property",
		Tags:        tags,
	}, func(ctx context.Context, input *CommentsInput) (*PropertyOutput, error) {
		p, err := wf.ApproveProperty(ctx, ActorFrom(ctx), input.ID, input.comments())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reject-property",
		Method:      http.MethodPost,
		Path:        "/api/v1/properties/{id}/reject",
		Summary:     "Reject a property with comments",
		Tags:        tags,
	}, func(ctx context.Context, input *CommentsInput) (*PropertyOutput, error) {
		p, err := wf.RejectProperty(ctx, ActorFrom(ctx), input.ID, input.comments())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PropertyOutput{Body: toPropertyResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-property",
		Method:        http.MethodDelete,
		Path:          "/api/v1/properties/{id}",
		Summary:       "Delete a draft property",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := wf.DeleteProperty(ctx, ActorFrom(ctx), input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "property-actions",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}/actions",
		Summary:     "List the events the caller may fire on a property",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*ActionsOutput, error) {
		events, err := wf.PropertyActions(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ActionsOutput{Body: toActionsResponse(events)}, nil
	})
}
