package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

// TermsBody is the payload for new listing terms. Amounts are in cents.
type TermsBody struct {
	MonthlyRent     domain.Cents   `json:"monthly_rent" minimum:"0" doc:"Monthly rent in cents"`
	SecurityDeposit domain.Cents   `json:"security_deposit" minimum:"0" doc:"Security deposit in cents"`
	CondoFees       *domain.Cents  `json:"condo_fees,omitempty" minimum:"0" doc:"Monthly condo fees in cents"`
	DurationYears   int            `json:"duration_years,omitempty" doc:"Lease duration, defaults to 4"`
	Checklist       map[string]any `json:"checklist_data,omitempty" doc:"Free-form checklist"`
}

func (b TermsBody) terms() domain.Terms {
	return domain.Terms{
		MonthlyRent:     b.MonthlyRent,
		SecurityDeposit: b.SecurityDeposit,
		CondoFees:       b.CondoFees,
		DurationYears:   b.DurationYears,
		Checklist:       b.Checklist,
	}
}

// --- Create Listing ---

type CreateListingInput struct {
	ID   string `path:"id" doc:"Property ID"`
	Body TermsBody
}

type ListingOutput struct {
	Body ListingResponse
}

// --- List Listings ---

type ListListingsInput struct {
	Status     string `query:"status" required:"false" enum:"draft,submitted,in_review,approved,rejected,published,unpublished" doc:"Filter by publication state"`
	PropertyID string `query:"property_id" required:"false" doc:"Filter by property"`
	PageInput
}

type ListListingsOutput struct {
	Body []ListingResponse
}

// --- Update Listing ---

type UpdateListingInput struct {
	ID   string `path:"id" doc:"Listing ID"`
	Body struct {
		MonthlyRent     *domain.Cents  `json:"monthly_rent,omitempty" minimum:"0"`
		SecurityDeposit *domain.Cents  `json:"security_deposit,omitempty" minimum:"0"`
		CondoFees       *domain.Cents  `json:"condo_fees,omitempty" minimum:"0"`
		ClearCondoFees  bool           `json:"clear_condo_fees,omitempty" doc:"Remove the condo fees"`
		DurationYears   *int           `json:"duration_years,omitempty"`
		Checklist       map[string]any `json:"checklist_data,omitempty"`
	}
}

func registerListings(api huma.API, wf *app.Workflow) {
	tags := []string{"Listings"}

	huma.Register(api, huma.Operation{
		OperationID:   "create-listing",
		Method:        http.MethodPost,
		Path:          "/api/v1/properties/{id}/listing",
		Summary:       "Open a draft listing for an approved property",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateListingInput) (*ListingOutput, error) {
		v, err := wf.CreateListing(ctx, ActorFrom(ctx), input.ID, input.Body.terms())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListingOutput{Body: toListingViewResponse(v)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "List listings visible to the caller",
		Tags:        tags,
	}, func(ctx context.Context, input *ListListingsInput) (*ListListingsOutput, error) {
		filter := domain.ListingFilter{
			PropertyID: input.PropertyID,
			Limit:      input.Limit,
			Offset:     input.Offset,
		}
		if input.Status != "" {
			s := domain.ListingStatus(input.Status)
			filter.Status = &s
		}

		listings, err := wf.ListListings(ctx, ActorFrom(ctx), filter)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]ListingResponse, len(listings))
		for i, l := range listings {
			resp[i] = toListingResponse(l)
		}
		return &ListListingsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Get a listing by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*ListingOutput, error) {
		v, err := wf.GetListing(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListingOutput{Body: toListingViewResponse(v)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-listing",
		Method:      http.MethodPatch,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Edit the terms of a draft or rejected listing",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateListingInput) (*ListingOutput, error) {
		b := input.Body
		v, err := wf.UpdateListing(ctx, ActorFrom(ctx), input.ID, domain.TermsPatch{
			MonthlyRent:     b.MonthlyRent,
			SecurityDeposit: b.SecurityDeposit,
			CondoFees:       b.CondoFees,
			ClearCondoFees:  b.ClearCondoFees,
			DurationYears:   b.DurationYears,
			Checklist:       b.Checklist,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListingOutput{Body: toListingViewResponse(v)}, nil
	})

	transitions := []struct {
		id, path, summary string
		fire              func(context.Context, domain.Actor, string) (domain.ListingView, error)
	}{
		{"submit-listing", "submit", "Submit a listing for review", wf.SubmitListing},
		{"start-listing-review", "start-review", "Take a submitted listing into review", wf.StartListingReview},
		{"publish-listing", "publish", "Publish an approved listing", wf.PublishListing},
		{"unpublish-listing", "unpublish", "Withdraw a published listing", wf.UnpublishListing},
	}
	for _, tr := range transitions {
		huma.Register(api, huma.Operation{
			OperationID: tr.id,
			Method:      http.MethodPost,
			Path:        "/api/v1/listings/{id}/" + tr.path,
			Summary:     tr.summary,
			Tags:        tags,
		}, func(ctx context.Context, input *IDInput) (*ListingOutput, error) {
			v, err := tr.fire(ctx, ActorFrom(ctx), input.ID)
			if err != nil {
				return nil, toHumaError(err)
			}
			return &ListingOutput{Body: toListingViewResponse(v)}, nil
		})
	}

	huma.Register(api, huma.Operation{
		OperationID: "approve-listing",
		Method:      http.MethodPost,
		Path:        "/api/v1/listings/{id}/approve",
		Summary:     "Approve a listing",
		Tags:        tags,
	}, func(ctx context.Context, input *CommentsInput) (*ListingOutput, error) {
		v, err := wf.ApproveListing(ctx, ActorFrom(ctx), input.ID, input.comments())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListingOutput{Body: toListingViewResponse(v)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reject-listing",
		Method:      http.MethodPost,
		Path:        "/api/v1/listings/{id}/reject",
		Summary:     "Reject a listing with comments",
		Tags:        tags,
	}, func(ctx context.Context, input *CommentsInput) (*ListingOutput, error) {
		v, err := wf.RejectListing(ctx, ActorFrom(ctx), input.ID, input.comments())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListingOutput{Body: toListingViewResponse(v)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-listing",
		Method:        http.MethodDelete,
		Path:          "/api/v1/listings/{id}",
		Summary:       "Delete a draft listing",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := wf.DeleteListing(ctx, ActorFrom(ctx), input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "listing-actions",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}/actions",
		Summary:     "List the events the caller may fire on a listing",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*ActionsOutput, error) {
		events, err := wf.ListingActions(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ActionsOutput{Body: toActionsResponse(events)}, nil
	})
}
