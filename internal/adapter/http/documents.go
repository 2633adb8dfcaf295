package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

// --- Attach Document ---

type AttachmentTargetInput struct {
	Kind string `path:"kind" enum:"property,listing,lease" doc:"Kind of the owning entity"`
	ID   string `path:"id" doc:"ID of the owning entity"`
}

func (in AttachmentTargetInput) ref() (domain.AttachableRef, error) {
	kind, err := domain.ParseAttachableKind(in.Kind)
	if err != nil {
		return domain.AttachableRef{}, err
	}
	return domain.AttachableRef{Kind: kind, ID: in.ID}, nil
}

type AttachDocumentInput struct {
	AttachmentTargetInput
	Body domain.DocumentInput
}

type DocumentOutput struct {
	Body DocumentResponse
}

type ListDocumentsOutput struct {
	Body []DocumentResponse
}

func registerDocuments(api huma.API, docs *app.DocumentService) {
	tags := []string{"Documents"}

	huma.Register(api, huma.Operation{
		OperationID:   "attach-document",
		Method:        http.MethodPost,
		Path:          "/api/v1/attachments/{kind}/{id}",
		Summary:       "Record an uploaded document against an entity",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AttachDocumentInput) (*DocumentOutput, error) {
		target, err := input.ref()
		if err != nil {
			return nil, toHumaError(err)
		}
		doc, err := docs.Attach(ctx, ActorFrom(ctx), target, input.Body)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DocumentOutput{Body: toDocumentResponse(doc)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-documents",
		Method:      http.MethodGet,
		Path:        "/api/v1/attachments/{kind}/{id}",
		Summary:     "List the documents attached to an entity",
		Tags:        tags,
	}, func(ctx context.Context, input *AttachmentTargetInput) (*ListDocumentsOutput, error) {
		target, err := input.ref()
		if err != nil {
			return nil, toHumaError(err)
		}
		list, err := docs.List(ctx, ActorFrom(ctx), target)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]DocumentResponse, len(list))
		for i, d := range list {
			resp[i] = toDocumentResponse(d)
		}
		return &ListDocumentsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-document",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Get document metadata",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*DocumentOutput, error) {
		doc, err := docs.Get(ctx, ActorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DocumentOutput{Body: toDocumentResponse(doc)}, nil
	})
}
