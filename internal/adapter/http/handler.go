package http

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/app"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Workflow  *app.Workflow
	Documents *app.DocumentService
	Dashboard *app.Dashboard
	Audit     *app.AuditTrail
}

// Register installs the authenticator and adds every API route to api.
func Register(api huma.API, auth *Authenticator, svc Services) {
	api.UseMiddleware(auth.Middleware(api))

	registerProperties(api, svc.Workflow)
	registerListings(api, svc.Workflow)
	registerDocuments(api, svc.Documents)
	registerHousingOffice(api, svc.Dashboard, svc.Audit)
}

// --- Shared inputs ---

type IDInput struct {
	ID string `path:"id" doc:"Entity ID"`
}

type CommentsBody struct {
	Comments string `json:"comments,omitempty" maxLength:"2000" doc:"Review comments"`
}

type CommentsInput struct {
	ID   string `path:"id" doc:"Entity ID"`
	Body *CommentsBody
}

func (in *CommentsInput) comments() string {
	if in.Body == nil {
		return ""
	}
	return in.Body.Comments
}

type PageInput struct {
	Limit  int `query:"limit" required:"false" default:"50" minimum:"1" maximum:"100" doc:"Max results"`
	Offset int `query:"offset" required:"false" default:"0" minimum:"0" doc:"Pagination offset"`
}

type ActionsOutput struct {
	Body ActionsResponse
}
