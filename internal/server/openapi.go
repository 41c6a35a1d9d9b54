package server

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// OpenAPI describes the JSON session API. Field names and option values come
// from cat so the document matches what the server accepts.
func OpenAPI(cat *catalog.Catalog) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cat.Title + " API",
			Version: APIVersion,
		},
		Paths: openapi3.NewPaths(),
	}

	state := sessionStateSchema(cat)
	notFound := errorResponse("session not found")

	create := operation("createSession", "Start a wizard session")
	create.AddResponse(http.StatusCreated, jsonResponse("session created", state))
	doc.AddOperation(apiPrefix+"/sessions", http.MethodPost, create)

	get := operation("getSession", "Read the current step")
	get.AddParameter(idParameter())
	get.AddResponse(http.StatusOK, jsonResponse("current state", state))
	get.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}", http.MethodGet, get)

	del := operation("deleteSession", "Discard a session and its answers")
	del.AddParameter(idParameter())
	del.AddResponse(http.StatusNoContent, openapi3.NewResponse().WithDescription("deleted"))
	del.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}", http.MethodDelete, del)

	fields := make([]any, 0, len(wizard.Fields()))
	for _, f := range wizard.Fields() {
		fields = append(fields, string(f))
	}
	set := operation("setField", "Write one answer")
	set.AddParameter(idParameter())
	set.AddParameter(openapi3.NewPathParameter("field").
		WithSchema(openapi3.NewStringSchema().WithEnum(fields...)))
	set.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(openapi3.NewObjectSchema().
			WithProperty("value", openapi3.NewStringSchema()).
			WithRequired([]string{"value"}))}
	set.AddResponse(http.StatusOK, jsonResponse("field stored", state))
	set.AddResponse(http.StatusBadRequest, errorResponse("unknown field, malformed value or choice outside the field options"))
	set.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}/fields/{field}", http.MethodPut, set)

	paste := operation("pasteName", "Append pasted text to the name")
	paste.AddParameter(idParameter())
	paste.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(openapi3.NewObjectSchema().
			WithProperty("text", openapi3.NewStringSchema()).
			WithRequired([]string{"text"}))}
	paste.AddResponse(http.StatusOK, jsonResponse("name updated", state))
	paste.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}/paste", http.MethodPost, paste)

	next := operation("nextStep", "Validate the current step and advance")
	next.AddParameter(idParameter())
	next.AddResponse(http.StatusOK, jsonResponse("advanced, or already on the last step", state))
	next.AddResponse(http.StatusUnprocessableEntity, jsonResponse("current step is invalid", state))
	next.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}/next", http.MethodPost, next)

	prev := operation("prevStep", "Go back one step")
	prev.AddParameter(idParameter())
	prev.AddResponse(http.StatusOK, jsonResponse("moved back, or already on the first step", state))
	prev.AddResponse(http.StatusNotFound, notFound)
	doc.AddOperation(apiPrefix+"/sessions/{id}/prev", http.MethodPost, prev)

	submit := operation("submit", "Validate the final step and submit the answers")
	submit.AddParameter(idParameter())
	submit.AddResponse(http.StatusOK, jsonResponse("submitted", state))
	submit.AddResponse(http.StatusNotFound, notFound)
	submit.AddResponse(http.StatusConflict, errorResponse("not on the final step, or already submitted"))
	submit.AddResponse(http.StatusUnprocessableEntity, jsonResponse("final step is invalid", state))
	submit.AddResponse(http.StatusBadGateway, errorResponse("the submission could not be stored"))
	doc.AddOperation(apiPrefix+"/sessions/{id}/submit", http.MethodPost, submit)

	return doc
}

func operation(id, summary string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{"sessions"}
	return op
}

func idParameter() *openapi3.Parameter {
	return openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema)
}

func errorResponse(description string) *openapi3.Response {
	return jsonResponse(description, openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithRequired([]string{"error"}))
}

func sessionStateSchema(cat *catalog.Catalog) *openapi3.Schema {
	data := openapi3.NewObjectSchema()
	for _, f := range wizard.Fields() {
		prop := openapi3.NewStringSchema()
		if f == wizard.FieldAge {
			prop = openapi3.NewIntegerSchema().WithNullable()
		} else if field, ok := cat.Field(f); ok && len(field.Options) > 0 {
			values := []any{""}
			for _, opt := range field.Options {
				values = append(values, opt.Value)
			}
			prop = prop.WithEnum(values...)
		}
		data.WithProperty(string(f), prop)
	}

	snapshot := openapi3.NewObjectSchema().
		WithProperty("step", openapi3.NewIntegerSchema()).
		WithProperty("steps", openapi3.NewIntegerSchema()).
		WithProperty("progress", openapi3.NewFloat64Schema()).
		WithProperty("fields", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("data", data).
		WithProperty("errors", openapi3.NewObjectSchema().
			WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("can_go_back", openapi3.NewBoolSchema()).
		WithProperty("is_final", openapi3.NewBoolSchema()).
		WithProperty("submitted", openapi3.NewBoolSchema())

	view := openapi3.NewObjectSchema().
		WithProperty("page", openapi3.NewStringSchema().WithEnum("landing", "wizard")).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("snapshot", snapshot).
		WithProperty("step", openapi3.NewObjectSchema()).
		WithProperty("fields", openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()))

	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("view", view).
		WithRequired([]string{"id", "view"})
}

func (s *Server) openAPI(_ context.Context, ctx *app.RequestContext) {
	body, err := OpenAPI(s.catalog).MarshalJSON()
	if err != nil {
		apiError(ctx, consts.StatusInternalServerError, err)
		return
	}
	ctx.Data(consts.StatusOK, "application/json; charset=utf-8", body)
}
