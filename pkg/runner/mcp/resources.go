package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/bento/pkg/task"
)

const (
	planURI         = "bento://plan"
	locationURIBase = "bento://location/"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	plan := mcp.NewResource(
		planURI,
		"Plan",
		mcp.WithResourceDescription("Today's boxes, the tomorrow queue, lifetime completions and the intake mode."),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(plan, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		v, err := svc.Plan(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, v)
	})

	location := mcp.NewResourceTemplate(
		locationURIBase+"{location}",
		"Location",
		mcp.WithTemplateDescription("Tasks in one location: morning, evening or tomorrow."),
		mcp.WithTemplateMIMEType("application/json"),
	)
	srv.AddResourceTemplate(location, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		loc, err := task.ParseLocation(strings.TrimPrefix(request.Params.URI, locationURIBase))
		if err != nil {
			return nil, err
		}
		v, err := svc.Location(ctx, loc)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, v)
	})
}

// LocationView is one location's slice of the plan. Session is set for the
// bounded locations only.
type LocationView struct {
	Location task.Location `json:"location"`
	Session  *SessionView  `json:"session,omitempty"`
	Tasks    []*task.Task  `json:"tasks"`
}

// Location returns the tasks in loc.
func (s *Service) Location(ctx context.Context, loc task.Location) (LocationView, error) {
	v, err := s.Plan(ctx)
	if err != nil {
		return LocationView{}, err
	}
	out := LocationView{Location: loc, Tasks: v.Tomorrow}
	for i := range v.Sessions {
		if v.Sessions[i].Location == loc {
			out.Session = &v.Sessions[i]
			out.Tasks = v.Sessions[i].Tasks
		}
	}
	return out, nil
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
