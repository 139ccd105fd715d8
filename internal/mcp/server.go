// Package mcp exposes the story bible over the Model Context Protocol so
// external agent hosts can read and mutate it with the same tool set the
// built-in architect uses.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/canaworld/cana/internal/application/handlers"
)

type Server struct {
	bible  *handlers.BibleHandler
	bridge *handlers.ToolBridge
	log    *zap.Logger
	mcp    *sdk.Server
}

func NewServer(bible *handlers.BibleHandler, log *zap.Logger, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		bible:  bible,
		bridge: handlers.NewToolBridge(bible),
		log:    log,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "cana",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
