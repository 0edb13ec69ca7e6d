package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
)

// assetPrefixes are served from disk; everything else falls back to the
// landing page so client-side routing keeps working on hard reloads.
var assetPrefixes = []string{"/static/", "/css/", "/js/", "/images/"}

// SPAHandler serves the single-page frontend: static assets from the
// configured directory and the index page for every unknown route.
type SPAHandler struct {
	logger *zap.Logger
	root   string
	index  string
}

func NewSPAHandler(root, index string, logger *zap.Logger) *SPAHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if index == "" {
		index = "index.html"
	}
	return &SPAHandler{
		logger: logger,
		root:   root,
		index:  index,
	}
}

// Serve is installed as the router's not-found handler.
func (h *SPAHandler) Serve(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	// Unknown API routes stay JSON errors, never HTML.
	if strings.HasPrefix(path, "/api/") {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(http.StatusNotFound)
		ctx.SetBodyString(transport.Fail("Not found.").String())
		return
	}

	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(path, prefix) {
			fasthttp.ServeFile(ctx, filepath.Join(h.root, filepath.Clean(path)))
			return
		}
	}

	fasthttp.ServeFile(ctx, filepath.Join(h.root, h.index))
}
