// Package handlers implements the REST surface of cmd/apiserver: one
// endpoint wrapping application/compile.Service plus the health and
// metrics endpoints a deployment's load balancer and scraper expect.
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/sbgnqual/internal/application/compile"
	"github.com/turtacn/sbgnqual/internal/domain/overrides"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/neo4j"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/postgres"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/redis"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/infrastructure/search/opensearch"
	"github.com/turtacn/sbgnqual/internal/infrastructure/storage/minio"
	"github.com/turtacn/sbgnqual/internal/io/reader/celldesigner"
	"github.com/turtacn/sbgnqual/internal/io/writer/sbmlqual"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// CompileRequest is the JSON sidecar of the multipart "params" field.
type CompileRequest struct {
	ComponentThreshold int                   `json:"component_threshold"`
	UpstreamNames      []string              `json:"upstream_names"`
	DownstreamNames    []string              `json:"downstream_names"`
	PreferNamesAsID    bool                  `json:"prefer_names_as_id"`
	FixedOverrides     []overrides.Override  `json:"fixed_overrides"`
}

// CompileResponse is returned on a successful compile.
type CompileResponse struct {
	RunID         string `json:"run_id"`
	SpeciesCount  int    `json:"species_count"`
	ReactionCount int    `json:"reaction_count"`
	WarningCount  int    `json:"warning_count"`
	Cached        bool   `json:"cached"`
	DownloadURL   string `json:"download_url,omitempty"`
}

// CompileHandler wraps compile.Service for HTTP callers. Every field
// beyond Service is optional: a nil adapter is simply skipped, so the
// handler degrades gracefully when a deployment omits a dependency.
type CompileHandler struct {
	Service   *compile.Service
	Cache     *redis.Cache
	Runs      *postgres.CompileRunRepository
	Artifacts *minio.ArtifactStore
	Index     *opensearch.Indexer
	Graph     *neo4j.Driver
	Logger    logging.Logger
}

// Handle implements POST /v1/compile: a multipart request carrying the
// CellDesigner/SBGN-PD source under "file" and, optionally, a JSON
// CompileRequest under "params".
func (h *CompileHandler) Handle(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field \"file\""})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading upload: " + err.Error()})
		return
	}
	sourceBytes := buf.Bytes()

	var req CompileRequest
	if raw := c.PostForm("params"); raw != "" {
		if err := bindJSON(raw, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params: " + err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	paramSignature := fmt.Sprintf("%d|%v|%v|%v|%v", req.ComponentThreshold, req.UpstreamNames, req.DownstreamNames, req.PreferNamesAsID, req.FixedOverrides)
	var cacheKey string
	if h.Cache != nil {
		cacheKey = redis.Key(sourceBytes, paramSignature)
		if cached, hit, err := h.Cache.Get(ctx, cacheKey); err == nil && hit {
			c.Data(http.StatusOK, "application/xml", cached)
			return
		}
	}

	start := time.Now()
	m, err := celldesigner.Read(bytes.NewReader(sourceBytes))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.Service.Compile(ctx, m, compile.Params{
		ComponentThreshold: req.ComponentThreshold,
		UpstreamNames:      req.UpstreamNames,
		DownstreamNames:    req.DownstreamNames,
		PreferNamesAsID:    req.PreferNamesAsID,
		FixedOverrides:     req.FixedOverrides,
	})
	if err != nil {
		h.recordRun(ctx, result, fileHeader.Filename, start, err)
		h.respondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	var out bytes.Buffer
	modelID := uuid.NewString()
	if err := sbmlqual.Write(&out, result.Model, modelID); err != nil {
		h.respondError(c, http.StatusInternalServerError, err)
		return
	}

	if h.Cache != nil {
		_ = h.Cache.Set(ctx, cacheKey, out.Bytes())
	}
	h.recordRun(ctx, result, fileHeader.Filename, start, nil)

	resp := CompileResponse{
		RunID:         result.RunID,
		SpeciesCount:  result.Model.SpeciesCount(),
		ReactionCount: result.Model.ReactionCount(),
		WarningCount:  len(result.Warnings),
	}

	if h.Artifacts != nil {
		if err := h.Artifacts.Put(ctx, result.RunID, "model.sbml", bytes.NewReader(out.Bytes()), int64(out.Len()), "application/xml"); err != nil {
			h.Logger.Warn("uploading compile artifact failed", logging.Err(err))
		} else if url, err := h.Artifacts.PresignedURL(ctx, result.RunID, "model.sbml"); err == nil {
			resp.DownloadURL = url
		}
	}
	if h.Index != nil {
		if err := h.Index.IndexRun(ctx, result.RunID, result.Model); err != nil {
			h.Logger.Warn("indexing species catalog failed", logging.Err(err))
		}
	}
	if h.Graph != nil {
		if err := h.Graph.WriteInfluenceGraph(ctx, result.RunID, result.Model, result.Influences); err != nil {
			h.Logger.Warn("writing influence graph failed", logging.Err(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CompileHandler) recordRun(ctx context.Context, result *compile.Result, inputName string, start time.Time, runErr error) {
	if h.Runs == nil {
		return
	}
	run := postgres.CompileRun{
		InputPath:  inputName,
		OutputPath: "",
		StartedAt:  start,
		FinishedAt: time.Now(),
		Succeeded:  runErr == nil,
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
		run.RunID = uuid.NewString()
	} else {
		run.RunID = result.RunID
		run.SpeciesCount = result.Model.SpeciesCount()
		run.ReactionCount = result.Model.ReactionCount()
		run.WarningCount = len(result.Warnings)
	}
	if err := h.Runs.Insert(ctx, run); err != nil {
		h.Logger.Warn("recording compile run failed", logging.Err(err))
	}
}

func (h *CompileHandler) respondError(c *gin.Context, status int, err error) {
	code := "INTERNAL"
	if ce, ok := err.(*cerrors.CoreError); ok {
		code = ce.Code.String()
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
