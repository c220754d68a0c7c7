package routes

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/eval"
	"github.com/frido22/ai-paper-agent/pkg/logger"
	"github.com/frido22/ai-paper-agent/pkg/paper"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// UploadPaperHandler accepts a PDF upload, runs argument-graph extraction and
// consistency scoring, and stores the result. Re-uploading a byte-identical
// paper returns the stored record without re-running extraction.
func UploadPaperHandler(c echo.Context) error {
	type uploadPaperData struct {
		Name string `form:"name" validate:"omitempty,max=200"`
	}

	cc := c.(*middleware.AppContext)
	ctx := c.Request().Context()

	data := new(uploadPaperData)
	if err := c.Bind(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}
	if err := c.Validate(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing 'file' form field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not open upload")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "paper-*.pdf")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not buffer upload")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not buffer upload")
	}

	doc, err := paper.LoadPDF(tmp.Name())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "could not parse PDF: "+err.Error())
	}
	doc.Name = filepath.Base(fileHeader.Filename)
	if data.Name != "" {
		doc.Name = data.Name
	}

	if existing, err := cc.App.Registry.GetByHash(ctx, doc.ContentHash); err == nil {
		return c.JSON(http.StatusOK, uploadPaperResponse{
			Message: "paper already processed",
			Cached:  true,
			Paper:   existing,
		})
	}

	extractor, err := argument.NewExtractor(cc.App.AiClient, cc.App.ExtractConfig)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result, err := extractor.Extract(ctx, doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "extraction failed: "+err.Error())
	}

	saved, err := cc.App.Registry.Save(ctx, doc.Name, doc.ContentHash, len(doc.Pages), result.Graph.Output())
	if err != nil {
		logger.Error("failed to store paper", "name", doc.Name, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store result")
	}

	// Score conclusion support when both sections were found. Papers
	// without recognizable sections keep a nil score.
	sections := paper.ParseSections(doc.Pages)
	if sections.Results != "" && sections.Conclusion != "" {
		verdict := eval.ScoreConsistency(ctx, cc.App.AiClient, sections.Results, sections.Conclusion)
		if err := cc.App.Registry.SetScore(ctx, saved.ID, verdict.Score, verdict.Justification); err != nil {
			logger.Error("failed to store score", "paper", saved.ID, "err", err)
		} else if saved, err = cc.App.Registry.Get(ctx, saved.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not reload record")
		}
	}

	return c.JSON(http.StatusCreated, uploadPaperResponse{
		Message:     "paper processed",
		Paper:       saved,
		FailedSteps: len(result.Failed()),
	})
}

type uploadPaperResponse struct {
	Message     string          `json:"message"`
	Cached      bool            `json:"cached,omitempty"`
	FailedSteps int             `json:"failed_steps,omitempty"`
	Paper       *registry.Paper `json:"paper"`
}
