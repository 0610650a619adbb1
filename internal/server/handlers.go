package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"doc_auditor/internal/document"
)

type auditRequest struct {
	DocID      string             `json:"doc_id"`
	Sections   []document.Section `json:"sections"`
	References []string           `json:"references"`
}

type semanticsRequest struct {
	Sections []document.Section `json:"sections"`
}

// handleAudit runs the full pipeline over pre-parsed sections and citations.
func (s *Server) handleAudit(c echo.Context) error {
	var req auditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	doc := document.Document{DocID: req.DocID, Sections: req.Sections}
	for _, raw := range req.References {
		doc.References = append(doc.References, document.Reference{RawText: raw})
	}

	result := s.auditor.AuditRules(c.Request().Context(), doc)
	return c.JSON(http.StatusOK, result)
}

// handleSemantics runs only the per-section detectors.
func (s *Server) handleSemantics(c echo.Context) error {
	var req semanticsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result := s.auditor.AnalyzeSemantics(c.Request().Context(), req.Sections)
	return c.JSON(http.StatusOK, result)
}
