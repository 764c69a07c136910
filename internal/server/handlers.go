package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/contact"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/resume"
	"github.com/jonathan/portfolio/internal/site"
	"github.com/jonathan/portfolio/internal/types"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// ProjectResponse is a showcase project as served to the modal
type ProjectResponse struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Categories    []string            `json:"categories"`
	CategoryLabel string              `json:"category_label"`
	Tags          []string            `json:"tags"`
	Description   string              `json:"description"`
	Gradient      string              `json:"gradient,omitempty"`
	Links         []types.ProjectLink `json:"links"`
}

// ProjectListResponse is returned by GET /projects
type ProjectListResponse struct {
	Filter   string            `json:"filter"`
	Projects []ProjectResponse `json:"projects"`
}

// ThemeResponse describes the visitor's current theme and toggle state
type ThemeResponse struct {
	Theme       site.Theme `json:"theme"`
	AriaPressed bool       `json:"aria_pressed"`
	AriaLabel   string     `json:"aria_label"`
}

// ContactResponse is the JSON answer to a contact submission
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, nil)
}

func (s *Server) renderPage(c *gin.Context, status int, notice *site.Notice) {
	theme := site.ThemeFromCookie(c.Request, s.state.DefaultTheme())
	data := s.state.Page(theme, c.Query("filter"))
	data.Notice = notice

	var buf bytes.Buffer
	if err := site.RenderPage(&buf, data); err != nil {
		log.Printf("[SERVER] Failed to render page: %v", err)
		s.errorResponse(c, http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleListProjects(c *gin.Context) {
	filter := c.DefaultQuery("filter", site.FilterAll)
	projects := s.state.Catalog().Filter(filter)

	resp := ProjectListResponse{Filter: filter, Projects: make([]ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		verr := &ErrValidation{Field: "id", Message: "project ID must be a number"}
		s.errorResponse(c, HTTPStatus(verr), verr.Error())
		return
	}

	p, ok := s.state.Catalog().Lookup(id)
	if !ok {
		nerr := &ErrProjectNotFound{ID: id}
		s.errorResponse(c, HTTPStatus(nerr), nerr.Error())
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(p))
}

func toProjectResponse(p types.ShowcaseProject) ProjectResponse {
	labels := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		labels = append(labels, site.CategoryLabel(cat))
	}
	links := site.VisibleLinks(p)
	if links == nil {
		links = []types.ProjectLink{}
	}
	return ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Categories:    p.Categories,
		CategoryLabel: strings.Join(labels, ", "),
		Tags:          p.Tags,
		Description:   p.Description,
		Gradient:      p.Gradient,
		Links:         links,
	}
}

func (s *Server) handleGetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, themeResponse(site.ThemeFromCookie(c.Request, s.state.DefaultTheme())))
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	next := site.ThemeFromCookie(c.Request, s.state.DefaultTheme()).Toggle()
	setThemeCookie(c, next)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, themeResponse(next))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// setThemeCookie is the only place a visitor's theme is written
func setThemeCookie(c *gin.Context, t site.Theme) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(site.ThemeCookie, string(t), themeCookieMaxAge, "/", "", false, false)
}

func themeResponse(t site.Theme) ThemeResponse {
	return ThemeResponse{Theme: t, AriaPressed: t.IsDark(), AriaLabel: t.AriaLabel()}
}

func (s *Server) handleContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		s.contactReply(c, http.StatusBadRequest, false, "Invalid form submission.", "")
		return
	}

	record, err := s.contact.Submit(c.Request.Context(), msg)
	if err != nil {
		id := ""
		if record != nil {
			id = record.ID.String()
		}
		s.contactReply(c, HTTPStatus(err), false, s.contact.FailureNotice(err), id)
		return
	}
	s.contactReply(c, http.StatusOK, true, contact.SuccessNotice, record.ID.String())
}

func (s *Server) contactReply(c *gin.Context, status int, ok bool, message, id string) {
	if wantsJSON(c) {
		c.JSON(status, ContactResponse{Success: ok, Message: message, ID: id})
		return
	}
	kind := "error"
	if ok {
		kind = "success"
	}
	s.renderPage(c, status, &site.Notice{Kind: kind, Text: message})
}

func (s *Server) handleResume(c *gin.Context) {
	art, err := s.generator.Generate(s.state.Profile())
	if err != nil {
		s.errorResponse(c, HTTPStatus(err), resume.Notice(err))
		return
	}

	if s.store != nil {
		rec := &types.RenderRecord{
			Format:    config.FormatPDF,
			FileName:  art.FileName,
			Pages:     art.Pages,
			SizeBytes: len(art.Data),
			Source:    "http",
		}
		if err := s.store.RecordRender(c.Request.Context(), rec); err != nil {
			log.Printf("[SERVER] Failed to record render: %v", err)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.FileName))
	c.Data(http.StatusOK, "application/pdf", art.Data)
}

func (s *Server) handleResumeStatus(c *gin.Context) {
	capability := s.state.Capability()
	if capability == nil {
		c.JSON(http.StatusOK, rendering.CapabilityStatus{State: rendering.StateReady.String(), Ready: true})
		return
	}
	c.JSON(http.StatusOK, capability.Status())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// wantsJSON is true for fetch-style clients; plain form posts get HTML back
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON || strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
