package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-studio/internal/domain"
	"resume-studio/internal/model"
	"resume-studio/internal/render"
	"resume-studio/internal/usecase"
)

type TemplatesStore interface {
	Save(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResumesStore interface {
	Save(ctx context.Context, r *domain.Resume, createVersion bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error)
	List(ctx context.Context) ([]*domain.Resume, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListVersions(ctx context.Context, resumeID uuid.UUID) ([]*domain.ResumeVersion, error)
}

type Handler struct {
	templates TemplatesStore
	resumes   ResumesStore
	exporter  *usecase.Exporter
	validate  *validator.Validate
}

func NewHandler(templates TemplatesStore, resumes ResumesStore, exporter *usecase.Exporter) *Handler {
	return &Handler{
		templates: templates,
		resumes:   resumes,
		exporter:  exporter,
		validate:  validator.New(),
	}
}

// Register mounts all routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/templates", h.ListTemplates)
	app.Post("/api/templates", h.CreateTemplate)
	app.Post("/api/templates/parse", h.ParseTemplate)
	app.Get("/api/templates/:id", h.GetTemplate)
	app.Put("/api/templates/:id", h.UpdateTemplate)
	app.Delete("/api/templates/:id", h.DeleteTemplate)
	app.Patch("/api/templates/:id/nodes/:nodeId", h.UpdateTemplateNode)

	app.Get("/api/resumes", h.ListResumes)
	app.Post("/api/resumes", h.CreateResume)
	app.Get("/api/resumes/:id", h.GetResume)
	app.Put("/api/resumes/:id", h.UpdateResume)
	app.Delete("/api/resumes/:id", h.DeleteResume)
	app.Get("/api/resumes/:id/versions", h.ListResumeVersions)

	app.Post("/api/render/preview", h.Preview)

	app.Get("/api/export/:id/html", h.ExportHTML)
	app.Get("/api/export/:id/pdf", h.ExportPDF)
}

type templateCreateReq struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	AST         *model.TemplateAST `json:"ast"`
	Thumbnail   string             `json:"thumbnail"`
}

type templateUpdateReq struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	AST         *model.TemplateAST `json:"ast"`
	Thumbnail   *string            `json:"thumbnail"`
}

func validateAST(ast *model.TemplateAST) error {
	b, err := json.Marshal(ast)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	return model.ValidateTemplateMap(m)
}

func (h *Handler) CreateTemplate(c *fiber.Ctx) error {
	var req templateCreateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ast := req.AST
	if ast == nil {
		ast = usecase.DefaultTemplateAST()
	}
	usecase.EnsureNodeIDs(ast.Root, "")
	if err := validateAST(ast); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	t := &domain.Template{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		AST:         *ast,
		Thumbnail:   req.Thumbnail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.templates.Save(c.Context(), t); err != nil {
		log.Printf("handler: failed to save template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	list, err := h.templates.List(c.Context())
	if err != nil {
		log.Printf("handler: failed to list templates: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "list failed"})
	}
	if list == nil {
		list = []*domain.Template{}
	}
	return c.JSON(list)
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	t, ok := h.findTemplate(c)
	if !ok {
		return nil
	}
	return c.JSON(t)
}

func (h *Handler) UpdateTemplate(c *fiber.Ctx) error {
	t, ok := h.findTemplate(c)
	if !ok {
		return nil
	}
	if t.IsSystem {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot modify system template"})
	}

	var req templateUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Thumbnail != nil {
		t.Thumbnail = *req.Thumbnail
	}
	if req.AST != nil {
		usecase.EnsureNodeIDs(req.AST.Root, "")
		if err := validateAST(req.AST); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		t.AST = *req.AST
	}
	t.UpdatedAt = time.Now()

	if err := h.templates.Save(c.Context(), t); err != nil {
		log.Printf("handler: failed to save template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	return c.JSON(t)
}

func (h *Handler) DeleteTemplate(c *fiber.Ctx) error {
	t, ok := h.findTemplate(c)
	if !ok {
		return nil
	}
	if t.IsSystem {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot delete system template"})
	}
	if err := h.templates.Delete(c.Context(), t.ID); err != nil {
		log.Printf("handler: failed to delete template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.JSON(fiber.Map{"message": "template deleted"})
}

// UpdateTemplateNode applies a partial edit to one node of a template's AST.
// The chat collaborator uses this to scope an edit to a dragged/focused
// subtree.
func (h *Handler) UpdateTemplateNode(c *fiber.Ctx) error {
	t, ok := h.findTemplate(c)
	if !ok {
		return nil
	}
	if t.IsSystem {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot modify system template"})
	}

	var upd usecase.NodeUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if !usecase.UpdateNode(&t.AST, c.Params("nodeId"), upd) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "node not found"})
	}
	t.UpdatedAt = time.Now()

	if err := h.templates.Save(c.Context(), t); err != nil {
		log.Printf("handler: failed to save template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	return c.JSON(t)
}

type parseReq struct {
	HTMLContent string `json:"html_content" validate:"required"`
	CSSContent  string `json:"css_content"`
}

func (h *Handler) ParseTemplate(c *fiber.Ctx) error {
	var req parseReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ast, err := usecase.ParseHTMLTemplate(req.HTMLContent, req.CSSContent)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ast": ast})
}

type resumeCreateReq struct {
	Title  string              `json:"title"`
	Data   *model.ResumeData   `json:"resume_data"`
	Layout *model.LayoutConfig `json:"layout_config"`
}

type resumeUpdateReq struct {
	Title         *string             `json:"title"`
	Data          *model.ResumeData   `json:"resume_data"`
	Layout        *model.LayoutConfig `json:"layout_config"`
	CreateVersion *bool               `json:"create_version"`
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req resumeCreateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	title := req.Title
	if title == "" {
		title = "Untitled Resume"
	}
	layout := model.DefaultLayoutConfig()
	if req.Layout != nil {
		layout = *req.Layout
	}
	var data model.ResumeData
	if req.Data != nil {
		data = *req.Data
	}

	now := time.Now()
	res := &domain.Resume{
		ID:        uuid.New(),
		Title:     title,
		Data:      data,
		Layout:    layout,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.resumes.Save(c.Context(), res, false); err != nil {
		log.Printf("handler: failed to save resume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	list, err := h.resumes.List(c.Context())
	if err != nil {
		log.Printf("handler: failed to list resumes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "list failed"})
	}
	if list == nil {
		list = []*domain.Resume{}
	}
	return c.JSON(list)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}
	return c.JSON(res)
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}

	var req resumeUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Title != nil {
		res.Title = *req.Title
	}
	if req.Data != nil {
		res.Data = *req.Data
	}
	if req.Layout != nil {
		res.Layout = *req.Layout
	}
	res.UpdatedAt = time.Now()

	createVersion := true
	if req.CreateVersion != nil {
		createVersion = *req.CreateVersion
	}
	if err := h.resumes.Save(c.Context(), res, createVersion); err != nil {
		log.Printf("handler: failed to save resume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	return c.JSON(res)
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}
	if err := h.resumes.Delete(c.Context(), res.ID); err != nil {
		log.Printf("handler: failed to delete resume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.JSON(fiber.Map{"message": "resume deleted"})
}

func (h *Handler) ListResumeVersions(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}
	versions, err := h.resumes.ListVersions(c.Context(), res.ID)
	if err != nil {
		log.Printf("handler: failed to list versions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "list failed"})
	}
	if versions == nil {
		versions = []*domain.ResumeVersion{}
	}
	return c.JSON(versions)
}

type previewReq struct {
	TemplateID string             `json:"template_id"`
	ResumeID   string             `json:"resume_id"`
	AST        *model.TemplateAST `json:"ast"`
	Data       *model.ResumeData  `json:"resume_data"`
}

// Preview renders the interactive tree for the editing UI. Inline ast and
// resume_data take precedence over stored entities referenced by id.
func (h *Handler) Preview(c *fiber.Ctx) error {
	var req previewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	ast := req.AST
	if ast == nil && req.TemplateID != "" {
		id, err := uuid.Parse(req.TemplateID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template_id"})
		}
		t, err := h.templates.GetByID(c.Context(), id)
		if err != nil {
			log.Printf("handler: failed to load template: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
		}
		if t == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
		}
		ast = &t.AST
	}
	if ast == nil {
		ast = usecase.DefaultTemplateAST()
	}

	data := req.Data
	if data == nil && req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume_id"})
		}
		res, err := h.resumes.GetByID(c.Context(), id)
		if err != nil {
			log.Printf("handler: failed to load resume: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
		}
		if res == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume not found"})
		}
		data = &res.Data
	}

	tree := render.RenderTree(ast, data)
	if tree == nil {
		tree = []*render.Node{}
	}
	return c.JSON(fiber.Map{"tree": tree})
}

func (h *Handler) ExportHTML(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}
	ast, ok := h.exportAST(c)
	if !ok {
		return nil
	}

	doc, err := h.exporter.ExportHTML(ast, &res.Data, &res.Layout, c.QueryBool("minify"))
	if err != nil {
		log.Printf("handler: html export failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(doc)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	res, ok := h.findResume(c)
	if !ok {
		return nil
	}
	ast, ok := h.exportAST(c)
	if !ok {
		return nil
	}

	pdf, err := h.exporter.ExportPDF(c.Context(), ast, &res.Data, &res.Layout)
	if err != nil {
		log.Printf("handler: pdf export failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-%s.pdf"`, res.ID))
	return c.Send(pdf)
}

// exportAST resolves the template both export endpoints render with: the
// template query parameter when given, the built-in default otherwise. On
// failure the error response has already been written and ok is false.
func (h *Handler) exportAST(c *fiber.Ctx) (*model.TemplateAST, bool) {
	tid := c.Query("template")
	if tid == "" {
		return usecase.DefaultTemplateAST(), true
	}
	id, err := uuid.Parse(tid)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template id"})
		return nil, false
	}
	t, err := h.templates.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("handler: failed to load template: %v", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
		return nil, false
	}
	if t == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
		return nil, false
	}
	return &t.AST, true
}

func (h *Handler) findTemplate(c *fiber.Ctx) (*domain.Template, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		return nil, false
	}
	t, err := h.templates.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("handler: failed to load template: %v", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
		return nil, false
	}
	if t == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
		return nil, false
	}
	return t, true
}

func (h *Handler) findResume(c *fiber.Ctx) (*domain.Resume, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		return nil, false
	}
	res, err := h.resumes.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("handler: failed to load resume: %v", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
		return nil, false
	}
	if res == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume not found"})
		return nil, false
	}
	return res, true
}
