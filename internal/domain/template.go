package domain

import (
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/model"
)

// Template is a stored visual template. System templates ship with the
// application and cannot be modified or deleted through the API.
type Template struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	AST         model.TemplateAST `json:"ast"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	IsSystem    bool              `json:"is_system"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type Resume struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Data      model.ResumeData   `json:"resume_data"`
	Layout    model.LayoutConfig `json:"layout_config"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ResumeVersion is an immutable snapshot taken before a resume update.
type ResumeVersion struct {
	ID            uuid.UUID          `json:"id"`
	ResumeID      uuid.UUID          `json:"resume_id"`
	VersionNumber int                `json:"version_number"`
	Data          model.ResumeData   `json:"resume_data"`
	Layout        model.LayoutConfig `json:"layout_config"`
	CreatedAt     time.Time          `json:"created_at"`
}
