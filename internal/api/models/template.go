package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TemplateData is the structured design payload. It is stored as jsonb and
// kept as a typed document so the shape can evolve with a version field.
type TemplateData struct {
	Version int             `json:"version"`
	Canvas  TemplateCanvas  `json:"canvas"`
	Layers  []TemplateLayer `json:"layers"`
}

type TemplateCanvas struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background,omitempty"`
}

type TemplateLayer struct {
	Type    string          `json:"type"` // text, image, shape
	Name    string          `json:"name,omitempty"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (d TemplateData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *TemplateData) Scan(value any) error {
	if value == nil {
		*d = TemplateData{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for template data")
	}
	return json.Unmarshal(raw, d)
}

type Template struct {
	ID           string       `gorm:"primaryKey;type:uuid"`
	Name         string       `gorm:"not null"`
	Description  string
	Thumbnail    string
	TemplateData TemplateData `gorm:"type:jsonb;column:template_data"`
	Category     string       `gorm:"index"`
	IsPublic     bool         `gorm:"default:false;column:is_public"`
	CreatedBy    string       `gorm:"type:uuid;index;not null;column:created_by"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;column:created_at"`
}

func (Template) TableName() string {
	return "templates"
}
