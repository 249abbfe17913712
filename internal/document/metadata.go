package document

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-forge/internal/themes"
)

// DefaultRecipient is the letter greeting used when no recipient name is
// given.
const DefaultRecipient = "To Whom It May Concern"

// Default page geometry, in centimeters.
const (
	defaultMarginTop    = 1.5
	defaultMarginBottom = 1.5
	defaultMarginLeft   = 2.0
	defaultMarginRight  = 2.0
)

// Metadata carries a document's frontmatter fields. Name and email are
// required; everything else is optional with defined defaults.
type Metadata struct {
	Name     string `yaml:"name" validate:"required,min=1"`
	Email    string `yaml:"email" validate:"required,email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	LinkedIn string `yaml:"linkedin"`
	GitHub   string `yaml:"github"`
	Website  string `yaml:"website"`

	FontTheme  string `yaml:"font_theme"`
	ColorTheme string `yaml:"color_theme"`

	Layout Layout `yaml:"layout"`

	// Letter-only fields.
	Recipient *Recipient `yaml:"recipient"`
	Date      string     `yaml:"date"`
	Subject   string     `yaml:"subject"`

	FontOverrides  *themes.FontOverrides  `yaml:"font_overrides"`
	ColorOverrides *themes.ColorOverrides `yaml:"color_overrides"`
}

// Layout controls page geometry. Absent values fall back to defaults via
// the accessor methods.
type Layout struct {
	Columns *int    `yaml:"columns" validate:"omitempty,oneof=1 2"`
	Margins Margins `yaml:"margins"`
}

// Margins are page margins in centimeters. Nil means "use the default";
// explicit values must be non-negative.
type Margins struct {
	Top    *float64 `yaml:"top" validate:"omitempty,gte=0"`
	Bottom *float64 `yaml:"bottom" validate:"omitempty,gte=0"`
	Left   *float64 `yaml:"left" validate:"omitempty,gte=0"`
	Right  *float64 `yaml:"right" validate:"omitempty,gte=0"`
}

// Recipient addresses a cover letter. All fields are optional.
type Recipient struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Company string `yaml:"company"`
	Address string `yaml:"address"`
}

// ColumnCount returns the effective column count, defaulting to 1.
func (l Layout) ColumnCount() int {
	if l.Columns == nil {
		return 1
	}
	return *l.Columns
}

// TopCM returns the top margin in centimeters, defaulting to 1.5.
func (m Margins) TopCM() float64 {
	if m.Top == nil {
		return defaultMarginTop
	}
	return *m.Top
}

// BottomCM returns the bottom margin in centimeters, defaulting to 1.5.
func (m Margins) BottomCM() float64 {
	if m.Bottom == nil {
		return defaultMarginBottom
	}
	return *m.Bottom
}

// LeftCM returns the left margin in centimeters, defaulting to 2.0.
func (m Margins) LeftCM() float64 {
	if m.Left == nil {
		return defaultMarginLeft
	}
	return *m.Left
}

// RightCM returns the right margin in centimeters, defaulting to 2.0.
func (m Margins) RightCM() float64 {
	if m.Right == nil {
		return defaultMarginRight
	}
	return *m.Right
}

// DisplayName returns the recipient name or the standard fallback greeting.
// Safe on a nil receiver so callers can pass metadata.Recipient directly.
func (r *Recipient) DisplayName() string {
	if r == nil || strings.TrimSpace(r.Name) == "" {
		return DefaultRecipient
	}
	return r.Name
}

// ContactItem is one entry in a rendered contact line.
type ContactItem struct {
	Kind  string
	Value string
}

// ContactItems returns the populated contact fields in display order.
func (m Metadata) ContactItems() []ContactItem {
	ordered := []ContactItem{
		{"email", m.Email},
		{"phone", m.Phone},
		{"location", m.Location},
		{"website", m.Website},
		{"github", m.GitHub},
		{"linkedin", m.LinkedIn},
	}
	items := make([]ContactItem, 0, len(ordered))
	for _, item := range ordered {
		if strings.TrimSpace(item.Value) != "" {
			items = append(items, item)
		}
	}
	return items
}

// FormattedDate renders the letter date as "2 January 2006" when the raw
// value parses as a date, otherwise returns it verbatim.
func (m Metadata) FormattedDate() string {
	raw := strings.TrimSpace(m.Date)
	if raw == "" {
		return ""
	}
	layouts := []string{"2006-01-02", "02/01/2006", "January 2, 2006", "2 January 2006"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("2 January 2006")
		}
	}
	return raw
}

// IsLetter reports whether the metadata describes a cover letter rather
// than a CV.
func (m Metadata) IsLetter() bool {
	return m.Recipient != nil || strings.TrimSpace(m.Subject) != ""
}

// validate runs the struct tags and the catalog checks, mapping the first
// violation to a typed error.
func (m *Metadata) validate() error {
	v := validator.New()
	if err := v.Struct(m); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			ve := verrs[0]
			field := strings.ToLower(ve.Field())
			if ve.Tag() == "required" {
				return &MissingFieldError{Field: field}
			}
			return &InvalidMetadataError{Field: field, Reason: violationReason(ve)}
		}
		return err
	}

	if m.FontTheme != "" {
		if _, err := themes.Font(m.FontTheme); err != nil {
			return err
		}
	}
	if m.ColorTheme != "" {
		if _, err := themes.Color(m.ColorTheme); err != nil {
			return err
		}
	}
	return nil
}

func violationReason(ve validator.FieldError) string {
	switch ve.Tag() {
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + ve.Param()
	case "gte":
		return "must be at least " + ve.Param()
	default:
		return "failed " + ve.Tag() + " check"
	}
}
