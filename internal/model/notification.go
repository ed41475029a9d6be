package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationCategory string

const (
	CategoryBusiness  NotificationCategory = "business"
	CategoryApplicant NotificationCategory = "applicant"
	CategoryAdmin     NotificationCategory = "admin"
	CategorySystem    NotificationCategory = "system"
)

// NotificationType is the catalog entry for a kind of notification.
// Callers reference types by Key, never by id. Types with IsSystem set
// cannot be opted out of.
type NotificationType struct {
	Base
	Key            string               `db:"key" json:"key"`
	Name           string               `db:"name" json:"name"`
	Description    string               `db:"description" json:"description"`
	Category       NotificationCategory `db:"category" json:"category"`
	DefaultEnabled bool                 `db:"default_enabled" json:"default_enabled"`
	IsSystem       bool                 `db:"is_system" json:"is_system"`
}

// TemplateTier is the precedence level of a stored template.
type TemplateTier string

const (
	TierAdminGlobal   TemplateTier = "admin_global"
	TierSystemDefault TemplateTier = "system_default"
)

// TierPrecedence is the ordered resolution list: earlier tiers win.
// Adding a tier means inserting into this slice, not touching call sites.
var TierPrecedence = []TemplateTier{TierAdminGlobal, TierSystemDefault}

type NotificationTemplate struct {
	Base
	NotificationTypeID uuid.UUID      `db:"notification_type_id" json:"notification_type_id"`
	TemplateType       TemplateTier   `db:"template_type" json:"template_type"`
	Subject            string         `db:"subject" json:"subject"`
	BodyHTML           string         `db:"body_html" json:"body_html"`
	BodyText           string         `db:"body_text" json:"body_text,omitempty"`
	Variables          pq.StringArray `db:"variables" json:"variables"`
	IsActive           bool           `db:"is_active" json:"is_active"`
}

// UserNotificationPreference is created lazily on first explicit toggle.
// Absence of a row means "use the type's default_enabled".
type UserNotificationPreference struct {
	Base
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	NotificationTypeID uuid.UUID `db:"notification_type_id" json:"notification_type_id"`
	IsEnabled          bool      `db:"is_enabled" json:"is_enabled"`
	CustomSubject      *string   `db:"custom_subject" json:"custom_subject,omitempty"`
	CustomBody         *string   `db:"custom_body" json:"custom_body,omitempty"`
}

type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusSkipped NotificationStatus = "skipped"
)

// Metadata is a string key-value map stored as JSONB.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
}

// NotificationLog records one dispatch attempt. Rows are append-only;
// NotificationTypeKey is deliberately denormalized so log rows stay
// readable if a type is later renamed or removed.
type NotificationLog struct {
	ID                  uuid.UUID          `db:"id" json:"id"`
	NotificationTypeKey string             `db:"notification_type_key" json:"notification_type_key"`
	RecipientEmail      string             `db:"recipient_email" json:"recipient_email"`
	RecipientUserID     *uuid.UUID         `db:"recipient_user_id" json:"recipient_user_id,omitempty"`
	Subject             string             `db:"subject" json:"subject"`
	Status              NotificationStatus `db:"status" json:"status"`
	ErrorMessage        string             `db:"error_message" json:"error_message,omitempty"`
	Metadata            Metadata           `db:"metadata" json:"metadata,omitempty"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
}

// NotificationLogFilters narrows the admin log listing.
type NotificationLogFilters struct {
	TypeKey   string
	Status    NotificationStatus
	Recipient string
	Limit     int
	Offset    int
}

type CreateNotificationTypeRequest struct {
	Key            string `json:"key" binding:"required,max=100,type_key"`
	Name           string `json:"name" binding:"required,max=200"`
	Description    string `json:"description"`
	Category       string `json:"category" binding:"required,oneof=business applicant admin system"`
	DefaultEnabled bool   `json:"default_enabled"`
	IsSystem       bool   `json:"is_system"`
}

type UpsertTemplateRequest struct {
	TemplateType string   `json:"template_type" binding:"required,oneof=system_default admin_global"`
	Subject      string   `json:"subject" binding:"required"`
	BodyHTML     string   `json:"body_html" binding:"required"`
	BodyText     string   `json:"body_text"`
	Variables    []string `json:"variables"`
	IsActive     bool     `json:"is_active"`
}

type UpdatePreferenceRequest struct {
	IsEnabled     bool    `json:"is_enabled"`
	CustomSubject *string `json:"custom_subject"`
	CustomBody    *string `json:"custom_body"`
}

// PreferenceView merges the type catalog with any stored row for the
// preferences listing endpoint.
type PreferenceView struct {
	TypeKey     string               `json:"type_key"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    NotificationCategory `json:"category"`
	IsEnabled   bool                 `json:"is_enabled"`
	IsSystem    bool                 `json:"is_system"`
}
