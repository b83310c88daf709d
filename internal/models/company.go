package models

import (
	"strings"
	"time"
)

// Company is a brokerage or ownership entity. It owns contacts and
// objects; deleting a company cascades to both.
type Company struct {
	ID          int64     `json:"id" db:"company_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	LogoURL     *string   `json:"logo_url" db:"logo_url"`
	Website     string    `json:"website" db:"website"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// List-screen counters, populated on list queries only.
	ContactCount int `json:"contact_count"`
	ObjectCount  int `json:"object_count"`
}

func (co *Company) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(co.Name) == "" {
		errs["name"] = "name is required"
	}
	return errs.OrNil()
}

// Contact is a person affiliated with a company. At most one contact
// per company may carry the primary flag; the store enforces that with
// a partial unique index, not application code.
type Contact struct {
	ID             int64  `json:"id" db:"contact_id"`
	CompanyID      int64  `json:"company_id" db:"company_id"`
	UserID         *int64 `json:"user_id" db:"user_id"`
	FirstName      string `json:"first_name" db:"first_name"`
	LastName       string `json:"last_name" db:"last_name"`
	Email          string `json:"email" db:"email"`
	Phone          string `json:"phone" db:"phone"`
	IsPrimary      bool   `json:"is_primary" db:"is_primary"`
	TelegramChatID string `json:"telegram_chat_id" db:"telegram_chat_id"`
}

func (ct *Contact) FullName() string {
	return strings.TrimSpace(ct.FirstName + " " + ct.LastName)
}

func (ct *Contact) Validate() error {
	errs := FieldErrors{}
	if ct.CompanyID == 0 {
		errs["company_id"] = "company is required"
	}
	if strings.TrimSpace(ct.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(ct.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	email := strings.TrimSpace(ct.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		errs["email"] = "invalid email address"
	}
	return errs.OrNil()
}

// Agent is an internal user representing a company, optionally linked
// to a messaging-platform identity for the bot integration.
type Agent struct {
	ID             int64  `json:"id" db:"agent_id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	CompanyID      int64  `json:"company_id" db:"company_id"`
	TelegramChatID string `json:"telegram_chat_id" db:"telegram_chat_id"`
	IsActive       bool   `json:"is_active" db:"is_active"`
}

func (a *Agent) Validate() error {
	errs := FieldErrors{}
	if a.UserID == 0 {
		errs["user_id"] = "user is required"
	}
	if a.CompanyID == 0 {
		errs["company_id"] = "company is required"
	}
	return errs.OrNil()
}
