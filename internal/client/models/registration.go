package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// RegistrationStatus is the review state of a sign-up request.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// RegistrationRequest is posted by the sign-up flow. The account is only
// created once an administrator approves it.
type RegistrationRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	RequestedRoleID int    `json:"requested_role"`
	Reason          string `json:"reason,omitempty"`
}

// RegistrationReceipt is returned after a successful sign-up submission.
type RegistrationReceipt struct {
	Message        string             `json:"message"`
	RegistrationID int                `json:"registration_id"`
	Username       string             `json:"username"`
	Status         RegistrationStatus `json:"status"`
}

// Registration is a sign-up request as seen by administrators.
type Registration struct {
	ID            int                `json:"id"`
	Username      string             `json:"username"`
	Email         string             `json:"email"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	PhoneNumber   string             `json:"phone_number"`
	RequestedRole RoleRef            `json:"requested_role"`
	Reason        string             `json:"reason"`
	Status        RegistrationStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	ReviewedAt    *time.Time         `json:"reviewed_at"`
	AdminNotes    string             `json:"admin_notes"`
}

// ReviewRequest carries the administrator's notes for approve/reject.
type ReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ReviewResult is returned by the approve and reject endpoints.
type ReviewResult struct {
	Message        string `json:"message"`
	RegistrationID int    `json:"registration_id,omitempty"`
	UserID         int    `json:"user_id,omitempty"`
	Username       string `json:"username,omitempty"`
}

// RoleRef is a role reference that the backend renders either as a bare id
// or as a nested role object.
type RoleRef struct {
	Role
}

func (r *RoleRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return json.Unmarshal(b, &r.Role)
	}
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &r.Role.ID)
}
