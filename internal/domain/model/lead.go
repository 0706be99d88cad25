package model

import "time"

// Lead is what gets forwarded to the CRM for one accepted submission.
type Lead struct {
	Name      string
	Email     string
	Company   string
	Phone     string
	Message   string
	Source    string
	Timestamp time.Time
}

// Delivery is the CRM's answer for one Lead.
type Delivery struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	ContactID string `json:"contactId,omitempty"`
}
