// Package model contains domain models passed between layers.
package model

// FormKind identifies which intake form a submission came from.
type FormKind string

// Known form kinds. The values double as rate-limit namespaces and metric labels.
const (
	FormContact FormKind = "contact"
	FormPartner FormKind = "partner"
)

// PartnerIntent is the discriminator value a partner application must carry.
const PartnerIntent = "partner"

// Canonical partner types. Matching is exact: case and punctuation sensitive.
const (
	PartnerReseller        = "Reseller"
	PartnerServiceProvider = "Service Provider"
	PartnerConsulting      = "Consulting"
	PartnerBuild           = "Build"
)

// PartnerTypes lists the accepted partner types in display order.
func PartnerTypes() []string {
	return []string{PartnerReseller, PartnerServiceProvider, PartnerConsulting, PartnerBuild}
}

// Submission is one inbound form request.
type Submission interface {
	Kind() FormKind
}

// GeneralContact is the sales contact form.
type GeneralContact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,basic_email"`
	Company string `json:"company" validate:"required"`
	Message string `json:"message" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Kind implements Submission.
func (GeneralContact) Kind() FormKind { return FormContact }

// PartnerApplication is the partner program application form.
type PartnerApplication struct {
	Intent          string `json:"intent" validate:"required,eq=partner"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,basic_email"`
	Company         string `json:"company" validate:"required"`
	PartnerType     string `json:"partnerType" validate:"required,oneof=Reseller 'Service Provider' Consulting Build"`
	Regions         string `json:"regions" validate:"required"`
	BusinessSummary string `json:"businessSummary" validate:"required"`
	Website         string `json:"website,omitempty"`
	AdditionalInfo  string `json:"additionalInfo,omitempty"`
}

// Kind implements Submission.
func (PartnerApplication) Kind() FormKind { return FormPartner }
