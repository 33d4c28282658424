package leads

import (
	"strings"
	"time"
)

// Lead is a captured sales prospect. Field tags match the remote table's column names.
type Lead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	LeadSource string    `json:"leadsource"`
	CreatedAt  time.Time `json:"createdat"`
}

// LeadFormData is what the creation form supplies. The store assigns id and createdat.
type LeadFormData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LeadSource string `json:"leadsource"`
}

// Field names a validatable form field.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldLeadSource Field = "leadsource"
)

// SortField is a column the list view can be ordered by.
type SortField string

const (
	SortByName       SortField = "name"
	SortByEmail      SortField = "email"
	SortByLeadSource SortField = "leadsource"
	SortByCreatedAt  SortField = "createdat"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SuggestedSources is the fixed list offered by the form. Validation does not enforce it.
var SuggestedSources = []string{
	"Website",
	"Social Media",
	"Email Campaign",
	"Referral",
	"Cold Call",
	"Event",
	"Advertisement",
	"Other",
}

// ParseSortField accepts a field name case-insensitively. Empty input yields the default field.
func ParseSortField(raw string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultSort.Field, nil
	case SortByName:
		return SortByName, nil
	case SortByEmail:
		return SortByEmail, nil
	case SortByLeadSource:
		return SortByLeadSource, nil
	case SortByCreatedAt:
		return SortByCreatedAt, nil
	}
	return "", ErrInvalidSortField
}

// ParseSortOrder accepts asc/desc case-insensitively. Empty input yields the default order.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultSort.Order, nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", ErrInvalidSortOrder
}
