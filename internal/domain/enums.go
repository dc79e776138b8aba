package domain

import (
	"slices"
	"strings"
)

// Products lists the products a document can be filed against.
var Products = []string{"Bevaloid", "Calcium Propionate", "Citric Acid", "Citric Acid Anhydrous", "Peptan"}

// DocTypes lists the accepted document types.
var DocTypes = []string{"Allergen", "COA", "GMO", "Prodn Flow", "SDS", "Other"}

// Suppliers lists the suppliers documents are received from.
var Suppliers = []string{"Bakery", "Ensign", "Health Nutrition", "XX", "YY"}

// Options groups the dropdown values offered by the intake form.
type Options struct {
	Products  []string `json:"products"`
	DocTypes  []string `json:"doc_types"`
	Suppliers []string `json:"suppliers"`
}

// FormOptions returns copies of the fixed option sets.
func FormOptions() Options {
	return Options{
		Products:  slices.Clone(Products),
		DocTypes:  slices.Clone(DocTypes),
		Suppliers: slices.Clone(Suppliers),
	}
}

// IsProduct reports whether v is one of Products.
func IsProduct(v string) bool { return slices.Contains(Products, v) }

// IsDocType reports whether v is one of DocTypes.
func IsDocType(v string) bool { return slices.Contains(DocTypes, v) }

// IsSupplier reports whether v is one of Suppliers.
func IsSupplier(v string) bool { return slices.Contains(Suppliers, v) }

// PDFExtension is the only file extension the intake accepts.
const PDFExtension = ".pdf"

// PDFContentType is the MIME type sent with uploaded documents.
const PDFContentType = "application/pdf"

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Outcome labels the result of one submission attempt.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeConfigError     Outcome = "config_error"
	OutcomeRemoteError     Outcome = "remote_error"
	OutcomeInternalError   Outcome = "internal_error"
)

// HasPDFExtension reports whether name ends in .pdf, ignoring case.
func HasPDFExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), PDFExtension)
}

// PDFFileName appends the .pdf extension unless name already has it.
func PDFFileName(name string) string {
	if HasPDFExtension(name) {
		return name
	}
	return name + PDFExtension
}
