package domain

import (
	"fmt"
	"strings"
	"time"
)

// AttachableKinds is the closed set of entity kinds documents may attach to.
var AttachableKinds = []EntityKind{EntityProperty, EntityListing, EntityLease}

// ParseAttachableKind returns the kind matching s or a ValidationError.
func ParseAttachableKind(s string) (EntityKind, error) {
	for _, k := range AttachableKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", NewValidationError("kind", fmt.Sprintf("unknown attachable kind %q", s))
}

// AttachableRef points at the entity a document belongs to.
type AttachableRef struct {
	Kind EntityKind
	ID   string
}

func (r AttachableRef) String() string {
	return string(r.Kind) + "/" + r.ID
}

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocLetterOfIntent    DocumentType = "letter_of_intent"
	DocRentalAgreement   DocumentType = "rental_agreement"
	DocProofOfOwnership  DocumentType = "proof_of_ownership"
	DocPaintRefund       DocumentType = "paint_refund"
	DocInventoryForm     DocumentType = "inventory_form"
	DocUtilitiesForm     DocumentType = "utilities_form"
	DocPhoto             DocumentType = "photo"
	DocCadastralSurvey   DocumentType = "cadastral_survey"
	DocEnergyCertificate DocumentType = "energy_certificate"
	DocOther             DocumentType = "other"
)

// MaxDocumentSize is the upload limit enforced by the file store (10 MiB).
const MaxDocumentSize = 10 << 20

var photoMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var documentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/jpg":          true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DocumentInput is the metadata of a file already stored by the file store.
type DocumentInput struct {
	Type        DocumentType `json:"type" validate:"required,oneof=letter_of_intent rental_agreement proof_of_ownership paint_refund inventory_form utilities_form photo cadastral_survey energy_certificate other"`
	FileName    string       `json:"file_name" validate:"required,max=255"`
	MimeType    string       `json:"mime_type" validate:"required"`
	Size        int64        `json:"size" validate:"gte=0"`
	StorageKey  string       `json:"storage_key" validate:"required,max=500"`
	Locale      string       `json:"locale,omitempty" validate:"omitempty,oneof=en it"`
	Description string       `json:"description,omitempty" validate:"max=500"`
}

// Validate checks the metadata and the MIME type allowed for the document type.
func (in DocumentInput) Validate() error {
	verr := validateStruct(in)
	if in.Size > MaxDocumentSize {
		verr = verr.add("size", fmt.Sprintf("must be at most %d bytes", MaxDocumentSize))
	}
	mime := strings.ToLower(in.MimeType)
	if in.Type == DocPhoto {
		if !photoMimeTypes[mime] {
			verr = verr.add("mime_type", "photos must be JPEG, PNG, or WebP")
		}
	} else if in.MimeType != "" && !documentMimeTypes[mime] {
		verr = verr.add("mime_type", "documents must be PDF, JPEG, PNG, DOC, or DOCX")
	}
	return verr.asError()
}

// Document is a file attached to a property, listing or lease.
type Document struct {
	ID          string
	Target      AttachableRef
	Type        DocumentType
	FileName    string
	MimeType    string
	Size        int64
	StorageKey  string
	Locale      string
	Status      string
	UploadedBy  string
	Description string
	CreatedAt   time.Time
}

// NewDocument creates a draft document from validated input.
func NewDocument(id string, target AttachableRef, in DocumentInput, uploadedBy string, now time.Time) Document {
	locale := in.Locale
	if locale == "" {
		locale = "en"
	}
	return Document{
		ID:          id,
		Target:      target,
		Type:        in.Type,
		FileName:    in.FileName,
		MimeType:    strings.ToLower(in.MimeType),
		Size:        in.Size,
		StorageKey:  in.StorageKey,
		Locale:      locale,
		Status:      "draft",
		UploadedBy:  uploadedBy,
		Description: in.Description,
		CreatedAt:   now,
	}
}
