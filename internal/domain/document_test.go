package domain_test

import (
	"testing"

	"github.com/neomorfeo/homebase/internal/domain"
)

func TestParseAttachableKind(t *testing.T) {
	for _, s := range []string{"property", "listing", "lease"} {
		if _, err := domain.ParseAttachableKind(s); err != nil {
			t.Errorf("ParseAttachableKind(%q) error: %v", s, err)
		}
	}
	if _, err := domain.ParseAttachableKind("User"); err == nil {
		t.Error("expected error for a kind outside the registry")
	}
}

func TestDocumentInput_Validate(t *testing.T) {
	valid := domain.DocumentInput{
		Type:       domain.DocProofOfOwnership,
		FileName:   "deed.pdf",
		MimeType:   "application/pdf",
		Size:       2048,
		StorageKey: "documents/property/p-1/deed.pdf",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	photo := valid
	photo.Type = domain.DocPhoto
	fields := fieldNames(t, photo.Validate())
	if !fields["mime_type"] {
		t.Errorf("PDF photo should fail on mime_type, got %v", fields)
	}

	big := valid
	big.Size = domain.MaxDocumentSize + 1
	fields = fieldNames(t, big.Validate())
	if !fields["size"] {
		t.Errorf("oversized upload should fail on size, got %v", fields)
	}

	odd := valid
	odd.Type = "selfie"
	fields = fieldNames(t, odd.Validate())
	if !fields["type"] {
		t.Errorf("unknown type should fail on type, got %v", fields)
	}
}

func TestNewDocument_DefaultsLocale(t *testing.T) {
	d := domain.NewDocument("d-1", domain.AttachableRef{Kind: domain.EntityProperty, ID: "p-1"}, domain.DocumentInput{
		Type:     domain.DocPhoto,
		FileName: "front.jpg",
		MimeType: "IMAGE/JPEG",
	}, "l-1", testNow)

	if d.Locale != "en" {
		t.Errorf("Locale = %q, want %q", d.Locale, "en")
	}
	if d.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want lower-cased", d.MimeType)
	}
	if d.Status != "draft" {
		t.Errorf("Status = %q, want draft", d.Status)
	}
	if d.Target.String() != "property/p-1" {
		t.Errorf("Target = %q", d.Target.String())
	}
}
