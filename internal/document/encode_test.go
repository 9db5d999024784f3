package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

func passportRecord(t *testing.T) Record {
	t.Helper()
	createdAt, err := time.Parse(TimeLayout, "2024-01-01 10:00:00")
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	return Record{
		ID:           "doc-1",
		Type:         TypePassport,
		Image:        []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF},
		CreatedAt:    createdAt,
		OwnerVariant: profile.VariantIndividual,
	}
}

func TestEncodePassportScenario(t *testing.T) {
	req, err := Encode(passportRecord(t), "acct-1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if req.Owner != "acct-1" {
		t.Fatalf("owner not carried: %q", req.Owner)
	}
	if req.Metadata.DocumentType != 1 {
		t.Fatalf("expected document type code 1, got %d", req.Metadata.DocumentType)
	}
	if req.Metadata.ProfileType != "Individual" {
		t.Fatalf("expected profile_type Individual, got %q", req.Metadata.ProfileType)
	}
	if req.Metadata.DateAdded != "2024-01-01 10:00:00" {
		t.Fatalf("unexpected date_added %q", req.Metadata.DateAdded)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	rec := passportRecord(t)

	first, err := Encode(rec, "acct-1")
	if err != nil {
		t.Fatalf("first encode: %v", err)
	}
	second, err := Encode(rec, "acct-1")
	if err != nil {
		t.Fatalf("second encode: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("encoding is not byte identical:\n%s\n%s", a, b)
	}
}

func TestEncodeImageRoundTrip(t *testing.T) {
	rec := passportRecord(t)
	req, err := Encode(rec, "acct-1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	image, err := DecodeImage(req.Metadata.Image)
	if err != nil {
		t.Fatalf("decode image: %v", err)
	}
	if !bytes.Equal(image, rec.Image) {
		t.Fatalf("image bytes not reproduced exactly")
	}
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	rec := passportRecord(t)
	rec.Type = Type(9)
	if _, err := Encode(rec, "acct-1"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestEncodeRequiresOwner(t *testing.T) {
	if _, err := Encode(passportRecord(t), ""); err == nil {
		t.Fatalf("expected error for empty owner")
	}
}

func TestEncodeKeepsEmptyImageExplicit(t *testing.T) {
	rec := passportRecord(t)
	rec.Image = nil
	req, err := Encode(rec, "acct-1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	data, err := json.Marshal(req.Metadata)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	if _, present := fields["image"]; !present {
		t.Fatalf("empty image field must be encoded explicitly")
	}
}

func TestQRPayloadShape(t *testing.T) {
	payload, err := QRPayload(passportRecord(t))
	if err != nil {
		t.Fatalf("qr payload: %v", err)
	}

	var fields map[string]string
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("payload must carry exactly 3 fields, got %v", fields)
	}
	if fields["document_id"] != "doc-1" || fields["document_type"] != "passport" || fields["date_added"] != "2024-01-01 10:00:00" {
		t.Fatalf("unexpected payload %v", fields)
	}
}
