package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

// Encode projects a captured record onto the ledger's canonical issuance
// schema. Pure and deterministic: identical inputs yield byte-identical
// requests. Empty optional fields are carried explicitly, never dropped.
func Encode(rec Record, ownerID string) (ledger.IssuanceRequest, error) {
	if !rec.Type.Valid() {
		return ledger.IssuanceRequest{}, fmt.Errorf("encode document %s: %w: code %d", rec.ID, ErrUnknownType, uint32(rec.Type))
	}
	if ownerID == "" {
		return ledger.IssuanceRequest{}, fmt.Errorf("encode document %s: owner account id is required", rec.ID)
	}

	return ledger.IssuanceRequest{
		Name:        rec.Type.Title(),
		Description: rec.Type.Description(),
		Owner:       ownerID,
		Metadata: ledger.Metadata{
			ID:           rec.ID,
			DocumentType: rec.Type.Code(),
			Image:        base64.StdEncoding.EncodeToString(rec.Image),
			DateAdded:    rec.DateAdded(),
			ProfileType:  string(rec.OwnerVariant),
		},
	}, nil
}

// DecodeImage reverses the metadata image encoding, reconstructing the
// original bytes exactly.
func DecodeImage(encoded string) ([]byte, error) {
	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return image, nil
}

type qrPayload struct {
	DocumentID   string `json:"document_id"`
	DocumentType string `json:"document_type"`
	DateAdded    string `json:"date_added"`
}

// QRPayload produces the verification JSON handed to the external QR
// renderer. It carries exactly the document id, textual type and capture
// timestamp.
func QRPayload(rec Record) ([]byte, error) {
	if !rec.Type.Valid() {
		return nil, fmt.Errorf("qr payload for %s: %w: code %d", rec.ID, ErrUnknownType, uint32(rec.Type))
	}
	return json.Marshal(qrPayload{
		DocumentID:   rec.ID,
		DocumentType: rec.Type.String(),
		DateAdded:    rec.DateAdded(),
	})
}
