package identification

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDGenerator generates URNs of version 1 UUIDs (RFC 4122).
//
// uuid.NewUUID advances the clock sequence whenever the clock did not move
// forward since the previous call, so rapid successive calls stay unique.
type UUIDGenerator struct{}

var _ Generator = (*UUIDGenerator)(nil)

// NewUUIDGenerator creates a UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// GenerateID returns "urn:uuid:" followed by a fresh time-based UUID. The
// proposal is ignored.
func (g *UUIDGenerator) GenerateID(string) (string, error) {
	u, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return "urn:uuid:" + u.String(), nil
}
