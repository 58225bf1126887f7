package security

import "github.com/google/uuid"

// identityNamespace anchors deterministic UUIDs derived from provider
// identity ids that are not themselves UUIDs.
var identityNamespace = uuid.MustParse("7d9a4c52-3b1e-4f60-9c0d-2a8f5e6b1c43")

// IdentityUUID maps an identity-provider identity id onto a UUID. Kratos
// ids are already UUIDs; anything else maps deterministically so the
// same provider identity always resolves to the same uid.
func IdentityUUID(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(identityNamespace, []byte(id))
}
