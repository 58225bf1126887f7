package domain

import "time"

// ProviderSession is the anti-corruption projection of an identity
// provider session. The provider's wire protocol stays behind the
// kratos driver; everything above sees only this.
type ProviderSession struct {
	ID          string
	Token       string
	IdentityID  string
	Email       string
	DisplayName string
	Active      bool
	ExpiresAt   *time.Time
}

// IsActive reports whether the provider still considers the session live.
func (p *ProviderSession) IsActive() bool {
	if p == nil || !p.Active {
		return false
	}
	if p.ExpiresAt != nil && time.Now().After(*p.ExpiresAt) {
		return false
	}
	return true
}
