package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	kratosclient "github.com/ory/kratos-client-go"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
)

// Trait keys in the Kratos identity schema.
const (
	traitEmail = "email"
	traitName  = "name"
)

// ClientAdapter adapts the Kratos API surface to port.KratosClient.
// All flows run as native API flows: the service authenticates with
// session tokens, never browser cookies.
type ClientAdapter struct {
	client *Client
	logger *slog.Logger
}

// NewClientAdapter creates a new adapter
func NewClientAdapter(client *Client, logger *slog.Logger) port.KratosClient {
	return &ClientAdapter{
		client: client,
		logger: logger.With("component", "kratos_adapter"),
	}
}

// SignIn runs a native password login flow and returns the resulting
// provider session with its token.
func (a *ClientAdapter) SignIn(ctx context.Context, email, password string) (*domain.ProviderSession, error) {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.
		CreateNativeLoginFlow(ctx).
		Execute()
	if err != nil {
		a.logger.Error("kratos login flow creation failed",
			"error", err,
			"http_status", statusCode(httpResp))
		return nil, a.mapError(err, httpResp, "login_flow_create")
	}

	method := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Method:     "password",
		Password:   password,
	}

	result, httpResp, err := a.client.PublicAPI().FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&method)).
		Execute()
	if err != nil {
		a.logger.Warn("kratos login flow submission failed",
			"flow_id", flow.Id,
			"http_status", statusCode(httpResp))
		return nil, a.mapError(err, httpResp, "login_flow_submit")
	}

	session := sessionFromKratos(&result.Session, result.SessionToken)

	a.logger.Info("kratos login succeeded",
		"session_id", session.ID,
		"identity_id", session.IdentityID)
	return session, nil
}

// SignUp runs a native password registration flow.
func (a *ClientAdapter) SignUp(ctx context.Context, email, password, displayName string) (*domain.ProviderSession, error) {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.
		CreateNativeRegistrationFlow(ctx).
		Execute()
	if err != nil {
		a.logger.Error("kratos registration flow creation failed",
			"error", err,
			"http_status", statusCode(httpResp))
		return nil, a.mapError(err, httpResp, "registration_flow_create")
	}

	traits := map[string]interface{}{
		traitEmail: email,
	}
	if displayName != "" {
		traits[traitName] = displayName
	}
	method := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   traits,
	}

	result, httpResp, err := a.client.PublicAPI().FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&method)).
		Execute()
	if err != nil {
		a.logger.Error("kratos registration flow submission failed",
			"flow_id", flow.Id,
			"http_status", statusCode(httpResp))
		return nil, a.mapError(err, httpResp, "registration_flow_submit")
	}

	session := sessionFromKratos(result.Session, result.SessionToken)
	if session.IdentityID == "" {
		session.IdentityID = result.Identity.Id
	}
	if session.Email == "" {
		session.Email = email
	}

	a.logger.Info("kratos registration succeeded",
		"identity_id", session.IdentityID)
	return session, nil
}

// SignOut revokes the session behind the token. A token the provider no
// longer recognizes is not an error.
func (a *ClientAdapter) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	body := kratosclient.NewPerformNativeLogoutBody(token)
	httpResp, err := a.client.PublicAPI().FrontendAPI.
		PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*body).
		Execute()
	if err != nil {
		if code := statusCode(httpResp); code == http.StatusUnauthorized || code == http.StatusNotFound {
			return nil
		}
		a.logger.Error("kratos logout failed",
			"error", err,
			"http_status", statusCode(httpResp))
		return a.mapError(err, httpResp, "logout")
	}

	return nil
}

// WhoAmI checks session liveness for a token. A dead or unknown token
// resolves to (nil, nil), not an error.
func (a *ClientAdapter) WhoAmI(ctx context.Context, token string) (*domain.ProviderSession, error) {
	if token == "" {
		return nil, nil
	}

	resp, httpResp, err := a.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		if code := statusCode(httpResp); code == http.StatusUnauthorized || code == http.StatusForbidden {
			return nil, nil
		}
		a.logger.Error("kratos session check failed",
			"error", err,
			"http_status", statusCode(httpResp))
		return nil, a.mapError(err, httpResp, "whoami")
	}

	return sessionFromKratos(resp, &token), nil
}

// UpdateDisplayName writes the name trait on an identity through the
// admin API, preserving the rest of its traits.
func (a *ClientAdapter) UpdateDisplayName(ctx context.Context, identityID, name string) error {
	identity, httpResp, err := a.client.AdminAPI().IdentityAPI.
		GetIdentity(ctx, identityID).
		Execute()
	if err != nil {
		a.logger.Error("kratos identity fetch failed",
			"identity_id", identityID,
			"error", err,
			"http_status", statusCode(httpResp))
		return a.mapError(err, httpResp, "identity_get")
	}

	traits, ok := identity.Traits.(map[string]interface{})
	if !ok {
		traits = map[string]interface{}{}
	}
	traits[traitName] = name

	body := kratosclient.UpdateIdentityBody{
		SchemaId: identity.SchemaId,
		Traits:   traits,
	}

	_, httpResp, err = a.client.AdminAPI().IdentityAPI.
		UpdateIdentity(ctx, identityID).
		UpdateIdentityBody(body).
		Execute()
	if err != nil {
		a.logger.Error("kratos identity update failed",
			"identity_id", identityID,
			"error", err,
			"http_status", statusCode(httpResp))
		return a.mapError(err, httpResp, "identity_update")
	}

	a.logger.Info("kratos display name updated", "identity_id", identityID)
	return nil
}

// mapError translates a Kratos API failure into a domain error. Bad
// credentials and rejected flows come back as 400/401 and collapse into
// domain.ErrInvalidCredentials; everything else keeps its context.
func (a *ClientAdapter) mapError(err error, httpResp *http.Response, op string) error {
	switch statusCode(httpResp) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	default:
		return fmt.Errorf("kratos %s: %w", op, err)
	}
}

func sessionFromKratos(s *kratosclient.Session, token *string) *domain.ProviderSession {
	if s == nil {
		return &domain.ProviderSession{Token: stringValue(token)}
	}

	session := &domain.ProviderSession{
		ID:        s.Id,
		Token:     stringValue(token),
		Active:    s.Active != nil && *s.Active,
		ExpiresAt: s.ExpiresAt,
	}

	if s.Identity != nil {
		session.IdentityID = s.Identity.Id
		if traits, ok := s.Identity.Traits.(map[string]interface{}); ok {
			if email, ok := traits[traitEmail].(string); ok {
				session.Email = email
			}
			if name, ok := traits[traitName].(string); ok {
				session.DisplayName = name
			}
		}
	}

	return session
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
