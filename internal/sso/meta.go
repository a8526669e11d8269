package sso

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// MetaProvider authenticates through Facebook Login and reads the profile
// from the Graph API.
type MetaProvider struct {
	cfg *oauth2.Config
}

// NewMeta builds the Meta provider. Returns nil when the client credentials
// are not configured.
func NewMeta(clientID, clientSecret, redirectURL string) *MetaProvider {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &MetaProvider{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     facebook.Endpoint,
		Scopes:       []string{"email", "public_profile"},
	}}
}

func (p *MetaProvider) Name() string { return "meta" }

func (p *MetaProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *MetaProvider) Exchange(ctx context.Context, code, _ string) (*Identity, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("meta token exchange: %w", err)
	}
	client := p.cfg.Client(ctx, token)

	q := url.Values{}
	q.Set("fields", "id,name,email,picture.type(large)")
	var user struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	endpoint := "https://graph.facebook.com/v12.0/me?" + q.Encode()
	if err := getJSON(ctx, client, endpoint, &user); err != nil {
		return nil, fmt.Errorf("meta profile fetch: %w", err)
	}

	return &Identity{
		Provider:   p.Name(),
		ProviderID: user.ID,
		Email:      user.Email,
		Name:       user.Name,
		AvatarURL:  user.Picture.Data.URL,
	}, nil
}
