package sso

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

var twitterEndpoint = oauth2.Endpoint{
	AuthURL:   "https://twitter.com/i/oauth2/authorize",
	TokenURL:  "https://api.twitter.com/2/oauth2/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

// TwitterProvider authenticates through the X (Twitter) OAuth 2.0 flow.
// The v2 users endpoint does not expose an email address, so Identity.Email
// may be empty; callers decide whether to reject such accounts.
type TwitterProvider struct {
	cfg *oauth2.Config
}

// NewTwitter builds the Twitter provider. Returns nil when the client
// credentials are not configured.
func NewTwitter(clientID, clientSecret, redirectURL string) *TwitterProvider {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &TwitterProvider{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     twitterEndpoint,
		Scopes:       []string{"users.read", "tweet.read"},
	}}
}

func (p *TwitterProvider) Name() string { return "twitter" }

func (p *TwitterProvider) AuthCodeURL(state string) string {
	// X requires PKCE on all OAuth 2.0 flows. The random state doubles as
	// the plain-method verifier: the caller already keeps it in the state
	// cookie, so the callback can replay it without extra storage.
	return p.cfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", state),
		oauth2.SetAuthURLParam("code_challenge_method", "plain"),
	)
}

func (p *TwitterProvider) Exchange(ctx context.Context, code, verifier string) (*Identity, error) {
	token, err := p.cfg.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return nil, fmt.Errorf("twitter token exchange: %w", err)
	}
	client := p.cfg.Client(ctx, token)

	var out struct {
		Data struct {
			ID              string `json:"id"`
			Name            string `json:"name"`
			Username        string `json:"username"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"data"`
	}
	endpoint := "https://api.twitter.com/2/users/me?user.fields=profile_image_url"
	if err := getJSON(ctx, client, endpoint, &out); err != nil {
		return nil, fmt.Errorf("twitter profile fetch: %w", err)
	}

	name := out.Data.Name
	if name == "" {
		name = out.Data.Username
	}
	return &Identity{
		Provider:   p.Name(),
		ProviderID: out.Data.ID,
		Email:      "",
		Name:       name,
		AvatarURL:  out.Data.ProfileImageURL,
	}, nil
}
