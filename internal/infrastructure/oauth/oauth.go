package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"medbook-api/config"
	"medbook-api/internal/domain/user"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,picture"
)

// Profile is the subset of a provider account we persist.
type Profile struct {
	ProviderID string
	Email      string
	FullName   string
	Avatar     string
}

type Client struct {
	google   *oauth2.Config
	facebook *oauth2.Config
}

func New(cfg config.OAuth) *Client {
	return &Client{
		google: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		facebook: &oauth2.Config{
			ClientID:     cfg.Facebook.ClientID,
			ClientSecret: cfg.Facebook.ClientSecret,
			RedirectURL:  cfg.Facebook.RedirectURL,
			Scopes:       []string{"email"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

func (c *Client) config(authType user.AuthType) (*oauth2.Config, error) {
	switch authType {
	case user.AuthGoogle:
		return c.google, nil
	case user.AuthFacebook:
		return c.facebook, nil
	}
	return nil, ErrUnknownProvider
}

func (c *Client) AuthURL(authType user.AuthType, state string) (string, error) {
	conf, err := c.config(authType)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// FetchProfile exchanges the callback code and loads the account profile
// from the provider's userinfo endpoint.
func (c *Client) FetchProfile(ctx context.Context, authType user.AuthType, code string) (*Profile, error) {
	conf, err := c.config(authType)
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}

	var infoURL string
	switch authType {
	case user.AuthGoogle:
		infoURL = googleUserInfoURL
	case user.AuthFacebook:
		infoURL = facebookUserInfoURL
	}

	resp, err := conf.Client(ctx, tok).Get(infoURL)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth userinfo request: status %d", resp.StatusCode)
	}

	switch authType {
	case user.AuthGoogle:
		var raw struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, err
		}
		return &Profile{ProviderID: raw.ID, Email: raw.Email, FullName: raw.Name, Avatar: raw.Picture}, nil
	default:
		var raw struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			} `json:"picture"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, err
		}
		return &Profile{ProviderID: raw.ID, Email: raw.Email, FullName: raw.Name, Avatar: raw.Picture.Data.URL}, nil
	}
}
