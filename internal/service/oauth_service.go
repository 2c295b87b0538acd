package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alkulous-relay/internal/config"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateTTL     = 10 * time.Minute
)

type IOAuthService interface {
	// GetLoginURL issues a single-use state and returns Google's consent URL.
	GetLoginURL() string
	// HandleCallback verifies state, exchanges the code, upserts the user and
	// opens a session. It returns the session cookie value.
	HandleCallback(ctx context.Context, state, code string) (string, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
}

// UserInfoFetcher loads the Google profile for an access token.
type UserInfoFetcher func(ctx context.Context, client *http.Client) (*dto.GoogleUserInfo, error)

type oauthService struct {
	uowFactory    unitofwork.RepositoryFactory
	sessions      ISessionService
	googleConf    *oauth2.Config
	states        *cache.Cache
	fetchUserInfo UserInfoFetcher
	logger        logger.ILogger
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions ISessionService,
	cfg config.AuthConfig,
	log logger.ILogger,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	if cfg.GoogleClientID == "" {
		log.Warn("OAuthService", "GOOGLE_CLIENT_ID is empty; Google login will fail", nil)
	}

	return &oauthService{
		uowFactory:    uowFactory,
		sessions:      sessions,
		googleConf:    conf,
		states:        cache.New(oauthStateTTL, 2*oauthStateTTL),
		fetchUserInfo: fetchGoogleUserInfo,
		logger:        log,
	}
}

func (s *oauthService) GetLoginURL() string {
	state := uuid.NewString()
	s.states.Set(state, struct{}{}, cache.DefaultExpiration)
	return s.googleConf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (s *oauthService) HandleCallback(ctx context.Context, state, code string) (string, error) {
	if _, ok := s.states.Get(state); !ok || state == "" {
		return "", ErrInvalidOAuthState
	}
	s.states.Delete(state)

	if code == "" {
		return "", fmt.Errorf("missing authorization code")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, s.googleConf.Client(ctx, token))
	if err != nil {
		return "", err
	}

	user := userFromGoogle(info)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().Upsert(ctx, user); err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	s.logger.Info("OAuthService", "User signed in", map[string]interface{}{"user_id": user.Id, "email": user.Email})

	return s.sessions.Create(ctx, entity.SessionPrincipal{
		Id:              user.Id,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageUrl: user.ProfileImageUrl,
		AccessToken:     token.AccessToken,
		RefreshToken:    token.RefreshToken,
		ExpiresAt:       time.Now().Add(PrincipalTTL).Unix(),
	})
}

func (s *oauthService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.UserResponse{
		AuthUserDTO: dto.AuthUserDTO{
			Id:              user.Id,
			Email:           user.Email,
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			ProfileImageUrl: user.ProfileImageUrl,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// userFromGoogle falls back to splitting the display name when Google
// omits given/family names.
func userFromGoogle(info *dto.GoogleUserInfo) *entity.User {
	first, last := info.GivenName, info.FamilyName
	parts := strings.Fields(info.Name)
	if first == "" && len(parts) > 0 {
		first = parts[0]
	}
	if last == "" && len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}

	return &entity.User{
		Id:              info.ID,
		Email:           info.Email,
		FirstName:       first,
		LastName:        last,
		ProfileImageUrl: info.Picture,
	}
}

func fetchGoogleUserInfo(ctx context.Context, client *http.Client) (*dto.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed: status %d", resp.StatusCode)
	}

	var info dto.GoogleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("user info missing id")
	}
	return &info, nil
}
