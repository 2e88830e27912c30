package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
	repo "github.com/jobboardhq/jobboard-api/internal/domain/repository"
	"github.com/jobboardhq/jobboard-api/pkg/helpers"
	"github.com/jobboardhq/jobboard-api/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmployerDetails    = errors.New("missing organization details for employer")
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service implements the account registration and authentication flow.
// Redis, Pub, ES, and GCS are optional; a nil client disables the
// corresponding side effect.
type Service struct {
	Repo            repo.AccountRepository
	JWT             *helpers.JWTManager
	Redis           *redis.Client
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	ES              *elasticsearch.Client
	ESAccountsIndex string
	GCS             *storage.Client
	GCSBucket       string

	VerifyEmailURL  string
	VerifyTokenTTL  time.Duration
	MailSendEnabled bool
}

func NewService(repo repo.AccountRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *Service {
	return &Service{
		Repo:           repo,
		JWT:            jwt,
		Redis:          rdb,
		Logger:         logger,
		VerifyTokenTTL: time.Hour,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role

	OrganizationName string
	IndustryType     string
	TotalEmployee    *int
	Description      string
	Address          string
	Province         string
	City             string
	District         string
	PostalCode       string
}

// Register creates a new account. The email uniqueness check is advisory;
// the unique index on accounts.email is what makes it race-safe.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if in.Role == entity.RoleEmployer && (in.OrganizationName == "" || in.IndustryType == "") {
		return nil, ErrEmployerDetails
	}

	if existing, err := s.Repo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	tok, err := randomToken(32)
	if err != nil {
		return nil, err
	}
	exp := time.Now().Add(s.VerifyTokenTTL)

	a := &entity.Account{
		Name:              in.Name,
		Email:             in.Email,
		Password:          hash,
		Role:              in.Role,
		OrganizationName:  in.OrganizationName,
		IndustryType:      in.IndustryType,
		TotalEmployee:     in.TotalEmployee,
		Description:       in.Description,
		Address:           in.Address,
		Province:          in.Province,
		City:              in.City,
		District:          in.District,
		PostalCode:        in.PostalCode,
		VerifyToken:       tok,
		VerifyTokenExpiry: &exp,
	}

	if err := s.Repo.Create(a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueVerifyEmail(ctx, a)
	_ = s.indexAccount(ctx, a)
	return a, nil
}

// Login validates credentials and issues a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.Account, string, time.Time, error) {
	a, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrAccountNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("account lookup failed")
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(a.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate token failed")
		}
		return nil, "", time.Time{}, err
	}
	return a, token, exp, nil
}

// Logout verifies the presented token and denylists it until its natural
// expiry. Without Redis the call degrades to verification only.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return ErrInvalidToken
	}
	if s.Redis == nil {
		if s.Logger != nil {
			s.Logger.Warn("logout without redis: token not revoked")
		}
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := helpers.RevokeToken(ctx, s.Redis, token, ttl); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("token revocation failed")
		}
	}
	return nil
}

func (s *Service) GetProfile(id string) (*entity.Account, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Error("account lookup failed")
		}
		return nil, err
	}
	return a, nil
}

type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string

	OrganizationName string
	IndustryType     string
	TotalEmployee    *int
	Description      string
	Address          string
	Province         string
	City             string
	District         string
	PostalCode       string
}

// UpdateProfile applies only the fields present in the input. A new password
// is rehashed; everything else is a plain overwrite.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*entity.Account, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Error("account lookup failed")
		}
		return nil, err
	}
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Email != "" {
		a.Email = in.Email
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		a.Password = hash
	}
	if in.OrganizationName != "" {
		a.OrganizationName = in.OrganizationName
	}
	if in.IndustryType != "" {
		a.IndustryType = in.IndustryType
	}
	if in.TotalEmployee != nil {
		a.TotalEmployee = in.TotalEmployee
	}
	if in.Description != "" {
		a.Description = in.Description
	}
	if in.Address != "" {
		a.Address = in.Address
	}
	if in.Province != "" {
		a.Province = in.Province
	}
	if in.City != "" {
		a.City = in.City
	}
	if in.District != "" {
		a.District = in.District
	}
	if in.PostalCode != "" {
		a.PostalCode = in.PostalCode
	}

	if err := s.Repo.Update(a); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	_ = s.indexAccount(ctx, a)
	return a, nil
}

// DeleteAccount removes the account by id.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// ConfirmVerification consumes a verification token and marks the account
// verified.
func (s *Service) ConfirmVerification(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidVerifyToken
	}
	a, err := s.Repo.GetByVerifyToken(token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidVerifyToken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("verification token lookup failed")
		}
		return err
	}
	if a.VerifyTokenExpiry == nil || time.Now().After(*a.VerifyTokenExpiry) {
		return ErrInvalidVerifyToken
	}
	if err := s.Repo.SetVerified(a.ID); err != nil {
		return err
	}
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       a.Email,
		Template: mailer.TplWelcome,
		Data:     map[string]any{"Name": a.Name},
	})
	return nil
}

// ResendVerification re-issues the verification token and enqueues a fresh
// email. Idempotent for accounts that are already verified.
func (s *Service) ResendVerification(ctx context.Context, id string) (bool, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Error("account lookup failed")
		}
		return false, err
	}
	if a.IsVerified {
		return true, nil
	}
	tok, err := randomToken(32)
	if err != nil {
		return false, err
	}
	exp := time.Now().Add(s.VerifyTokenTTL)
	a.VerifyToken = tok
	a.VerifyTokenExpiry = &exp
	if err := s.Repo.Update(a); err != nil {
		return false, err
	}
	s.enqueueVerifyEmail(ctx, a)
	return false, nil
}

// UploadAvatar stores an avatar in GCS and records its public URL.
func (s *Service) UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string) (string, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Error("account lookup failed")
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	a.AvatarURL = url
	if err := s.Repo.Update(a); err != nil {
		return "", err
	}
	_ = s.indexAccount(ctx, a)
	return url, nil
}

func (s *Service) enqueueVerifyEmail(ctx context.Context, a *entity.Account) {
	expiresIn := s.VerifyTokenTTL
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       a.Email,
		Template: mailer.TplVerifyEmail,
		Data: map[string]any{
			"Name":      a.Name,
			"VerifyURL": s.VerifyEmailURL + "?token=" + a.VerifyToken,
			"ExpiresIn": expiresIn.String(),
		},
	})
}

func (s *Service) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to publish email job")
	}
}

func (s *Service) indexAccount(ctx context.Context, a *entity.Account) error {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":                a.ID,
		"email":             a.Email,
		"name":              a.Name,
		"role":              a.Role.String(),
		"organization_name": a.OrganizationName,
		"industry_type":     a.IndustryType,
		"avatar_url":        a.AvatarURL,
		"created_at":        a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":        a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESAccountsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchAccounts performs a multi_match search on name, email, and
// organization name.
func (s *Service) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name", "organization_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESAccountsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
