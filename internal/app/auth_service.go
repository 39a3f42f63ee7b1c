package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/company"
	"careerbridge/internal/domain/student"
	"careerbridge/internal/domain/user"
	"careerbridge/internal/security"
)

const bcryptCost = 10

type AuthService struct {
	students  student.Repository
	companies company.Repository
	tokens    *security.TokenProvider
	tokenTTL  time.Duration
}

func NewAuthService(students student.Repository, companies company.Repository, tokens *security.TokenProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{students: students, companies: companies, tokens: tokens, tokenTTL: tokenTTL}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      user.Role `json:"role"`
	UserID    common.ID `json:"userId"`
}

func (s *AuthService) RegisterStudent(ctx context.Context, name, email, password string) (*student.Student, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "student already exists", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.students.Create(ctx, student.Student{Name: name, Email: email, PasswordHash: hash})
}

func (s *AuthService) RegisterCompany(ctx context.Context, name, email, password string) (*company.Company, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}
	if _, err := s.companies.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "company already exists", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.companies.Create(ctx, company.Company{Name: name, Email: email, PasswordHash: hash})
}

// Login authenticates against the collection matching the requested role.
// A wrong password and an unknown email produce the same error so the
// response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*LoginResult, error) {
	parsedRole, ok := user.ParseRole(role)
	if !ok {
		return nil, common.NewValidationError("invalid role", map[string]string{"role": "role must be student or company"})
	}
	id, hash, err := s.lookupCredentials(ctx, normalizeEmail(email), parsedRole)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	token, expiresAt, err := s.tokens.Generate(id, parsedRole, s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Role: parsedRole, UserID: id}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword, role string) error {
	parsedRole, ok := user.ParseRole(role)
	if !ok {
		return common.NewValidationError("invalid role", map[string]string{"role": "role must be student or company"})
	}
	if len(newPassword) < 6 {
		return common.NewValidationError("invalid password", map[string]string{"newPassword": "password must be at least 6 characters"})
	}
	id, _, err := s.lookupCredentials(ctx, normalizeEmail(email), parsedRole)
	if err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if parsedRole == user.RoleStudent {
		return s.students.UpdatePassword(ctx, id, hash)
	}
	return s.companies.UpdatePassword(ctx, id, hash)
}

func (s *AuthService) lookupCredentials(ctx context.Context, email string, role user.Role) (common.ID, string, error) {
	if role == user.RoleStudent {
		account, err := s.students.GetByEmail(ctx, email)
		if err != nil {
			return "", "", err
		}
		return account.ID, account.PasswordHash, nil
	}
	account, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	return account.ID, account.PasswordHash, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "name is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid registration", fields)
	}
	return nil
}
