package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestService_RegisterAndLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	req := RegisterRequest{
		Email:    "alice@example.com",
		Password: "supersafe",
		Name:     "Alice Hunter",
	}

	ctx := context.Background()
	user, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	if user.Email != req.Email {
		t.Fatalf("expected email %q got %q", req.Email, user.Email)
	}
	if user.PasswordHash == req.Password {
		t.Fatal("register: password stored in plaintext")
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login: expected token, got empty string")
	}
	if resp.User.Email != user.Email {
		t.Fatalf("login: expected user email %q got %q", user.Email, resp.User.Email)
	}

	subject, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject != user.Email {
		t.Fatalf("verify token: expected subject %q got %q", user.Email, subject)
	}
	if strings.Contains(resp.Token, user.PasswordHash) {
		t.Fatal("verify token: password hash embedded in token")
	}
}

func TestService_RegisterValidation(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "short",
		Name:     "Alice Hunter",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "",
		Password: "strongpassword",
		Name:     "",
	}); err == nil {
		t.Fatal("expected validation error for missing fields")
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	req := RegisterRequest{
		Email:    "alice@example.com",
		Password: "strongpassword",
		Name:     "Alice Hunter",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	req.Password = "anotherpassword"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if got := len(repo.usersByEmail); got != 1 {
		t.Fatalf("expected user count to stay 1, got %d", got)
	}
}

func TestService_LoginFailureReasons(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "irrelevant",
	})
	if !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "bob@example.com",
		Password: "rightpassword",
		Name:     "Bob Hunter",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "bob@example.com",
		Password: "wrongpassword",
	}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestService_VerifyTokenFailures(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	// Token signed with a different secret must be rejected.
	other := NewService(newFakeRepository(), "other-secret", time.Hour, 0)
	tampered, err := other.generateToken("alice@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.VerifyToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}

	// Token issued in the past beyond its TTL must report expiry.
	past := NewService(repo, "test-secret", time.Hour, 0).WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})
	expired, err := past.generateToken("alice@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.VerifyToken(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestService_DeleteUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", time.Hour, 0)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "gone@example.com",
		Password: "strongpassword",
		Name:     "Gone Soon",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), "gone@example.com"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), "gone@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

type fakeRepository struct {
	usersByEmail map[string]User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	key := strings.ToLower(params.Email)
	if _, exists := f.usersByEmail[key]; exists {
		return User{}, ErrDuplicateEmail
	}

	user := User{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: params.PasswordHash,
		Phone:        params.Phone,
		CreatedAt:    time.Now().UTC(),
	}

	f.usersByEmail[key] = user
	return user, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) DeleteByEmail(ctx context.Context, email string) error {
	key := strings.ToLower(email)
	if _, ok := f.usersByEmail[key]; !ok {
		return ErrUserNotFound
	}
	delete(f.usersByEmail, key)
	return nil
}

var _ Repository = (*fakeRepository)(nil)
