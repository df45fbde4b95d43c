package doctor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// -- Mock Repository --

type mockRepo struct {
	byEmail map[string]*Doctor
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byEmail: make(map[string]*Doctor), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	if _, ok := m.byEmail[d.Email]; ok {
		return ErrEmailTaken
	}
	d.ID = m.nextID
	m.nextID++
	d.CreatedAt = time.Now()
	m.byEmail[d.Email] = d
	return nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	d, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

type fakeIssuer struct {
	lastSubject string
}

func (f *fakeIssuer) Issue(subject string) (string, error) {
	f.lastSubject = subject
	return "token-for-" + subject, nil
}

func newTestService() (*Service, *fakeIssuer) {
	issuer := &fakeIssuer{}
	return NewService(newMockRepo(), issuer, bcrypt.MinCost), issuer
}

func TestService_Register(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Register(context.Background(), "Dr. Jane Smith", "jane@clinic.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 {
		t.Error("expected assigned id")
	}
	if d.PasswordHash == "secret123" || d.PasswordHash == "" {
		t.Error("password must be stored as a bcrypt hash")
	}
	if !strings.HasPrefix(d.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", d.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("hash does not verify against the original password: %v", err)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), "Dr. A", "a@clinic.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), "Dr. B", "a@clinic.com", "different")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	svc, issuer := newTestService()

	if _, err := svc.Register(context.Background(), "Dr. A", "a@clinic.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok, err := svc.Login(context.Background(), "a@clinic.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "token-for-a@clinic.com" {
		t.Errorf("unexpected token %q", tok)
	}
	if issuer.lastSubject != "a@clinic.com" {
		t.Errorf("token subject should be the email, got %q", issuer.lastSubject)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), "Dr. A", "a@clinic.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), "a@clinic.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	// Unknown email and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), "nobody@clinic.com", "secret123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
