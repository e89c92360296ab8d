package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matryer/is"
)

func TestSharedPassword(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	p, err := NewSharedPassword("admin123", "")
	is.NoErr(err)
	is.True(p.Authenticate(ctx, "admin123"))
	is.True(!p.Authenticate(ctx, "admin1234"))
	is.True(!p.Authenticate(ctx, ""))
}

func TestSharedPasswordLongSecrets(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	secret := strings.Repeat("p", 72)
	p, err := NewSharedPassword(secret, "")
	is.NoErr(err)
	is.True(p.Authenticate(ctx, secret))
	is.True(!p.Authenticate(ctx, secret+"WRONG-SUFFIX"))
	is.True(!p.Authenticate(ctx, secret[:71]))

	long := strings.Repeat("q", 100)
	p, err = NewSharedPassword(long, "")
	is.NoErr(err)
	is.True(p.Authenticate(ctx, long))
	is.True(!p.Authenticate(ctx, long[:72]))

	h, err := HashPassword(long)
	is.NoErr(err)
	p, err = NewSharedPassword("", h)
	is.NoErr(err)
	is.True(p.Authenticate(ctx, long))
}

func TestSharedPasswordFromHash(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	h, err := HashPassword("s3cret")
	is.NoErr(err)

	p, err := NewSharedPassword("ignored", h)
	is.NoErr(err)
	is.True(p.Authenticate(ctx, "s3cret"))
	is.True(!p.Authenticate(ctx, "ignored"))

	_, err = NewSharedPassword("", "not-a-bcrypt-hash")
	is.True(err != nil)
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	is := is.New(t)
	s := NewSessions("secret")

	rec := httptest.NewRecorder()
	is.NoErr(s.Issue(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil)))
	c := cookieFrom(t, rec)
	is.True(c.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(c)
	is.NoErr(s.Verify(req))
}

func TestSessionMissing(t *testing.T) {
	s := NewSessions("secret")
	err := s.Verify(httptest.NewRequest(http.MethodGet, "/admin", nil))
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("Verify() => %v, want ErrNoSession", err)
	}
}

func TestSessionWrongSecret(t *testing.T) {
	is := is.New(t)

	rec := httptest.NewRecorder()
	is.NoErr(NewSessions("one").Issue(rec, httptest.NewRequest(http.MethodPost, "/", nil)))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookieFrom(t, rec))
	is.True(errors.Is(NewSessions("two").Verify(req), ErrNoSession))
}

func TestSessionRejectsOtherSubjectsAndAlgorithms(t *testing.T) {
	is := is.New(t)
	s := NewSessions("secret")

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "payer"}).SignedString([]byte("secret"))
	is.NoErr(err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: other})
	is.True(errors.Is(s.Verify(req), ErrNoSession))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	is.NoErr(err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: none})
	is.True(errors.Is(s.Verify(req), ErrNoSession))
}

func TestSessionClear(t *testing.T) {
	is := is.New(t)
	rec := httptest.NewRecorder()
	NewSessions("secret").Clear(rec)

	c := cookieFrom(t, rec)
	is.Equal(c.Value, "")
	is.True(c.MaxAge < 0)
}
