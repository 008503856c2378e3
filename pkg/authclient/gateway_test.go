package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testUserJSON() map[string]any {
	return map[string]any{
		"id":        7,
		"email":     "ana@example.com",
		"userType":  "client",
		"firstName": "Ana",
		"lastName":  "Lima",
		"profileId": 12,
	}
}

func TestGateway_Login_Success(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":      "login successful",
			"sessionToken": "tok-123",
			"user":         testUserJSON(),
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	creds, err := g.Login(context.Background(), "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.SessionToken != "tok-123" {
		t.Errorf("expected token tok-123, got %q", creds.SessionToken)
	}
	if creds.User.Email != "ana@example.com" || creds.User.ID != 7 {
		t.Errorf("unexpected user: %+v", creds.User)
	}
	if creds.User.ProfileID == nil || *creds.User.ProfileID != 12 {
		t.Errorf("expected profileId 12, got %v", creds.User.ProfileID)
	}
	if gotBody["action"] != "login" {
		t.Errorf("expected action login, got %v", gotBody["action"])
	}
}

func TestGateway_Login_ServerErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.Login(context.Background(), "ana@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindServer {
		t.Errorf("expected server error kind, got %d", KindOf(err))
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected server message verbatim, got %q", err.Error())
	}
}

func TestGateway_Login_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.Login(context.Background(), "ana@example.com", "secret1")
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if err.Error() != "could not reach server" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGateway_Login_MalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.Login(context.Background(), "ana@example.com", "secret1")
	if !IsConnection(err) {
		t.Fatalf("expected connection error for unparseable failure, got %v", err)
	}
}

func TestGateway_Register_FreelancerSendsTitle(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		user := testUserJSON()
		user["userType"] = "freelancer"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sessionToken": "tok-456",
			"user":         user,
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.Register(context.Background(), RegisterInput{
		Email:     "leo@example.com",
		Password:  "secret1",
		UserType:  UserTypeFreelancer,
		FirstName: "Leo",
		LastName:  "Paz",
		Title:     "Backend Developer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["action"] != "register" {
		t.Errorf("expected action register, got %v", gotBody["action"])
	}
	if gotBody["title"] != "Backend Developer" {
		t.Errorf("expected title on the wire, got %v", gotBody["title"])
	}
}

func TestGateway_Register_ClientOmitsTitle(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sessionToken": "tok-789",
			"user":         testUserJSON(),
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.Register(context.Background(), RegisterInput{
		Email:     "ana@example.com",
		Password:  "secret1",
		UserType:  UserTypeClient,
		FirstName: "Ana",
		LastName:  "Lima",
		Title:     "should not leak",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := gotBody["title"]; present {
		t.Errorf("title must be absent for client accounts, got %v", gotBody["title"])
	}
}

func TestGateway_VerifySession_SendsTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Session-Token"); got != "tok-123" {
			t.Errorf("expected token header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid": true,
			"user":  testUserJSON(),
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	user, err := g.VerifySession(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestGateway_VerifySession_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired session"})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	_, err := g.VerifySession(context.Background(), "stale")
	if KindOf(err) != KindSessionInvalid {
		t.Fatalf("expected session invalid kind, got %v", err)
	}
}

func TestGateway_Logout_SendsActionAndToken(t *testing.T) {
	var gotBody map[string]any
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Session-Token")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "logout successful"})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, zerolog.Nop())
	if err := g.Logout(context.Background(), "tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["action"] != "logout" {
		t.Errorf("expected action logout, got %v", gotBody["action"])
	}
	if gotHeader != "tok-123" {
		t.Errorf("expected token header, got %q", gotHeader)
	}
}
