package auth

import (
	"context"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.Generate(7, "drlee", RoleSpecialist)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SubjectID != 7 || claims.Username != "drlee" || claims.Role != RoleSpecialist {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := NewJWTService("other", time.Hour).Validate(token); err == nil {
		t.Fatalf("token accepted with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	svc := &JWTService{secret: []byte("secret"), ttl: -time.Minute}
	token, err := svc.Generate(1, "anna", RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestMemoryStoreFlashes(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore()

	if data, err := s.Get(ctx, "missing"); data != nil || err != nil {
		t.Fatalf("Get(missing) = %v, %v", data, err)
	}

	_ = s.Create(ctx, "abc", SessionData{SubjectID: 3, Username: "anna", Role: RoleUser})
	_ = s.AddFlash(ctx, "abc", Flash{Category: "error", Message: "first"})
	_ = s.AddFlash(ctx, "abc", Flash{Category: "success", Message: "second"})

	flashes, _ := s.PopFlashes(ctx, "abc")
	if len(flashes) != 2 || flashes[0].Message != "first" {
		t.Fatalf("flashes = %+v", flashes)
	}
	if again, _ := s.PopFlashes(ctx, "abc"); len(again) != 0 {
		t.Fatalf("flashes not cleared: %+v", again)
	}

	data, _ := s.Get(ctx, "abc")
	if !data.Authenticated() {
		t.Fatalf("session not authenticated: %+v", data)
	}
	_ = s.Delete(ctx, "abc")
	if data, _ := s.Get(ctx, "abc"); data.Authenticated() {
		t.Fatalf("session survived delete")
	}
}
