package service

import (
	"context"
	"testing"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/logger"
)

func TestAuditPicksUpRequestContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := logger.NewContext(context.Background(), "req-42")

	sess, err := env.auth.Register(ctx, "trinity@example.com", "trinity", "password123",
		RequestInfo{IP: "10.0.0.7", UserAgent: "curl/8"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	logs, err := env.store.AuditLogsByUser(ctx, sess.User.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d audit entries", len(logs))
	}
	e := logs[0]
	if e.Action != domain.AuditActionRegister || e.Category != domain.AuditCategoryAuth {
		t.Fatalf("action/category = %s/%s", e.Action, e.Category)
	}
	if e.RequestID != "req-42" || e.IP != "10.0.0.7" || e.UserAgent != "curl/8" {
		t.Fatalf("request fields not recorded: %+v", e)
	}
}

func TestAuditCategoryForUnknownAction(t *testing.T) {
	if got := domain.AuditCategoryFor("something_new"); got != domain.AuditCategoryOther {
		t.Fatalf("category = %q", got)
	}
}

func TestNilAuditServiceIsNoop(t *testing.T) {
	var s *AuditService
	s.Record(context.Background(), 1, domain.AuditActionLogin, nil)
}
