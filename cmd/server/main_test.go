package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compliancemetrics "custodian/internal/compliance/metrics"
	"custodian/internal/compliance/service"
	jwttoken "custodian/internal/jwt_token"
	"custodian/internal/platform/config"
	"custodian/pkg/platform/audit/publishers/compliance"
	auditmemory "custodian/pkg/platform/audit/store/memory"
	"custodian/pkg/testutil"
)

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	stores, err := buildStores(cfg, &infra{})
	require.NoError(t, err)
	publisher := compliance.New(auditmemory.NewInMemoryStore(), compliance.WithLogger(log))
	t.Cleanup(func() { _ = publisher.Close() })

	svc := service.New(service.Config{
		GDPREnabled:  cfg.Compliance.GDPREnabled,
		HIPAAEnabled: cfg.Compliance.HIPAAEnabled,
		ContactEmail: cfg.Compliance.ContactEmail,
		LockTimeout:  cfg.Compliance.LockTimeout,
	}, stores, publisher, service.WithLogger(log), service.WithMetrics(compliancemetrics.New(reg)))
	require.NoError(t, svc.Init(context.Background()))

	return newRouter(cfg, log, reg, svc, &infra{})
}

func bearer(t *testing.T, cfg *config.Config, roles ...string) string {
	t.Helper()
	jwt := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := jwt.GenerateAccessToken("dpo-1", roles, time.Minute)
	require.NoError(t, err)
	return token
}

func TestRouter(t *testing.T) {
	cfg := config.Defaults()
	router := newTestRouter(t, &cfg)

	testutil.Given(t, "an unauthenticated caller", func(t *testing.T) {
		testutil.When(t, "probing health", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.Then(t, "the service reports ok", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
			})
			testutil.And(t, "a request id is assigned", func(t *testing.T) {
				assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
			})
		})

		testutil.When(t, "scraping metrics", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
			testutil.Then(t, "the exposition is served", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
			})
		})

		testutil.When(t, "calling a rights endpoint", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/compliance/rights/access", map[string]any{
				"request": map[string]any{"dataSubjectId": "subject-1"},
			})
			rr := testutil.DoRequest(router, req)
			testutil.Then(t, "the request is rejected", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			})
		})
	})

	testutil.Given(t, "an operator token without the auditor role", func(t *testing.T) {
		token := bearer(t, &cfg)

		testutil.When(t, "reading a subject's status", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/v1/compliance/subjects/subject-1/status")
			rr := testutil.DoRequest(router, testutil.WithBearer(req, token))
			testutil.Then(t, "the status is returned", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				status := testutil.UnmarshalResponse[map[string]any](t, rr)
				assert.Equal(t, "subject-1", (*status)["subjectId"])
			})
		})

		testutil.When(t, "reading the audit log", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/v1/compliance/audit/events")
			rr := testutil.DoRequest(router, testutil.WithBearer(req, token))
			testutil.Then(t, "access is forbidden", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
			})
		})
	})

	testutil.Given(t, "an auditor token", func(t *testing.T) {
		token := bearer(t, &cfg, auditorRole)

		testutil.When(t, "verifying the audit trail", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPost, "/v1/compliance/audit/verify")
			rr := testutil.DoRequest(router, testutil.WithBearer(req, token))
			testutil.Then(t, "the chain is reported valid", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "valid", true)
			})
		})
	})
}

func TestRouterWithAuthDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Auth.Disabled = true
	router := newTestRouter(t, &cfg)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/v1/compliance/audit/events"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONHasKey(t, rr, "events")
}

func TestBuildStoresRejectsUnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.State.Backend = "etcd"
	_, err := buildStores(&cfg, &infra{})
	require.Error(t, err)

	cfg.Audit.Backend = "s3"
	_, err = buildAuditStore(&cfg, &infra{})
	require.Error(t, err)
}
