// Package handler exposes the compliance engine over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"custodian/internal/compliance/models"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/httputil"
	"custodian/pkg/requestcontext"
)

// Service is the compliance engine as seen by the transport.
type Service interface {
	RequestAccess(ctx context.Context, req models.AccessRequest, opts models.Options) (*models.AccessResult, error)
	Rectify(ctx context.Context, req models.RectificationRequest, opts models.Options) (*models.RectificationResult, error)
	Erase(ctx context.Context, req models.ErasureRequest, opts models.Options) (*models.ErasureResult, error)
	Restrict(ctx context.Context, req models.RestrictionRequest, opts models.Options) (*models.RestrictionResult, error)
	Export(ctx context.Context, req models.PortabilityRequest, opts models.Options) (*models.PortabilityResult, error)
	Object(ctx context.Context, req models.ObjectionRequest, opts models.Options) (*models.ObjectionResult, error)
	ReviewAutomatedDecision(ctx context.Context, req models.AutomatedDecisionRequest, opts models.Options) (*models.AutomatedDecisionResult, error)
	HandlePHI(ctx context.Context, req models.PHIRequest, opts models.Options) (*models.PHIResult, error)

	AttemptProcessing(ctx context.Context, subjectID string, attempt models.ProcessingAttempt) (models.EnforcementDecision, error)
	LiftRestriction(ctx context.Context, subjectID, reason string) (*models.Restriction, error)
	WithdrawObjection(ctx context.Context, subjectID string) (*models.Objection, error)
	ComplianceStatus(ctx context.Context, subjectID string) (*models.ComplianceStatus, error)

	GetAuditLog(ctx context.Context, filter audit.Filter) ([]audit.Event, error)
	VerifyAuditTrail(ctx context.Context) (audit.ChainReport, error)
}

// Handler wires compliance endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the rights and enforcement endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rights/access", h.HandleAccess)
	r.Post("/rights/rectification", h.HandleRectification)
	r.Post("/rights/erasure", h.HandleErasure)
	r.Post("/rights/restriction", h.HandleRestriction)
	r.Post("/rights/portability", h.HandlePortability)
	r.Post("/rights/objection", h.HandleObjection)
	r.Post("/rights/automated-decision", h.HandleAutomatedDecision)
	r.Post("/rights/phi", h.HandlePHI)

	r.Post("/subjects/{subjectID}/processing-attempts", h.HandleAttemptProcessing)
	r.Post("/subjects/{subjectID}/restriction/lift", h.HandleLiftRestriction)
	r.Post("/subjects/{subjectID}/objection/withdraw", h.HandleWithdrawObjection)
	r.Get("/subjects/{subjectID}/status", h.HandleStatus)
}

// RegisterAudit mounts the audit trail endpoints. Callers guard them with
// an auditor role.
func (h *Handler) RegisterAudit(r chi.Router) {
	r.Get("/audit/events", h.HandleAuditLog)
	r.Post("/audit/verify", h.HandleVerifyAudit)
}

func (h *Handler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "access", h.service.RequestAccess)
}

func (h *Handler) HandleRectification(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "rectification", h.service.Rectify)
}

func (h *Handler) HandleErasure(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "erasure", h.service.Erase)
}

func (h *Handler) HandleRestriction(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "restriction", h.service.Restrict)
}

func (h *Handler) HandlePortability(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "portability", h.service.Export)
}

func (h *Handler) HandleObjection(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "objection", h.service.Object)
}

func (h *Handler) HandleAutomatedDecision(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "automated_decision", h.service.ReviewAutomatedDecision)
}

func (h *Handler) HandlePHI(w http.ResponseWriter, r *http.Request) {
	handleRight(h, w, r, "phi", h.service.HandlePHI)
}

// failureLevel reserves Error for internal failures. Coded outcomes such as an
// unknown subject or a timeout are expected and log at Warn.
func failureLevel(err error) slog.Level {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// handleRight decodes a rights request, calls the processor and writes its
// result. Structured failures are returned as 422 with the result body.
func handleRight[Req models.Request, Res any, PRes interface {
	*Res
	models.Result
}](h *Handler, w http.ResponseWriter, r *http.Request, right string, call func(context.Context, Req, models.Options) (*Res, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	body, ok := httputil.DecodeAndPrepare[RightsRequest[Req]](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := call(ctx, body.Request, body.Options)
	if err != nil {
		h.logger.Log(ctx, failureLevel(err), "rights request failed",
			"request_id", requestID,
			"right", right,
			"subject_id", body.Request.Subject(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	base := PRes(res).Base()
	h.logger.InfoContext(ctx, "rights request processed",
		"request_id", requestID,
		"right", right,
		"subject_id", body.Request.Subject(),
		"success", base.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	status := http.StatusOK
	if !base.Success {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, res)
}

// HandleAttemptProcessing handles POST /subjects/{subjectID}/processing-attempts.
func (h *Handler) HandleAttemptProcessing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	subjectID := chi.URLParam(r, "subjectID")

	req, ok := httputil.DecodeAndPrepare[ProcessingAttemptRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.service.AttemptProcessing(ctx, subjectID, req.toModel(requestcontext.Now(ctx)))
	if err != nil {
		h.logger.Log(ctx, failureLevel(err), "processing attempt evaluation failed",
			"request_id", requestID,
			"subject_id", subjectID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

// HandleLiftRestriction handles POST /subjects/{subjectID}/restriction/lift.
func (h *Handler) HandleLiftRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	subjectID := chi.URLParam(r, "subjectID")

	req, ok := httputil.DecodeAndPrepare[LiftRestrictionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.LiftRestriction(ctx, subjectID, req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "restriction lifted",
		"request_id", requestID,
		"subject_id", subjectID,
	)
	httputil.WriteJSON(w, http.StatusOK, rec)
}

// HandleWithdrawObjection handles POST /subjects/{subjectID}/objection/withdraw.
func (h *Handler) HandleWithdrawObjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subjectID := chi.URLParam(r, "subjectID")

	rec, err := h.service.WithdrawObjection(ctx, subjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "objection withdrawn",
		"request_id", requestcontext.RequestID(ctx),
		"subject_id", subjectID,
	)
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.ComplianceStatus(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

// HandleAuditLog handles GET /audit/events?action=&entity_id=&correlation_id=.
func (h *Handler) HandleAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := audit.Filter{
		Action:   q.Get("action"),
		EntityID: q.Get("entity_id"),
	}
	if raw := q.Get("correlation_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "correlation_id must be a UUID"))
			return
		}
		filter.CorrelationID = id
	}

	events, err := h.service.GetAuditLog(ctx, filter)
	if err != nil {
		h.logger.Log(ctx, failureLevel(err), "audit log query failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

func (h *Handler) HandleVerifyAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.service.VerifyAuditTrail(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !report.Valid {
		h.logger.ErrorContext(ctx, "audit trail verification found breaks",
			"request_id", requestcontext.RequestID(ctx),
			"breaks", len(report.Breaks),
		)
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}
