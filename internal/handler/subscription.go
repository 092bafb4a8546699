package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/service"
)

type HandlerSubscription struct {
	services        service.SubscriptionServiceInterface
	conv            *currency.Converter
	defaultCurrency string
	log             *slog.Logger
}

func NewHandlerSubscription(services service.SubscriptionServiceInterface, conv *currency.Converter, defaultCurrency string, log *slog.Logger) *HandlerSubscription {
	return &HandlerSubscription{
		services:        services,
		conv:            conv,
		defaultCurrency: defaultCurrency,
		log:             log.With(slog.String("component", "delivery/http")),
	}
}

type createSubscriptionRequest struct {
	Name        string           `json:"name" example:"Netflix"`
	Description string           `json:"description"`
	Category    domain.Category  `json:"category" example:"STREAMING"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string" example:"15.99"`
	Currency    string           `json:"currency" example:"USD"`
	Cycle       domain.Cycle     `json:"cycle" example:"MONTHLY"`
	BillingDay  int              `json:"billing_day" example:"15"`
	NextBilling *time.Time       `json:"next_billing"`
	StartDate   *time.Time       `json:"start_date"`
	Status      domain.Status    `json:"status" example:"ACTIVE"`
	Color       string           `json:"color" example:"#e50914"`
	Notes       string           `json:"notes"`
	Logo        string           `json:"logo"`
	URL         string           `json:"url"`
}

func (h *HandlerSubscription) validateCurrency(code string) error {
	if !isCurrencyCode(code) || !h.conv.IsSupported(code) {
		return fmt.Errorf("unsupported currency %q", code)
	}
	return nil
}

func (h *HandlerSubscription) validateCreate(req *createSubscriptionRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if req.Price == nil {
		return fmt.Errorf("price is required")
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if req.Currency != "" {
		req.Currency = normalizeCurrency(req.Currency)
		if err := h.validateCurrency(req.Currency); err != nil {
			return err
		}
	}
	if req.Category != "" && !req.Category.Valid() {
		return fmt.Errorf("invalid category %q", req.Category)
	}
	if req.Cycle != "" && !req.Cycle.Valid() {
		return fmt.Errorf("invalid cycle %q", req.Cycle)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("invalid status %q", req.Status)
	}
	if req.BillingDay < 0 || req.BillingDay > 31 {
		return fmt.Errorf("billing_day must be between 1 and 31")
	}
	if req.Color != "" && !isHexColor(req.Color) {
		return fmt.Errorf("color must be a hex value like #1a2b3c")
	}
	if len(req.Notes) > maxNotesLength {
		return fmt.Errorf("notes must be at most %d characters", maxNotesLength)
	}
	return nil
}

func (h *HandlerSubscription) validatePatch(p *domain.SubscriptionPatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" || len(name) > maxNameLength {
			return fmt.Errorf("name must be 1 to %d characters", maxNameLength)
		}
		p.Name = &name
	}
	if p.Price != nil && p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if p.Currency != nil {
		code := normalizeCurrency(*p.Currency)
		if err := h.validateCurrency(code); err != nil {
			return err
		}
		p.Currency = &code
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("invalid category %q", *p.Category)
	}
	if p.Cycle != nil && !p.Cycle.Valid() {
		return fmt.Errorf("invalid cycle %q", *p.Cycle)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid status %q", *p.Status)
	}
	if p.BillingDay != nil && (*p.BillingDay < 1 || *p.BillingDay > 31) {
		return fmt.Errorf("billing_day must be between 1 and 31")
	}
	if p.Color != nil && *p.Color != "" && !isHexColor(*p.Color) {
		return fmt.Errorf("color must be a hex value like #1a2b3c")
	}
	if p.Notes != nil && len(*p.Notes) > maxNotesLength {
		return fmt.Errorf("notes must be at most %d characters", maxNotesLength)
	}
	return nil
}

// @Summary Create subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param input body createSubscriptionRequest true "subscription"
// @Success 201 {object} domain.Subscription
// @Failure 400 {object} errorResponse
// @Router /subscriptions [post]
func (h *HandlerSubscription) createSubscription(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode request body", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validateCreate(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := domain.Subscription{
		UserID:      userID(r),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Currency:    req.Currency,
		Cycle:       req.Cycle,
		BillingDay:  req.BillingDay,
		Status:      req.Status,
		Color:       req.Color,
		Notes:       req.Notes,
	}
	if req.NextBilling != nil {
		sub.NextBilling = *req.NextBilling
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if req.Logo != "" {
		sub.Logo = &req.Logo
	}
	if req.URL != "" {
		sub.URL = &req.URL
	}

	created, err := h.services.Create(r.Context(), sub)
	if err != nil {
		writeServiceError(w, h.log, "failed to create subscription", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// @Summary Get subscription
// @Tags subscriptions
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param id path string true "subscription id"
// @Success 200 {object} domain.Subscription
// @Failure 404 {object} errorResponse
// @Router /subscriptions/{id} [get]
func (h *HandlerSubscription) getSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.services.GetByID(r.Context(), id, userID(r))
	if err != nil {
		writeServiceError(w, h.log, "failed to get subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// @Summary Update subscription
// @Description Partial update. Omitted fields are kept; empty logo or url clears them.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param id path string true "subscription id"
// @Param input body domain.SubscriptionPatch true "fields to change"
// @Success 200 {object} domain.Subscription
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /subscriptions/{id} [patch]
func (h *HandlerSubscription) updateSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch domain.SubscriptionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validatePatch(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.services.Update(r.Context(), id, userID(r), patch)
	if err != nil {
		writeServiceError(w, h.log, "failed to update subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// @Summary Delete subscription
// @Tags subscriptions
// @Param X-User-ID header string true "caller id"
// @Param id path string true "subscription id"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /subscriptions/{id} [delete]
func (h *HandlerSubscription) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.services.Delete(r.Context(), id, userID(r)); err != nil {
		writeServiceError(w, h.log, "failed to delete subscription", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param name query string false "name contains"
// @Param status query string false "status"
// @Param category query string false "category"
// @Param min_price query string false "minimum price"
// @Param max_price query string false "maximum price"
// @Param limit query int false "page size (max 100)"
// @Param offset query int false "offset"
// @Success 200 {array} domain.Subscription
// @Router /subscriptions [get]
func (h *HandlerSubscription) listSubscription(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := queryInt(r, "limit", 10, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, 1<<31-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := domain.SubscriptionFilter{
		Name:     strings.TrimSpace(query.Get("name")),
		Status:   domain.Status(query.Get("status")),
		Category: domain.Category(query.Get("category")),
		Limit:    limit,
		Offset:   offset,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", filter.Status))
		return
	}
	if filter.Category != "" && !filter.Category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category %q", filter.Category))
		return
	}
	for key, dst := range map[string]*decimal.Decimal{"min_price": &filter.MinPrice, "max_price": &filter.MaxPrice} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			writeError(w, http.StatusBadRequest, "prices must be non-negative numbers")
			return
		}
		*dst = v
	}

	subs, err := h.services.List(r.Context(), userID(r), filter)
	if err != nil {
		writeServiceError(w, h.log, "failed to get list", err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}
