package handler

import (
	"net/http"

	"github.com/mmoldabe-dev/subtrack/internal/billing"
	"github.com/mmoldabe-dev/subtrack/internal/currency"
)

const maxTrendCount = 52

// displayCurrency reads ?currency= and falls back to the configured default.
func (h *HandlerSubscription) displayCurrency(r *http.Request) (string, error) {
	code := normalizeCurrency(r.URL.Query().Get("currency"))
	if code == "" {
		return h.defaultCurrency, nil
	}
	if err := h.validateCurrency(code); err != nil {
		return "", err
	}
	return code, nil
}

// @Summary Dashboard statistics
// @Description Monthly and annual spend of active subscriptions in the display currency.
// @Tags dashboard
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param currency query string false "display currency"
// @Success 200 {object} service.DashboardStats
// @Failure 400 {object} errorResponse
// @Router /dashboard/stats [get]
func (h *HandlerSubscription) getDashboardStats(w http.ResponseWriter, r *http.Request) {
	cur, err := h.displayCurrency(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.services.DashboardStats(r.Context(), userID(r), cur)
	if err != nil {
		writeServiceError(w, h.log, "failed to build dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Spending trends
// @Tags dashboard
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param currency query string false "display currency"
// @Param period query string false "monthly or weekly"
// @Param count query int false "number of periods"
// @Success 200 {object} service.SpendingTrends
// @Failure 400 {object} errorResponse
// @Router /dashboard/trends [get]
func (h *HandlerSubscription) getSpendingTrends(w http.ResponseWriter, r *http.Request) {
	cur, err := h.displayCurrency(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	period := billing.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = billing.PeriodMonthly
	}
	if !period.Valid() {
		writeError(w, http.StatusBadRequest, "period must be monthly or weekly")
		return
	}

	count, err := queryInt(r, "count", 0, 1, maxTrendCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends, err := h.services.SpendingTrends(r.Context(), userID(r), cur, period, count)
	if err != nil {
		writeServiceError(w, h.log, "failed to build spending trends", err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

type currencyInfo struct {
	Code    string  `json:"code"`
	Rate    float64 `json:"rate"`
	Example string  `json:"example"`
}

type currenciesResponse struct {
	Base       string         `json:"base"`
	Default    string         `json:"default"`
	Currencies []currencyInfo `json:"currencies"`
}

// @Summary Supported currencies
// @Tags currencies
// @Produce json
// @Success 200 {object} currenciesResponse
// @Router /currencies [get]
func (h *HandlerSubscription) listCurrencies(w http.ResponseWriter, r *http.Request) {
	codes := h.conv.Supported()
	resp := currenciesResponse{
		Base:       h.conv.Base(),
		Default:    h.defaultCurrency,
		Currencies: make([]currencyInfo, 0, len(codes)),
	}
	for _, code := range codes {
		resp.Currencies = append(resp.Currencies, currencyInfo{
			Code:    code,
			Rate:    h.conv.Rate(code),
			Example: currency.Format(h.conv.Convert(10, h.conv.Base(), code), code),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
