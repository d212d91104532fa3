package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type pricePoint struct {
	Year       int             `json:"year"`
	Price      decimal.Decimal `json:"price"`
	PriceLocal decimal.Decimal `json:"price_local"`
}

type pricesResponse struct {
	Model        domain.PriceModelVariant `json:"model"`
	ExchangeRate decimal.Decimal          `json:"exchange_rate"`
	Currency     string                   `json:"currency"`
	Prices       []pricePoint             `json:"prices"`
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Prices serves the yearly model price series. Query parameters: start,
// end, model and exchange_rate, each optional.
func (s *Server) Prices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := intParam(q.Get("start"), calculation.CurrentYear())
	if err != nil {
		s.writeError(w, err)
		return
	}
	end, err := intParam(q.Get("end"), domain.DefaultAccumulationEndYear)
	if err != nil {
		s.writeError(w, err)
		return
	}

	model := s.defaults.PriceModel
	if v := q.Get("model"); v != "" {
		if model, err = domain.ParsePriceModelVariant(v); err != nil {
			s.writeError(w, err)
			return
		}
	}

	rate := s.defaults.ExchangeRate
	if v := q.Get("exchange_rate"); v != "" {
		rate, err = decimal.NewFromString(v)
		if err != nil || !rate.IsPositive() {
			s.writeError(w, fmt.Errorf("%w: exchange_rate must be a positive number", domain.ErrInvalidInput))
			return
		}
	}

	points, err := calculation.YearlyPrices(start, end, model)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := pricesResponse{
		Model:        model,
		ExchangeRate: rate,
		Currency:     s.defaults.Currency,
		Prices:       make([]pricePoint, len(points)),
	}
	for i, p := range points {
		resp.Prices[i] = pricePoint{Year: p.Year, Price: p.Price, PriceLocal: p.Price.Mul(rate)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Accumulate runs one DCA scenario. Omitted fields fall back to the
// server's assumptions the same way a scenario file does.
func (s *Server) Accumulate(w http.ResponseWriter, r *http.Request) {
	var scenario domain.AccumulationScenario
	if err := decodeJSON(w, r, &scenario); err != nil {
		s.writeError(w, err)
		return
	}

	name := scenario.Name
	if name == "" {
		name = "accumulation"
	}
	result, err := s.engine.RunAccumulation(r.Context(), name, scenario.Input(s.defaults, calculation.CurrentYear()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Withdraw runs one withdrawal scenario.
func (s *Server) Withdraw(w http.ResponseWriter, r *http.Request) {
	var scenario domain.WithdrawalScenario
	if err := decodeJSON(w, r, &scenario); err != nil {
		s.writeError(w, err)
		return
	}

	name := scenario.Name
	if name == "" {
		name = "withdrawal"
	}
	result, err := s.engine.RunWithdrawal(r.Context(), name, scenario.Input(s.defaults, calculation.CurrentYear()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Run executes a whole scenario document and returns the report.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	cfg := domain.Configuration{GlobalAssumptions: s.defaults}
	if err := decodeJSON(w, r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}
	cfg.GlobalAssumptions = cfg.GlobalAssumptions.WithDefaults()

	if err := config.NewInputParserWithDefaults(s.defaults).ValidateConfiguration(&cfg); err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.engine.RunScenarios(r.Context(), &cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", domain.ErrInvalidInput, raw)
	}
	return v, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidRange) {
		status = http.StatusBadRequest
	} else {
		s.logger.WithError(err).Error("simulation failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
