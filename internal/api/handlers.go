package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// SaleRequest is the body of POST /api/sales. Country may be
// model.OtherCountry together with customCountry.
type SaleRequest struct {
	SeriesName    string `json:"seriesName" validate:"max=200"`
	Country       string `json:"country" validate:"max=200"`
	CustomCountry string `json:"customCountry" validate:"max=200"`
	CustomerName  string `json:"customerName" validate:"max=200"`
}

// ImportRequest is the body of POST /api/products/import. Either the raw
// pasted text or a list of names is accepted.
type ImportRequest struct {
	Text  string   `json:"text" validate:"required_without=Names"`
	Names []string `json:"names" validate:"omitempty,dive,max=200"`
}

// XRefRequest holds the query of GET /api/xref.
type XRefRequest struct {
	Mode     string `json:"mode" validate:"required"`
	Selected string `json:"selected"`
}

// ListResponse wraps list results with their count.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Count: len(items)}
}

// ImportResponse reports an import.
type ImportResponse struct {
	Submitted int      `json:"submitted"`
	Products  []string `json:"products"`
	Warning   string   `json:"warning,omitempty"`
}

// DeleteResponse reports whether a record was removed.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Warning string `json:"warning,omitempty"`
}

// XRefResponse is a cross-reference result.
type XRefResponse struct {
	Mode     model.ViewMode `json:"mode"`
	Selected string         `json:"selected"`
	Items    []string       `json:"items"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":   "ok",
		"sales":    len(s.store.Sales()),
		"products": len(s.store.Products()),
	})
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	sales := views.SearchHistory(s.store.Sales(), r.URL.Query().Get("q"))
	render.JSON(w, r, newList(sales))
}

func (s *Server) recordSale(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Render(w, r, errInvalid("invalid sale", fieldErrors(err)))
		return
	}

	form := workflow.Form{Series: req.SeriesName, Customer: req.CustomerName, Now: s.now}
	form.SelectCountry(req.Country)
	if form.UseCustomCountry {
		form.CustomCountry = req.CustomCountry
	}

	n := form.Submit(r.Context(), s.store)
	if n.IsError() {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, n)
		return
	}
	if n.Warning != "" {
		s.logWarning(r, "sale not persisted", n.Warning)
	}

	s.metrics.salesRecorded.Inc()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, n)
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		render.Render(w, r, errConfirmationRequired())
		return
	}

	deleted, err := s.store.DeleteSale(r.Context(), chi.URLParam(r, "id"))
	resp := DeleteResponse{Deleted: deleted}
	if err != nil {
		if !errors.Is(err, ledger.ErrPersist) {
			s.logError(r, "delete failed", err)
			render.Render(w, r, errInternal("could not delete sale"))
			return
		}
		resp.Warning = err.Error()
		s.logWarning(r, "deletion not persisted", err.Error())
	}
	if deleted {
		s.metrics.salesDeleted.Inc()
	}
	render.JSON(w, r, resp)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newList(s.store.Products()))
}

func (s *Server) importProducts(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errBadRequest("invalid JSON body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Render(w, r, errInvalid("invalid import", fieldErrors(err)))
		return
	}

	var (
		submitted int
		err       error
	)
	if len(req.Names) > 0 {
		names := workflow.CleanNames(req.Names)
		submitted = len(names)
		if submitted > 0 {
			err = s.store.ImportProducts(r.Context(), names)
		}
	} else {
		submitted, err = workflow.ImportText(r.Context(), s.store, req.Text)
	}

	resp := ImportResponse{Submitted: submitted}
	if err != nil {
		if !errors.Is(err, ledger.ErrPersist) {
			s.logError(r, "import failed", err)
			render.Render(w, r, errInternal("could not import products"))
			return
		}
		resp.Warning = err.Error()
		s.logWarning(r, "import not persisted", err.Error())
	}
	s.metrics.productsAdded.Add(float64(submitted))
	resp.Products = s.store.Products()
	render.JSON(w, r, resp)
}

func (s *Server) clearProducts(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		render.Render(w, r, errConfirmationRequired())
		return
	}
	if err := s.store.ClearProducts(r.Context()); err != nil {
		if !errors.Is(err, ledger.ErrPersist) {
			s.logError(r, "clear failed", err)
			render.Render(w, r, errInternal("could not clear products"))
			return
		}
		s.logWarning(r, "clear not persisted", err.Error())
	}
	render.NoContent(w, r)
}

func (s *Server) listCountries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newList(views.DistinctCountries(s.store.Sales())))
}

func (s *Server) crossReference(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := XRefRequest{Mode: q.Get("mode"), Selected: q.Get("selected")}
	if err := s.validate.Struct(req); err != nil {
		render.Render(w, r, errInvalid("invalid cross-reference query", fieldErrors(err)))
		return
	}

	mode, err := model.ParseViewMode(req.Mode)
	if err != nil {
		render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	render.JSON(w, r, XRefResponse{
		Mode:     mode,
		Selected: req.Selected,
		Items:    views.CrossReference(s.store.Sales(), mode, req.Selected),
	})
}

func (s *Server) generateInsights(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		s.metrics.analyses.WithLabelValues(string(analysis.OutcomeMissingKey)).Inc()
		render.JSON(w, r, analysis.Result{Text: analysis.MsgMissingAPIKey, Outcome: analysis.OutcomeMissingKey})
		return
	}

	result, err := s.insights.TryAnalyze(r.Context(), s.store.Sales(), s.store.Products())
	if errors.Is(err, analysis.ErrAnalysisInFlight) {
		render.Render(w, r, errConflict(err.Error()))
		return
	}
	s.metrics.analyses.WithLabelValues(string(result.Outcome)).Inc()
	render.JSON(w, r, result)
}

func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && ok
}

func (s *Server) logWarning(r *http.Request, msg, detail string) {
	s.logger.WarnContext(r.Context(), msg,
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("detail", detail),
	)
}

func (s *Server) logError(r *http.Request, msg string, err error) {
	s.logger.ErrorContext(r.Context(), msg,
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
}
