package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"retailpulse/internal/analytics"
	"retailpulse/internal/forecast"
)

// Problem is an RFC 7807 error response.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Render implements render.Renderer.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	render.Status(r, p.Status)
	return nil
}

// problemFor maps domain errors onto problem responses. Insufficient or
// degenerate input is the client's data, not a server fault, so those map to
// 422; a fully unavailable forecast maps to 503.
func problemFor(err error) *Problem {
	var insufficient *analytics.InsufficientDataError
	if errors.As(err, &insufficient) {
		return &Problem{
			Type:   "/errors/insufficient-data",
			Title:  "Insufficient Data",
			Status: http.StatusUnprocessableEntity,
			Detail: insufficient.Error(),
		}
	}

	var degenerate *analytics.DegenerateInputError
	if errors.As(err, &degenerate) {
		return &Problem{
			Type:   "/errors/degenerate-input",
			Title:  "Degenerate Input",
			Status: http.StatusUnprocessableEntity,
			Detail: degenerate.Error(),
		}
	}

	var unavailable *forecast.UnavailableError
	if errors.As(err, &unavailable) {
		return &Problem{
			Type:   "/errors/forecast-unavailable",
			Title:  "Forecast Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: unavailable.Error(),
		}
	}

	return &Problem{
		Type:   "/errors/internal-server-error",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: err.Error(),
	}
}

func validationProblem(detail string) *Problem {
	return &Problem{
		Type:   "/errors/validation",
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}
