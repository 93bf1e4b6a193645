package list_companies

import (
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// CompanyResponse компания в ответе API (email для заказов не раскрывается)
type CompanyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Handler struct {
	companyRepo CompanyRepository
	logger      Logger
}

func NewHandler(companyRepo CompanyRepository, logger Logger) *Handler {
	return &Handler{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Handle GET /api/v1/companies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyRepo.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /companies - Failed to list companies: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, fromDomain(c))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func fromDomain(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}
