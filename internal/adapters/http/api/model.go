package api

import (
	"net/http"

	"github.com/okian/attrition/internal/domain/churn"
)

// ModelDependencies exposes the model description.
type ModelDependencies interface {
	Model() churn.ModelInfo
}

// ModelHandler handles model description requests.
type ModelHandler struct {
	deps ModelDependencies
}

// NewModelHandler creates a new model handler.
func NewModelHandler(deps ModelDependencies) *ModelHandler {
	return &ModelHandler{deps: deps}
}

// HandleGetModel handles GET /model requests.
func (h *ModelHandler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Model())
}
