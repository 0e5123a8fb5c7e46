package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/motorsmith/work-order-system/order-service/application"
	"github.com/motorsmith/work-order-system/shared/faults"
)

// WorkOrderHandlers contains work order HTTP handlers
type WorkOrderHandlers struct {
	createWorkOrder       *application.CreateWorkOrder
	getWorkOrder          *application.GetWorkOrder
	getWorkOrderHistory   *application.GetWorkOrderHistory
	updateWorkOrderStatus *application.UpdateWorkOrderStatus
}

// NewWorkOrderHandlers creates new work order handlers
func NewWorkOrderHandlers(
	createWorkOrder *application.CreateWorkOrder,
	getWorkOrder *application.GetWorkOrder,
	getWorkOrderHistory *application.GetWorkOrderHistory,
	updateWorkOrderStatus *application.UpdateWorkOrderStatus,
) *WorkOrderHandlers {
	return &WorkOrderHandlers{
		createWorkOrder:       createWorkOrder,
		getWorkOrder:          getWorkOrder,
		getWorkOrderHistory:   getWorkOrderHistory,
		updateWorkOrderStatus: updateWorkOrderStatus,
	}
}

// CreateWorkOrder handles work order creation requests
func (h *WorkOrderHandlers) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateWorkOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, faults.Validationf("invalid request body"))
		return
	}

	response, err := h.createWorkOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetWorkOrder handles work order retrieval requests
func (h *WorkOrderHandlers) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := workOrderID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.getWorkOrder.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetWorkOrderHistory handles status history requests
func (h *WorkOrderHandlers) GetWorkOrderHistory(w http.ResponseWriter, r *http.Request) {
	id, err := workOrderID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := h.getWorkOrderHistory.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// UpdateWorkOrderStatus handles operator status overrides
func (h *WorkOrderHandlers) UpdateWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := workOrderID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var cmd application.UpdateWorkOrderStatusCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, faults.Validationf("invalid request body"))
		return
	}
	cmd.WorkOrderID = id

	if err := h.updateWorkOrderStatus.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers work order routes
func (h *WorkOrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/work-orders", func(r chi.Router) {
		r.Post("/", h.CreateWorkOrder)
		r.Get("/{id}", h.GetWorkOrder)
		r.Get("/{id}/history", h.GetWorkOrderHistory)
		r.Patch("/{id}/status", h.UpdateWorkOrderStatus)
	})
}

func workOrderID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, faults.Validationf("invalid work order id %q", raw)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case faults.IsValidation(err):
		status = http.StatusBadRequest
	case faults.IsNotFound(err):
		status = http.StatusNotFound
	case faults.IsTransport(err), faults.IsExternal(err):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
