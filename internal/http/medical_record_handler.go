package httpapi

import (
	"net/http"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/service"

	"go.uber.org/zap"
)

// MedicalRecordHandler 医疗档案端点
type MedicalRecordHandler struct {
	medicalRecordService *service.MedicalRecordService
	logger               *zap.Logger
}

func NewMedicalRecordHandler(medicalRecordService *service.MedicalRecordService, logger *zap.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{medicalRecordService: medicalRecordService, logger: logger}
}

// GetMedicalRecords GET /medicalrecords
func (h *MedicalRecordHandler) GetMedicalRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.medicalRecordService.GetMedicalRecords(r.Context()))
}

// AddMedicalRecord POST /medicalrecord
func (h *MedicalRecordHandler) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var record domain.MedicalRecord
	if err := readBodyJSON(r, maxBodyBytes, &record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid medical record payload"})
		return
	}
	created, err := h.medicalRecordService.CreateMedicalRecord(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateMedicalRecord PUT /medicalrecord
func (h *MedicalRecordHandler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var record domain.MedicalRecord
	if err := readBodyJSON(r, maxBodyBytes, &record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid medical record payload"})
		return
	}
	updated, err := h.medicalRecordService.UpdateMedicalRecord(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteMedicalRecord DELETE /medicalrecord?first_name=&last_name=
func (h *MedicalRecordHandler) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	firstName := r.URL.Query().Get("first_name")
	lastName := r.URL.Query().Get("last_name")
	if err := h.medicalRecordService.DeleteMedicalRecord(r.Context(), firstName, lastName); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
