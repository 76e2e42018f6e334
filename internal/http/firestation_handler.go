package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/service"

	"go.uber.org/zap"
)

// FireStationHandler 消防站相关端点
type FireStationHandler struct {
	fireStationService *service.FireStationService
	logger             *zap.Logger
}

func NewFireStationHandler(fireStationService *service.FireStationService, logger *zap.Logger) *FireStationHandler {
	return &FireStationHandler{fireStationService: fireStationService, logger: logger}
}

// GetFireStations GET /firestations
func (h *FireStationHandler) GetFireStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fireStationService.GetFireStations(r.Context()))
}

// GetFireStationPersonsList GET /firestation?station_number=
func (h *FireStationHandler) GetFireStationPersonsList(w http.ResponseWriter, r *http.Request) {
	stationNumber := r.URL.Query().Get("station_number")
	out, err := h.fireStationService.CreateFireStationPersonsList(r.Context(), stationNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPhoneList GET /phoneAlert?firestation_number=
func (h *FireStationHandler) GetPhoneList(w http.ResponseWriter, r *http.Request) {
	stationNumber := r.URL.Query().Get("firestation_number")
	out, err := h.fireStationService.CreatePhoneList(r.Context(), stationNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPersonsListInCaseOfFire GET /fire?address=
func (h *FireStationHandler) GetPersonsListInCaseOfFire(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	out, err := h.fireStationService.CreatePersonsListInCaseOfFire(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetAddressesAndPersonsCovered GET /flood/stations?stations=1,2
func (h *FireStationHandler) GetAddressesAndPersonsCovered(w http.ResponseWriter, r *http.Request) {
	var stations []string
	if raw := strings.TrimSpace(r.URL.Query().Get("stations")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				stations = append(stations, s)
			}
		}
	}
	out, err := h.fireStationService.CreateFloodAlertList(r.Context(), stations)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// AddFireStation POST /firestation
func (h *FireStationHandler) AddFireStation(w http.ResponseWriter, r *http.Request) {
	var station domain.FireStation
	if err := readBodyJSON(r, maxBodyBytes, &station); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid fire station payload"})
		return
	}
	created, err := h.fireStationService.CreateFireStation(r.Context(), station)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateFireStation PUT /firestation
func (h *FireStationHandler) UpdateFireStation(w http.ResponseWriter, r *http.Request) {
	var station domain.FireStation
	if err := readBodyJSON(r, maxBodyBytes, &station); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid fire station payload"})
		return
	}
	updated, err := h.fireStationService.UpdateFireStation(r.Context(), station)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteFireStation DELETE /firestation?address=
func (h *FireStationHandler) DeleteFireStation(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if err := h.fireStationService.DeleteFireStation(r.Context(), address); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCoverageRoster GET /firestation/export?station_number=
// 覆盖名单导出为 Excel，给调度员线下使用
func (h *FireStationHandler) ExportCoverageRoster(w http.ResponseWriter, r *http.Request) {
	stationNumber := r.URL.Query().Get("station_number")
	coverage, err := h.fireStationService.CreateFireStationPersonsList(r.Context(), stationNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := GenerateCoverageRosterExport(stationNumber, coverage)
	if err != nil {
		h.logger.Error("coverage roster export failed", zap.String("station", stationNumber), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "export failed"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="station-%s-roster.xlsx"`, stationNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
