package utils

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/senyabanana/access-service/internal/models"
)

// SendJSON отправляет ответ в формате JSON
func SendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println(err)
	}
}

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, models.NewErrorResponse(statusCode, message))
}

// StageFromOcid извлекает стадию из ocid вида <cpid>-<STAGE>-<timestamp>.
func StageFromOcid(cpid, ocid string) (string, error) {
	prefix := cpid + "-"
	if cpid == "" || !strings.HasPrefix(ocid, prefix) {
		return "", models.ErrInvalidOcid.WithDetails("ocid '%s' does not belong to cpid '%s'", ocid, cpid)
	}
	rest := strings.TrimPrefix(ocid, prefix)
	stage, _, found := strings.Cut(rest, "-")
	if !found || stage == "" {
		return "", models.ErrInvalidOcid.WithDetails("ocid '%s'", ocid)
	}
	return stage, nil
}

// IsSubset проверяет, что каждый элемент subset есть в set
func IsSubset[T comparable](subset, set []T) bool {
	known := make(map[T]struct{}, len(set))
	for _, v := range set {
		known[v] = struct{}{}
	}
	for _, v := range subset {
		if _, ok := known[v]; !ok {
			return false
		}
	}
	return true
}
