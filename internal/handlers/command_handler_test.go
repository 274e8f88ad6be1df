package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyTenderRepo - хранилище без снимков; lookupErr подменяет ответ на чтение.
type emptyTenderRepo struct {
	lookupErr error
}

func (r *emptyTenderRepo) err() error {
	if r.lookupErr != nil {
		return r.lookupErr
	}
	return repository.ErrNotFound
}

func (r *emptyTenderRepo) GetByCpidAndOcid(context.Context, string, string) (*models.TenderProcessEntity, error) {
	return nil, r.err()
}

func (r *emptyTenderRepo) GetByCpidAndStage(context.Context, string, string) (*models.TenderProcessEntity, error) {
	return nil, r.err()
}

func (r *emptyTenderRepo) GetLatestByStages(context.Context, string, []string) (*models.TenderProcessEntity, error) {
	return nil, r.err()
}

func (r *emptyTenderRepo) Save(context.Context, models.TenderProcessEntity) error   { return nil }
func (r *emptyTenderRepo) Update(context.Context, models.TenderProcessEntity) error { return nil }

type memoryHistory struct {
	mu      sync.Mutex
	entries map[string]models.HistoryEntity
}

func (h *memoryHistory) Find(_ context.Context, commandID string, action models.Action) (*models.HistoryEntity, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.entries[commandID+"/"+string(action)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (h *memoryHistory) Save(_ context.Context, entry models.HistoryEntity) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[entry.CommandID+"/"+string(entry.Action)] = entry
	return nil
}

type fakeRules struct{}

func (fakeRules) Find(context.Context, string, string, string, string) (string, error) {
	return "", repository.ErrNotFound
}

func newTestHandler(repo repository.TenderProcessRepository) (*CommandHandler, *memoryHistory) {
	history := &memoryHistory{entries: make(map[string]models.HistoryEntity)}
	items := services.NewItemsService(repo)
	handler := NewCommandHandler(
		items,
		services.NewTenderService(repo, items),
		services.NewCriteriaService(repo),
		services.NewFrameworkService(repo, fakeRules{}),
		history,
		nil,
		log.New(io.Discard, "", 0),
		time.Second,
	)
	return handler, history
}

type responseBody struct {
	ID      string          `json:"id"`
	Version string          `json:"version"`
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result"`
}

type errorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func send(t *testing.T, handler *CommandHandler, body string) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/command", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleCommand(rec, req)

	var resp responseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func errorsOf(t *testing.T, resp responseBody) []errorBody {
	t.Helper()
	var errs []errorBody
	require.NoError(t, json.Unmarshal(resp.Result, &errs))
	require.NotEmpty(t, errs)
	return errs
}

func TestHandleCommand_CheckItems(t *testing.T) {
	handler, _ := newTestHandler(&emptyTenderRepo{})

	rec, resp := send(t, handler, `{
		"id": "cmd-1",
		"action": "checkItems",
		"version": "1.0.0",
		"params": {
			"operationType": "createCN",
			"cpid": "ocds-t1s2t3-MD-1",
			"items": [
				{"id": "1", "classification": {"id": "45111000-8"}, "relatedLot": "lot-1"},
				{"id": "2", "classification": {"id": "45112000-5"}, "relatedLot": "lot-1"}
			]
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cmd-1", resp.ID)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "success", resp.Status)

	var result models.CheckItemsResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.MdmValidation)
	require.NotNil(t, result.Tender)
	assert.Equal(t, "45110000-8", result.Tender.Classification.ID)
}

func TestHandleCommand_ReplaysStoredResponse(t *testing.T) {
	handler, history := newTestHandler(&emptyTenderRepo{})
	command := `{"id":"cmd-2","action":"checkItems","version":"1","params":{"operationType":"createPN","cpid":"c","items":[{"id":"1","classification":{"id":"%s"}}]}}`

	first, _ := send(t, handler, fmt.Sprintf(command, "45111000-8"))
	require.Equal(t, http.StatusOK, first.Code)
	require.Len(t, history.entries, 1)

	second, _ := send(t, handler, fmt.Sprintf(command, "33100000-1"))
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHandleCommand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "inconsistent items",
			body:       `{"id":"e1","action":"checkItems","params":{"operationType":"createCN","cpid":"c","items":[{"id":"1","classification":{"id":"45000000-7"}},{"id":"2","classification":{"id":"99000000-2"}}]}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "items.cpvCodesNotConsistent",
		},
		{
			name:       "unknown operation type",
			body:       `{"id":"e2","action":"checkItems","params":{"operationType":"launchRocket","cpid":"c"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "command.invalidParams",
		},
		{
			name:       "operation not allowed",
			body:       `{"id":"e3","action":"checkItems","params":{"operationType":"submitBid","cpid":"c"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "operation.notAllowed",
		},
		{
			name:       "unknown action",
			body:       `{"id":"e4","action":"launch","params":{}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "command.unknownAction",
		},
		{
			name:       "requirement value mismatch",
			body:       `{"id":"e5","action":"checkCriteria","params":{"criteria":[{"id":"c1","title":"t","requirementGroups":[{"id":"g1","requirements":[{"id":"r1","title":"t","dataType":"integer","expectedValue":1.5}]}]}]}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "requirement.invalidValue",
		},
		{
			name:       "tender not found",
			body:       `{"id":"e6","action":"getCriteria","params":{"cpid":"c","ocid":"c-EV-1"}}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "tender.notFound",
		},
		{
			name:       "missing params",
			body:       `{"id":"e7","action":"getCriteria"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "command.invalidParams",
		},
		{
			name:       "missing id",
			body:       `{"action":"getCriteria","params":{}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "command.invalidParams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, history := newTestHandler(&emptyTenderRepo{})

			rec, resp := send(t, handler, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantCode, errorsOf(t, resp)[0].Code)
			assert.Empty(t, history.entries)
		})
	}
}

func TestHandleCommand_HidesIncidentDetails(t *testing.T) {
	handler, _ := newTestHandler(&emptyTenderRepo{lookupErr: errors.New("dial tcp 10.0.0.5:5432: connection refused")})

	rec, resp := send(t, handler, `{"id":"i1","action":"getCriteria","params":{"cpid":"c","ocid":"c-EV-1"}}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	errs := errorsOf(t, resp)
	assert.Equal(t, "database.incident", errs[0].Code)
	assert.NotContains(t, errs[0].Description, "10.0.0.5")
}

func TestHandleCommand_InvalidBody(t *testing.T) {
	handler, _ := newTestHandler(&emptyTenderRepo{})

	rec, resp := send(t, handler, "{not json")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "command.invalidParams", errorsOf(t, resp)[0].Code)
}

func TestHandleCommand_RejectsOperationBeforeStorage(t *testing.T) {
	handler, _ := newTestHandler(&emptyTenderRepo{lookupErr: errors.New("connection refused")})

	rec, resp := send(t, handler, `{"id":"o1","action":"checkItems","params":{"operationType":"createFE","cpid":"c","ocid":"c-AP-1"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "operation.notAllowed", errorsOf(t, resp)[0].Code)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		pinger     fakePinger
		wantStatus int
	}{
		{name: "database up", pinger: fakePinger{}, wantStatus: http.StatusOK},
		{name: "database down", pinger: fakePinger{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPingHandler(tt.pinger, log.New(io.Discard, "", 0), time.Second)
			rec := httptest.NewRecorder()
			handler.Ping(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
