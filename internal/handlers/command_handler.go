package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/access-service/internal/metrics"
	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/services"
	"github.com/senyabanana/access-service/internal/utils"
)

// CommandHandler - структура для обработки команд.
type CommandHandler struct {
	Items     *services.ItemsService
	Tenders   *services.TenderService
	Criteria  *services.CriteriaService
	Framework *services.FrameworkService
	History   repository.HistoryRepository
	Metrics   *metrics.Metrics
	Logger    *log.Logger
	Timeout   time.Duration
}

// NewCommandHandler создаёт новый экземпляр CommandHandler.
func NewCommandHandler(
	items *services.ItemsService,
	tenders *services.TenderService,
	criteria *services.CriteriaService,
	framework *services.FrameworkService,
	history repository.HistoryRepository,
	m *metrics.Metrics,
	logger *log.Logger,
	timeout time.Duration,
) *CommandHandler {
	return &CommandHandler{
		Items:     items,
		Tenders:   tenders,
		Criteria:  criteria,
		Framework: framework,
		History:   history,
		Metrics:   m,
		Logger:    logger,
		Timeout:   timeout,
	}
}

// HandleCommand разбирает конверт команды, выполняет действие и формирует ответ.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var cmd models.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.sendError(w, cmd, models.ErrInvalidParams.WithDetails("invalid request body: %v", err))
		return
	}
	if cmd.ID == "" || cmd.Action == "" {
		h.sendError(w, cmd, models.ErrInvalidParams.WithDetails("command id and action are required"))
		return
	}

	started := time.Now()

	if stored, ok := h.findHistory(ctx, cmd); ok {
		h.Metrics.ObserveCommand(string(cmd.Action), "replayed", time.Since(started))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(stored); err != nil {
			h.Logger.Println(err)
		}
		return
	}

	result, err := h.dispatch(ctx, cmd)
	if err != nil {
		h.Metrics.ObserveCommand(string(cmd.Action), string(models.StatusError), time.Since(started))
		h.sendError(w, cmd, err)
		return
	}

	body, err := json.Marshal(models.CommandResponse{
		ID:      cmd.ID,
		Version: cmd.Version,
		Status:  models.StatusSuccess,
		Result:  result,
	})
	if err != nil {
		h.sendError(w, cmd, models.ErrDataParse.WithDetails("encode response: %v", err))
		return
	}
	h.saveHistory(ctx, cmd, body)
	h.Metrics.ObserveCommand(string(cmd.Action), string(models.StatusSuccess), time.Since(started))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.Logger.Println(err)
	}
}

func (h *CommandHandler) dispatch(ctx context.Context, cmd models.Command) (any, error) {
	switch cmd.Action {
	case models.ActionCheckItems:
		var params models.CheckItemsParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		if !models.CheckItemsOperations.Contains(params.OperationType) {
			return nil, models.ErrOperationNotAllowed.WithDetails("'%s' for checkItems", params.OperationType)
		}
		return h.Items.CheckItems(ctx, params)

	case models.ActionCreateTender:
		var params models.CreateTenderParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return h.Tenders.CreateTender(ctx, params)

	case models.ActionUpdateTender:
		var params models.UpdateTenderParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return h.Tenders.UpdateTender(ctx, params)

	case models.ActionCheckCriteria:
		var params models.CheckCriteriaParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return nil, h.Criteria.CheckCriteria(ctx, params)

	case models.ActionCreateCriteria:
		var params models.CreateCriteriaParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return h.Criteria.CreateCriteria(ctx, params)

	case models.ActionGetCriteria:
		var params models.GetCriteriaParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return h.Criteria.GetCriteria(ctx, params)

	case models.ActionCheckFEData:
		var params models.CheckFEDataParams
		if err := decodeParams(cmd.Params, &params); err != nil {
			return nil, err
		}
		return nil, h.Framework.CheckFEData(ctx, params)

	default:
		return nil, models.ErrUnknownAction.WithDetails("'%s'", cmd.Action)
	}
}

// decodeParams разбирает параметры; типизированные ошибки разбора возвращаются как есть.
func decodeParams(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return models.ErrInvalidParams.WithDetails("params are required")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		var typed *models.ErrorResponse
		if errors.As(err, &typed) {
			return typed
		}
		return models.ErrInvalidParams.WithDetails("%v", err)
	}
	return nil
}

func (h *CommandHandler) findHistory(ctx context.Context, cmd models.Command) ([]byte, bool) {
	if h.History == nil {
		return nil, false
	}
	entry, err := h.History.Find(ctx, cmd.ID, cmd.Action)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Printf("history lookup for command %s (%s) failed: %v", cmd.ID, cmd.Action, err)
		}
		return nil, false
	}
	return entry.JsonData, true
}

func (h *CommandHandler) saveHistory(ctx context.Context, cmd models.Command, body []byte) {
	if h.History == nil {
		return
	}
	err := h.History.Save(ctx, models.HistoryEntity{
		CommandID:   cmd.ID,
		Action:      cmd.Action,
		CreatedDate: time.Now().UTC(),
		JsonData:    body,
	})
	if err != nil {
		h.Logger.Printf("history save for command %s (%s) failed: %v", cmd.ID, cmd.Action, err)
	}
}

// sendError пишет ответ с ошибкой; детали инцидентов остаются только в логе.
func (h *CommandHandler) sendError(w http.ResponseWriter, cmd models.Command, err error) {
	var errorResponse *models.ErrorResponse
	if !errors.As(err, &errorResponse) {
		errorResponse = models.ErrDatabase.WithDetails("%v", err)
	}
	h.Logger.Printf("command %s (%s) failed: %v; params: %s", cmd.ID, cmd.Action, err, string(cmd.Params))

	reported := *errorResponse
	if reported.Kind == models.KindIncident {
		reported.Message = "internal error"
	}
	utils.SendJSON(w, reported.StatusCode, models.CommandResponse{
		ID:      cmd.ID,
		Version: cmd.Version,
		Status:  models.StatusError,
		Result:  []models.ErrorResponse{reported},
	})
}
