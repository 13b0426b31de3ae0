package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/pose"
	"github.com/2beens/repvision/internal/telemetry/tracing"
	"github.com/2beens/repvision/pkg"
)

const maxRequestBytes = 64 * megabyte

type AnalyzeRequest struct {
	VideoID      string           `json:"videoId"`
	ExerciseName string           `json:"exerciseName"`
	Frames       []*pose.Snapshot `json:"frames"`
}

type ListResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

type ExercisesResponse struct {
	Exercises []exercise.Profile `json:"exercises"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/analysis", handler.HandleAnalyze).Methods("POST", "OPTIONS").Name("new-analysis")
	r.HandleFunc("/analysis/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-analysis")
	r.HandleFunc("/analysis/video/{videoId}", handler.HandleListByVideo).Methods("GET", "OPTIONS").Name("video-analyses")
	r.HandleFunc("/analysis/list/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-analyses")
	r.HandleFunc("/exercises", handler.HandleExercises).Methods("GET", "OPTIONS").Name("list-exercises")
}

func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.new")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.Tracef("new analysis, unmarshal json body: %s", err)
		http.Error(w, "invalid analysis request", http.StatusBadRequest)
		return
	}

	if req.ExerciseName == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	record, err := handler.service.AnalyzeAndStore(ctx, AnalyzeParams{
		VideoID:      req.VideoID,
		ExerciseName: req.ExerciseName,
		Stream:       pose.NewSliceStream(req.Frames),
	})
	if err != nil {
		log.Errorf("failed to analyze [%s] for video [%s]: %s", req.ExerciseName, req.VideoID, err)
		http.Error(w, "error, analysis failed", http.StatusInternalServerError)
		return
	}

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal analysis record: %s", err)
		http.Error(w, "error, analysis failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new analysis stored: %s", record.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.get")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid analysis id", http.StatusBadRequest)
		return
	}

	record, err := handler.service.Get(ctx, id)
	if errors.Is(err, ErrAnalysisNotFound) {
		log.Debugf("analysis %s not found", id)
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get analysis %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal analysis record: %s", err)
		http.Error(w, "failed to marshal analysis", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusOK)
}

func (handler *Handler) HandleListByVideo(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.listbyvideo")
	defer span.End()

	videoID := mux.Vars(r)["videoId"]
	if videoID == "" {
		http.Error(w, "error, video id empty", http.StatusBadRequest)
		return
	}

	records, err := handler.service.ListByVideo(ctx, videoID)
	if err != nil {
		log.Errorf("failed to list analyses of video [%s]: %s", videoID, err)
		http.Error(w, "failed to get analyses", http.StatusInternalServerError)
		return
	}

	recordsJson, err := json.Marshal(ListResponse{
		Records: records,
		Total:   len(records),
	})
	if err != nil {
		log.Errorf("marshal analyses error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordsJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list analyses, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list analyses, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 || size > 100 {
		http.Error(w, "invalid size (has to be between 1 and 100)", http.StatusBadRequest)
		return
	}

	records, total, err := handler.service.List(ctx, page, size)
	if err != nil {
		log.Errorf("list analyses error: %s", err)
		http.Error(w, "failed to get analyses", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Records: records,
		Total:   total,
	})
	if err != nil {
		log.Errorf("marshal analyses error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.exercises")
	defer span.End()

	respJson, err := json.Marshal(ExercisesResponse{
		Exercises: handler.service.Analyzer().Registry().Profiles(),
	})
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
