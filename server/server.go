package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paper2code/config"
	"paper2code/generator"
	"paper2code/runner"
)

const defaultRunTimeout = 5 * time.Minute

type Server struct {
	runner     *runner.Runner
	outputRoot string
	timeout    time.Duration
	logger     *zap.Logger
}

func New(r *runner.Runner, outputRoot string, logger *zap.Logger) (*Server, error) {
	if r == nil {
		return nil, errors.New("stage runner required")
	}
	if outputRoot == "" {
		outputRoot = config.Default().OutputRoot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		runner:     r,
		outputRoot: outputRoot,
		timeout:    defaultRunTimeout,
		logger:     logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stages", s.handleStages)
	mux.HandleFunc("/api/stages/", s.handleStageRun)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type stageRunReq struct {
	PaperName   string   `json:"paper_name"`
	PaperFormat string   `json:"paper_format"`
	Content     string   `json:"content"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
}

type stageRunResp struct {
	RunID        string   `json:"run_id"`
	Stage        string   `json:"stage"`
	Kind         string   `json:"kind"`
	Text         string   `json:"text"`
	ResponsePath string   `json:"response_path"`
	Files        []string `json:"files,omitempty"`
}

type stagesResp struct {
	Stages []string `json:"stages"`
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	resp := stagesResp{}
	for _, st := range generator.Stages {
		resp.Stages = append(resp.Stages, string(st))
	}
	writeJSON(w, resp)
}

func (s *Server) handleStageRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stage, err := generator.ParseStage(strings.TrimPrefix(r.URL.Path, "/api/stages/"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req stageRunReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PaperFormat == "" {
		req.PaperFormat = string(generator.FormatJSON)
	}
	format, err := generator.ParsePaperFormat(req.PaperFormat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	paper, err := generator.NewPaper(format, []byte(req.Content), "request")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := uuid.NewString()
	runDir := filepath.Join(s.outputRoot, runID)
	opts := runner.Options{
		Stage:       stage,
		PaperName:   req.PaperName,
		PaperFormat: string(format),
		// Empty means the client's configured model.
		Model:       req.Model,
		Temperature: 1.0,
		MaxTokens:   4000,
		OutputDir:   runDir,
	}
	if req.Temperature != nil {
		opts.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		opts.MaxTokens = *req.MaxTokens
	}
	if stage == generator.StageCoding {
		opts.OutputRepoDir = filepath.Join(runDir, "repo")
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	out, err := s.runner.RunPaper(ctx, opts, paper)
	if err != nil {
		s.logger.Error("stage run failed", zap.String("run_id", runID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stageRunResp{
		RunID:        runID,
		Stage:        string(out.Stage),
		Kind:         out.Result.Kind.String(),
		Text:         out.Result.Text,
		ResponsePath: out.ResponsePath,
		Files:        out.ScaffoldPaths,
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
