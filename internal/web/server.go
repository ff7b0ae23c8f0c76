// Package web serves the HTML form, the interactive single-page app and the
// JSON API that backs it.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"newscheck/internal/models"
	"newscheck/internal/pipeline"
	"newscheck/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

// Analyzer is the pipeline as seen by the handlers.
type Analyzer interface {
	AnalyzeText(ctx context.Context, raw string) (models.Analysis, error)
	AnalyzeURL(ctx context.Context, rawURL string) (models.Analysis, error)
}

type Server struct {
	analyzer  Analyzer
	log       *logger.Logger
	templates *template.Template
	mux       *http.ServeMux
}

func NewServer(a Analyzer, l *logger.Logger) *Server {
	funcs := template.FuncMap{
		"title": func(s string) string { return cases.Title(language.English).String(s) },
	}
	s := &Server{
		analyzer:  a,
		log:       l,
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.index)
	s.mux.HandleFunc("/predict", s.predict)
	s.mux.HandleFunc("/app", s.app)
	s.mux.HandleFunc("/api/analyze", s.analyze)
	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Handler returns the mux wrapped in request-id, logging and CORS middleware.
func (s *Server) Handler() http.Handler {
	return s.logRequest(cors(s.mux))
}

type formView struct {
	Warning string
}

type resultView struct {
	Name       string
	Error      string
	Label      string
	Confidence string
	Analysis   *models.Analysis
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.render(w, http.StatusOK, "index.html", formView{})
}

// predict handles the classic form post: field "namequery" holds article text.
func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "index.html", formView{Warning: "Could not read the submitted form."})
		return
	}
	name := r.PostFormValue("namequery")
	if strings.TrimSpace(name) == "" {
		s.render(w, http.StatusBadRequest, "index.html", formView{Warning: "Please enter some article text."})
		return
	}

	an, err := s.analyzer.AnalyzeText(r.Context(), name)
	if err != nil {
		status, _, msg := describe(err, models.SourceText)
		s.render(w, status, "results.html", resultView{Name: name, Error: msg})
		return
	}
	s.render(w, http.StatusOK, "results.html", resultView{
		Name:       name,
		Label:      an.Prediction.Label,
		Confidence: an.Confidence,
		Analysis:   &an,
	})
}

func (s *Server) app(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.render(w, http.StatusOK, "app.html", nil)
}

type analyzeReq struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// POST /api/analyze  { "url": "https://..." } or { "text": "..." }
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req analyzeReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, pipeline.KindInvalidInput, "invalid payload")
		return
	}

	var (
		an  models.Analysis
		err error
		src models.Source
	)
	switch {
	case strings.TrimSpace(req.URL) != "":
		src = models.SourceURL
		an, err = s.analyzer.AnalyzeURL(r.Context(), req.URL)
	case strings.TrimSpace(req.Text) != "":
		src = models.SourceText
		an, err = s.analyzer.AnalyzeText(r.Context(), req.Text)
	default:
		writeError(w, http.StatusBadRequest, pipeline.KindInvalidInput, "Please enter a valid URL.")
		return
	}
	if err != nil {
		status, kind, msg := describe(err, src)
		writeError(w, status, kind, msg)
		return
	}
	writeJSON(w, http.StatusOK, an)
}

// describe maps a pipeline error onto an HTTP status, an error kind and the
// message shown to the user.
func describe(err error, src models.Source) (int, pipeline.ErrorKind, string) {
	kind := pipeline.KindOf(err)
	switch kind {
	case pipeline.KindFetch:
		return http.StatusBadGateway, kind, "Error scraping the URL: " + err.Error()
	case pipeline.KindInsufficientContent:
		if src == models.SourceURL {
			return http.StatusUnprocessableEntity, kind,
				"Error: Insufficient content scraped from the URL. Please try a different URL."
		}
		return http.StatusUnprocessableEntity, kind, "Not enough text to analyze."
	case pipeline.KindInvalidInput:
		return http.StatusBadRequest, kind, "Please enter a valid URL."
	default:
		return http.StatusInternalServerError, kind, "Analysis failed. Please try again."
	}
}

func (s *Server) render(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorf("render %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind pipeline.ErrorKind, msg string) {
	writeJSON(w, code, map[string]string{"error": msg, "kind": string(kind)})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.With("request_id", id).Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
