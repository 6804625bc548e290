package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sitelen/pkg/buildinfo"
	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/pipeline"
	"github.com/matzehuels/sitelen/pkg/render"
)

// artifactKeyPrefix namespaces stored artifacts in the cache.
const artifactKeyPrefix = "sitelen:download:"

// =============================================================================
// Responses
// =============================================================================

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
	Vocabulary string `json:"vocabulary"`
}

type parseResponse struct {
	Sentences []grammar.Sentence       `json:"sentences"`
	Skipped   []pipeline.SentenceError `json:"skipped,omitempty"`
	ParseHash string                   `json:"parse_hash"`
	Cached    bool                     `json:"cached"`
}

type layoutResponse struct {
	Width     float64                  `json:"width"`
	Height    float64                  `json:"height"`
	Compounds []layout.Option          `json:"compounds"`
	Skipped   []pipeline.SentenceError `json:"skipped,omitempty"`
	Cached    bool                     `json:"cached"`
}

type renderResponse struct {
	Artifacts map[string]artifactRef   `json:"artifacts"`
	Skipped   []pipeline.SentenceError `json:"skipped,omitempty"`
	Stats     statsResponse            `json:"stats"`
	Cache     pipeline.CacheInfo       `json:"cache"`
}

type artifactRef struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type statsResponse struct {
	Sentences    int   `json:"sentences"`
	Compounds    int   `json:"compounds"`
	ParseMillis  int64 `json:"parse_ms"`
	LayoutMillis int64 `json:"layout_ms"`
	RenderMillis int64 `json:"render_ms"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Info:       buildinfo.Get(),
		Vocabulary: s.runner.Parser().Analyzer().Vocabulary().Version,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	parsed, hit, err := s.runner.ParseWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, _ := json.Marshal(parsed.Sentences)
	writeJSON(w, http.StatusOK, parseResponse{
		Sentences: parsed.Sentences,
		Skipped:   parsed.Skipped,
		ParseHash: cache.Hash(data),
		Cached:    hit,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	parsed, err := s.runner.Parse(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(ctx, parsed, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	size := l.Size()
	compounds := l.Compounds
	if compounds == nil {
		compounds = []layout.Option{}
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Width:     size.Width,
		Height:    size.Height,
		Compounds: compounds,
		Skipped:   parsed.Skipped,
		Cached:    hit,
	})
}

// handleRender runs the whole pipeline. With a single format and an Accept
// header naming its content type, the artifact is returned directly;
// otherwise every artifact is stored and referenced by id.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Title == "" {
		opts.Title = opts.Text
	}

	ctx := r.Context()
	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(opts.Formats) == 1 {
		format, _ := render.ParseFormat(opts.Formats[0])
		if accepts(r, format.ContentType()) {
			w.Header().Set("Content-Type", format.ContentType())
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(result.Artifacts[opts.Formats[0]])
			return
		}
	}

	refs := make(map[string]artifactRef, len(result.Artifacts))
	for name, data := range result.Artifacts {
		format, _ := render.ParseFormat(name)
		id := uuid.NewString() + "." + string(format)
		if err := s.store.Set(ctx, artifactKeyPrefix+id, data, cache.TTLArtifact); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store artifact"))
			return
		}
		refs[name] = artifactRef{
			ID:          id,
			URL:         "/v1/artifacts/" + id,
			ContentType: format.ContentType(),
			Size:        len(data),
		}
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Artifacts: refs,
		Skipped:   result.Skipped,
		Stats: statsResponse{
			Sentences:    result.Stats.SentenceCount,
			Compounds:    result.Stats.CompoundCount,
			ParseMillis:  millis(result.Stats.ParseTime),
			LayoutMillis: millis(result.Stats.LayoutTime),
			RenderMillis: millis(result.Stats.RenderTime),
		},
		Cache: result.CacheInfo,
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name, ext, ok := strings.Cut(id, ".")
	format, err := render.ParseFormat(ext)
	if _, uerr := uuid.Parse(name); !ok || uerr != nil || err != nil {
		s.writeError(w, r, errNotFound("artifact %q not found", id))
		return
	}

	data, hit, err := s.store.Get(r.Context(), artifactKeyPrefix+id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load artifact"))
		return
	}
	if !hit {
		s.writeError(w, r, errNotFound("artifact %q not found or expired", id))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(cache.TTLArtifact.Seconds())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions reads a JSON options document on top of the defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.Logger = s.logger

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return opts, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", MaxBodyBytes)
		case stderrors.Is(err, io.EOF):
			return opts, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		default:
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
		}
	}
	return opts, nil
}

// accepts reports whether the Accept header names contentType exactly.
func accepts(r *http.Request, contentType string) bool {
	want, _, _ := strings.Cut(contentType, ";")
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), want) {
			return true
		}
	}
	return false
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
