package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, textLen int) {
	h.Logger.Debug("parse started", "bytes", textLen)
}

func (h *LogHooks) OnParseComplete(_ context.Context, sentences int, d time.Duration, err error) {
	h.done("parse", d, err, "sentences", sentences)
}

func (h *LogHooks) OnSentenceSkipped(_ context.Context, index int, code string) {
	h.Logger.Debug("sentence skipped", "index", index, "code", code)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, sentences int) {
	h.Logger.Debug("layout started", "sentences", sentences)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, compounds int, d time.Duration, err error) {
	h.done("layout", d, err, "compounds", compounds)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.Logger.Debug("request", "method", method, "path", path, "request_id", requestID)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request failed", "method", method, "path", path, "err", err)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	if err != nil {
		h.Logger.Warn(stage+" failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug(stage+" complete", append(kv, "duration", d)...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
