package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/logging"
	"tableflip.dev/bento/pkg/store"
)

// session is what every command needs: settings, a loaded service and a way
// to release the log file.
type session struct {
	Settings *store.Settings
	Service  *app.Service
	close    func()
}

func (s *session) Close() {
	if s.close != nil {
		s.close()
	}
}

// openSession loads config, opens the log file and persistence, and loads the
// plan for today.
func openSession(ctx context.Context) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	logOut, closeLog, err := openLog(settings.LogPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Options{Writer: logOut, Level: settings.LogLevel, Prefix: "bento"})

	p, err := store.Load(settings)
	if err != nil {
		closeLog()
		return nil, err
	}

	ex, err := newExtractor(ctx, settings)
	if err != nil {
		closeLog()
		return nil, err
	}

	svc := &app.Service{
		Persistence: p,
		Extractor:   ex,
		Logger:      logger,
	}
	if err := svc.Load(ctx); err != nil {
		closeLog()
		return nil, err
	}
	logger.Debug("session opened", "path", settings.BasePath(), "config", settings.File)
	return &session{Settings: settings, Service: svc, close: closeLog}, nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newExtractor uses Gemini when an API key is configured and splits lines
// otherwise.
func newExtractor(ctx context.Context, s *store.Settings) (extract.Extractor, error) {
	if s.Gemini.APIKey == "" {
		return extract.Lines{}, nil
	}
	return extract.NewGemini(ctx, extract.GeminiOptions{
		APIKey:   s.Gemini.APIKey,
		Model:    s.Gemini.Model,
		Endpoint: s.Gemini.Endpoint,
	})
}
