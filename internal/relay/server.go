// Package relay serves the HTTP bridge between the journal and the remote
// language model, and provides the client the CLI uses to call it.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/openai"
)

const (
	msgInvalidJournal = "Invalid or empty journal data"
	msgSummaryFailed  = "Failed to generate summary"
	msgInvalidAIJSON  = "Invalid JSON response from AI"
	msgInvalidMessage = "Invalid message format"
	msgChatFailed     = "Failed to generate response"
	msgNoResponse     = "No response generated"
)

// Upstream is the part of the model API the relay depends on.
type Upstream interface {
	ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (string, error)
	RunAssistant(ctx context.Context, assistantID, message string) (string, error)
}

type Server struct {
	app      *fiber.App
	cfg      Config
	upstream Upstream
	flights  singleflight.Group
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, upstream Upstream) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             constants.RelayBodyLimit,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	app.Use(cors.New())

	s := &Server{app: app, cfg: cfg, upstream: upstream}
	s.registerRoutes()
	return s
}

// App exposes the fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	addr := ":" + s.cfg.Port
	logger.Info("Summary relay listening", "addr", addr, "model", s.cfg.Model)
	return s.app.Listen(addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Post("/summary", s.handleSummary)
	api.Post("/chat", s.handleChat)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: msg})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(c.Body(), &entries); err != nil || len(entries) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidJournal)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, c.Body()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidJournal)
	}
	payload := compact.String()

	v, err, shared := s.flights.Do(payload, func() (any, error) {
		return s.summarize(payload, len(entries))
	})
	if shared {
		logger.Debug("Summary request shared an in-flight upstream call")
	}
	if err != nil {
		return err
	}
	return c.JSON(v.(models.Summary))
}

// summarize runs detached from the request context so that requests sharing
// the flight are not failed by the first caller going away.
func (s *Server) summarize(entriesJSON string, count int) (models.Summary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	logger.Info("Generating summary", "entries", count, "model", s.cfg.Model)
	start := time.Now()
	reply, err := s.upstream.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.Message{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: summaryPrompt(entriesJSON)},
		},
		Temperature: constants.SummaryTemperature,
		MaxTokens:   constants.SummaryMaxTokens,
	})
	if err != nil {
		logger.Error("Summary generation failed", "error", err)
		return models.Summary{}, fiber.NewError(fiber.StatusInternalServerError, msgSummaryFailed)
	}
	if reply == "" {
		reply = msgNoResponse
	}
	logger.Debug("Summary reply received", "bytes", len(reply), "elapsed", time.Since(start))

	summary, err := parseSummary(reply)
	if err != nil {
		logger.Error("Failed to parse summary reply", "error", err)
		return models.Summary{}, fiber.NewError(fiber.StatusInternalServerError, msgInvalidAIJSON)
	}
	return summary, nil
}

// parseSummary decodes a model reply into the fixed summary shape. Only the
// JSON syntax is checked; missing lists come back empty.
func parseSummary(reply string) (models.Summary, error) {
	var summary models.Summary
	if err := json.Unmarshal([]byte(cleanJSONContent(reply)), &summary); err != nil {
		return models.Summary{}, err
	}
	for _, list := range []*[]string{
		&summary.EmotionalPatterns,
		&summary.WeeklyThemes,
		&summary.LimitingBeliefs,
		&summary.StrengthsAndProgress,
		&summary.CoachingInsights,
		&summary.ReflectionQuestions,
		&summary.NextWeekFocus,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	return summary, nil
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidMessage)
	}
	message, ok := req.Message.(string)
	if !ok || message == "" {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidMessage)
	}

	if s.cfg.AssistantID == "" {
		logger.Error("Chat request rejected", "error", constants.EnvAssistantID+" is not set")
		return fiber.NewError(fiber.StatusInternalServerError, msgChatFailed)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.Timeout)
	defer cancel()

	reply, err := s.upstream.RunAssistant(ctx, s.cfg.AssistantID, message)
	if err != nil {
		logger.Error("Assistant run failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, msgChatFailed)
	}
	if reply == "" {
		reply = msgNoResponse
	}
	return c.JSON(models.ChatReply{Reply: reply})
}
