package health

import (
	"context"
	"log/slog"
	"time"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	bannerMessage       = "API is running. Try /health or /db-check"
	defaultProbeTimeout = 3 * time.Second
)

// Prober runs a trivial round trip against the database and returns its result.
type Prober interface {
	Probe(ctx context.Context) (int, error)
}

type Option func(*settings)

type settings struct {
	logger       *slog.Logger
	gatherer     prometheus.Gatherer
	sentry       bool
	probeTimeout time.Duration
}

// WithLogger logs failed probes and unhandled errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithGatherer mounts /metrics for the given gatherer.
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(s *settings) { s.gatherer = gatherer }
}

// WithSentry installs the Sentry middleware. sentry.Init must have been called before.
func WithSentry() Option {
	return func(s *settings) { s.sentry = true }
}

// WithProbeTimeout bounds a single /db-check probe.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.probeTimeout = timeout
		}
	}
}

// NewApp builds the fiber app with all routes registered.
func NewApp(prober Prober, options ...Option) *fiber.App {
	cfg := settings{
		logger:       slog.Default(),
		probeTimeout: defaultProbeTimeout,
	}
	for _, option := range options {
		option(&cfg)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(cfg.logger),
	})

	if cfg.sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())

	h := &handler{prober: prober, logger: cfg.logger, probeTimeout: cfg.probeTimeout}
	app.Get("/", h.root)
	app.Get("/health", h.health)
	app.Get("/db-check", h.dbCheck)

	if cfg.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{})))
	}

	return app
}

type handler struct {
	prober       Prober
	logger       *slog.Logger
	probeTimeout time.Duration
}

func (h *handler) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": bannerMessage})
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handler) dbCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.probeTimeout)
	defer cancel()

	result, err := h.prober.Probe(ctx)
	if err != nil {
		h.logger.Error("database probe failed", "error", err.Error())

		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database unavailable"})
	}

	return c.JSON(fiber.Map{"db_result": result})
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			message = "Internal server error"
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}

// Serve listens on addr until ctx is cancelled, then shuts the app down.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return app.ShutdownWithContext(shutdownCtx)
	}
}
