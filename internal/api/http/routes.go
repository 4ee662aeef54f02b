package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/greentrack/internal/advisor"
	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/energy"
	"github.com/i474232898/greentrack/internal/enrich"
)

var validate = validator.New()

// HeaderResultAccepted carries the accepted flag on every location route.
const HeaderResultAccepted = "X-Result-Accepted"

// Enricher runs the location enrichment pipeline.
type Enricher interface {
	EnrichSession(ctx context.Context, sessionID, query string, monthlyKWh float64) (enrich.Result, bool, error)
}

// SessionResults exposes the last accepted enrichment per session.
type SessionResults interface {
	Latest(id string) (enrich.Result, uint64, error)
}

// Advisor runs chat conversations.
type Advisor interface {
	Start() (advisor.Conversation, error)
	Get(id string) (advisor.Conversation, error)
	Send(ctx context.Context, conversationID, text string) (advisor.Reply, error)
}

// GenerationSource serves the latest simulated generation mix.
type GenerationSource interface {
	Latest() energy.GenerationSnapshot
}

// Dependencies are the services behind the HTTP API.
type Dependencies struct {
	Enricher   Enricher
	Sessions   SessionResults
	Advisor    Advisor
	Generation GenerationSource
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/enrich", func(c *fiber.Ctx) error {
		res, accepted, err := runEnrichment(c, deps.Enricher)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"accepted": accepted,
			"result":   res,
		})
	})

	v1.Get("/locations/carbon", func(c *fiber.Ctx) error {
		res, _, err := runEnrichment(c, deps.Enricher)
		if err != nil {
			return err
		}
		return c.JSON(res.Carbon)
	})

	v1.Get("/locations/renewable", func(c *fiber.Ctx) error {
		res, _, err := runEnrichment(c, deps.Enricher)
		if err != nil {
			return err
		}
		return c.JSON(res.Renewable)
	})

	v1.Post("/footprint", func(c *fiber.Ctx) error {
		var req footprintRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		intensity := float64(energy.DefaultIntensity)
		if req.Intensity != nil {
			intensity = *req.Intensity
		}
		return c.JSON(fiber.Map{
			"kwh":       *req.KWh,
			"intensity": intensity,
			"footprint": energy.CalculateFootprint(*req.KWh, intensity),
		})
	})

	v1.Get("/sessions/:id/latest", func(c *fiber.Ctx) error {
		res, seq, err := deps.Sessions.Latest(c.Params("id"))
		if err != nil {
			return mapError(err, "no result for session")
		}
		return c.JSON(fiber.Map{
			"sequence": seq,
			"result":   res,
		})
	})

	v1.Post("/advisor/conversations", func(c *fiber.Ctx) error {
		conv, err := deps.Advisor.Start()
		if err != nil {
			return mapError(err, "failed to start conversation")
		}
		return c.Status(fiber.StatusCreated).JSON(conv)
	})

	v1.Get("/advisor/conversations/:id", func(c *fiber.Ctx) error {
		conv, err := deps.Advisor.Get(c.Params("id"))
		if err != nil {
			return mapError(err, "conversation not found")
		}
		return c.JSON(conv)
	})

	v1.Post("/advisor/conversations/:id/messages", func(c *fiber.Ctx) error {
		var req messageRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reply, err := deps.Advisor.Send(c.UserContext(), c.Params("id"), req.Text)
		if err != nil {
			if errors.Is(err, advisor.ErrEmptyMessage) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return mapError(err, "conversation not found")
		}
		return c.JSON(reply)
	})

	v1.Get("/generation/realtime", func(c *fiber.Ctx) error {
		return c.JSON(deps.Generation.Latest())
	})
}

// enrichQuery holds query parameters for the location endpoints.
type enrichQuery struct {
	Location string  `validate:"required,max=200"`
	KWh      float64 `validate:"gte=0"`
	Session  string  `validate:"omitempty,max=128"`
}

func parseEnrichQuery(c *fiber.Ctx) (enrichQuery, error) {
	q := enrichQuery{
		Location: strings.TrimSpace(c.Query("location")),
		KWh:      enrich.DefaultMonthlyKWh,
		Session:  c.Query("session"),
	}

	if raw := c.Query("kwh"); raw != "" {
		kwh, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, errors.New("kwh must be a number")
		}
		q.KWh = kwh
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func runEnrichment(c *fiber.Ctx, enricher Enricher) (enrich.Result, bool, error) {
	q, err := parseEnrichQuery(c)
	if err != nil {
		return enrich.Result{}, false, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, accepted, err := enricher.EnrichSession(c.UserContext(), q.Session, q.Location, q.KWh)
	if err != nil {
		return enrich.Result{}, false, mapError(err, "failed to enrich location")
	}
	// false when a newer request of the same session already committed
	c.Set(HeaderResultAccepted, strconv.FormatBool(accepted))
	return res, accepted, nil
}

type footprintRequest struct {
	KWh       *float64 `json:"kwh" validate:"required,gte=0"`
	Intensity *float64 `json:"intensity" validate:"omitempty,gt=0"`
}

type messageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// mapError turns service errors into HTTP errors. fallback is the 404 or
// 500 message when err carries none worth exposing.
func mapError(err error, fallback string) error {
	var re *enrich.ResolveError
	switch {
	case errors.As(err, &re):
		return fiber.NewError(fiber.StatusNotFound, re.Error())
	case errors.Is(err, common.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, fallback)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}
