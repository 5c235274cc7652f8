package handlers

import (
	"strings"

	"rfp-desk/internal/dto"
	"rfp-desk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AIHandler exposes the stateless extraction and comparison operations.
type AIHandler struct {
	procurement *service.ProcurementService
	gateway     *service.Gateway
	storage     bool
	logger      *zap.Logger
}

func NewAIHandler(procurement *service.ProcurementService, gateway *service.Gateway, storage bool, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		procurement: procurement,
		gateway:     gateway,
		storage:     storage,
		logger:      logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports whether the text generation gateway and storage are enabled
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *AIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:           "ok",
		GatewayAvailable: h.gateway.Available(),
		Storage:          h.storage,
	})
}

// ParseRFP godoc
// @Summary Parse an RFP description
// @Description Turn a free-text procurement request into structured data
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ParseRFPRequest true "RFP description"
// @Success 200 {object} dto.ParseRFPResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ai/parse-rfp [post]
func (h *AIHandler) ParseRFP(c *fiber.Ctx) error {
	var req dto.ParseRFPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return badRequest(c, "Description is required")
	}

	out := h.procurement.ExtractRFPOutcome(c.UserContext(), req.Description)
	return c.JSON(dto.ParseRFPResponse{
		Success: true,
		Data:    out.Data,
		Source:  string(out.Source),
	})
}

// ParseResponse godoc
// @Summary Parse a vendor reply
// @Description Extract the offer from a vendor email and score it against the RFP
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ParseResponseRequest true "Vendor email and RFP"
// @Success 200 {object} dto.ParseResponseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ai/parse-response [post]
func (h *AIHandler) ParseResponse(c *fiber.Ctx) error {
	var req dto.ParseResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.EmailContent.Body) == "" && strings.TrimSpace(req.EmailContent.Subject) == "" {
		return badRequest(c, "Email content is required")
	}

	out := h.procurement.ExtractProposalOutcome(c.UserContext(), req.EmailContent, req.RFP)
	return c.JSON(dto.ParseResponseResponse{
		Success: true,
		Data:    out.Data,
		Source:  string(out.Source),
	})
}

// ParseResponses godoc
// @Summary Parse several vendor replies
// @Description Batch variant of parse-response; results keep the request order
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ParseResponsesRequest true "Vendor emails and RFP"
// @Success 200 {object} dto.ParseResponsesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ai/parse-responses [post]
func (h *AIHandler) ParseResponses(c *fiber.Ctx) error {
	var req dto.ParseResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Emails) == 0 {
		return badRequest(c, "At least one email is required")
	}

	outcomes := h.procurement.ExtractProposals(c.UserContext(), req.Emails, req.RFP)
	results := make([]dto.ParsedProposalResult, 0, len(outcomes))
	for _, out := range outcomes {
		results = append(results, dto.ParsedProposalResult{
			ParsedProposal: out.Data,
			Source:         string(out.Source),
		})
	}
	return c.JSON(dto.ParseResponsesResponse{Success: true, Data: results})
}

// Compare godoc
// @Summary Compare proposals
// @Description Rank proposals for one RFP and recommend a vendor
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.CompareRequest true "Proposals and RFP context"
// @Success 200 {object} dto.CompareResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/ai/compare [post]
func (h *AIHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out := h.procurement.CompareProposalsOutcome(c.UserContext(), req.Proposals, req.RFP)
	return c.JSON(dto.CompareResponse{
		Success: true,
		Data:    out.Data,
		Source:  string(out.Source),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
