package handlers

import (
	"errors"
	"strings"

	"rfp-desk/internal/dto"
	"rfp-desk/internal/models"
	"rfp-desk/internal/repository"
	"rfp-desk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RFPHandler serves the storage backed workflow.
type RFPHandler struct {
	rfpService *service.RFPService
	logger     *zap.Logger
}

func NewRFPHandler(rfpService *service.RFPService, logger *zap.Logger) *RFPHandler {
	return &RFPHandler{
		rfpService: rfpService,
		logger:     logger,
	}
}

// CreateRFP godoc
// @Summary Create an RFP
// @Description Store a new RFP together with its structured data
// @Tags rfps
// @Accept json
// @Produce json
// @Param request body dto.CreateRFPRequest true "RFP"
// @Success 201 {object} dto.RFPResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/rfps [post]
func (h *RFPHandler) CreateRFP(c *fiber.Ctx) error {
	var req dto.CreateRFPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return badRequest(c, "Description is required")
	}

	rfp, source, err := h.rfpService.CreateRFP(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return h.fail(c, "Failed to create RFP", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewRFPResponse(rfp, h.rfpService.OutgoingSubject(rfp)),
		"source":  source,
	})
}

// ListRFPs godoc
// @Summary List RFPs
// @Tags rfps
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Success 200 {array} dto.RFPResponse
// @Router /api/v1/rfps [get]
func (h *RFPHandler) ListRFPs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rfps, err := h.rfpService.ListRFPs(c.UserContext(), uint64(limit))
	if err != nil {
		return h.fail(c, "Failed to list RFPs", err)
	}

	resp := make([]dto.RFPResponse, 0, len(rfps))
	for _, rfp := range rfps {
		resp = append(resp, dto.NewRFPResponse(rfp, h.rfpService.OutgoingSubject(rfp)))
	}
	return c.JSON(dto.DataResponse[[]dto.RFPResponse]{Success: true, Data: resp})
}

// GetRFP godoc
// @Summary Get an RFP
// @Tags rfps
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} dto.RFPResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/rfps/{id} [get]
func (h *RFPHandler) GetRFP(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid RFP ID")
	}

	rfp, err := h.rfpService.GetRFP(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to load RFP", err)
	}
	return c.JSON(dto.DataResponse[dto.RFPResponse]{
		Success: true,
		Data:    dto.NewRFPResponse(rfp, h.rfpService.OutgoingSubject(rfp)),
	})
}

// ListProposals godoc
// @Summary List the proposals of an RFP
// @Tags rfps
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {array} dto.ProposalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/rfps/{id}/proposals [get]
func (h *RFPHandler) ListProposals(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid RFP ID")
	}

	proposals, err := h.rfpService.ListProposals(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to list proposals", err)
	}

	resp := make([]dto.ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, dto.NewProposalResponse(p))
	}
	return c.JSON(dto.DataResponse[[]dto.ProposalResponse]{Success: true, Data: resp})
}

// RecordResponse godoc
// @Summary Record a vendor reply for an RFP
// @Tags rfps
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Param request body dto.RecordResponseRequest true "Vendor reply"
// @Success 201 {object} dto.ProposalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/rfps/{id}/responses [post]
func (h *RFPHandler) RecordResponse(c *fiber.Ctx) error {
	rfpID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid RFP ID")
	}
	vendorID, email, msg := parseReply(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	proposal, err := h.rfpService.RecordResponse(c.UserContext(), rfpID, vendorID, email)
	if err != nil {
		return h.fail(c, "Failed to record response", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[dto.ProposalResponse]{
		Success: true,
		Data:    dto.NewProposalResponse(proposal),
	})
}

// RecordReply godoc
// @Summary Record a vendor reply by its subject tag
// @Description The RFP is taken from the [RFP-<id>] tag in the subject
// @Tags rfps
// @Accept json
// @Produce json
// @Param request body dto.RecordResponseRequest true "Vendor reply"
// @Success 201 {object} dto.ProposalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/responses [post]
func (h *RFPHandler) RecordReply(c *fiber.Ctx) error {
	vendorID, email, msg := parseReply(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	proposal, err := h.rfpService.RecordReply(c.UserContext(), vendorID, email)
	if err != nil {
		return h.fail(c, "Failed to record reply", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[dto.ProposalResponse]{
		Success: true,
		Data:    dto.NewProposalResponse(proposal),
	})
}

// CompareRFP godoc
// @Summary Compare the stored proposals of an RFP
// @Description Computed on every call, never cached
// @Tags rfps
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} dto.CompareResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/rfps/{id}/compare [get]
func (h *RFPHandler) CompareRFP(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid RFP ID")
	}

	out, err := h.rfpService.CompareRFP(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to compare proposals", err)
	}
	return c.JSON(dto.CompareResponse{
		Success: true,
		Data:    out.Data,
		Source:  string(out.Source),
	})
}

// CreateVendor godoc
// @Summary Register a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param request body dto.CreateVendorRequest true "Vendor"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/vendors [post]
func (h *RFPHandler) CreateVendor(c *fiber.Ctx) error {
	var req dto.CreateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return badRequest(c, "Name and email are required")
	}

	vendor, err := h.rfpService.CreateVendor(c.UserContext(), req.Name, req.Email, req.ContactPerson)
	if err != nil {
		return h.fail(c, "Failed to create vendor", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[dto.VendorResponse]{
		Success: true,
		Data:    dto.NewVendorResponse(vendor),
	})
}

// ListVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Success 200 {array} dto.VendorResponse
// @Router /api/v1/vendors [get]
func (h *RFPHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.rfpService.ListVendors(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list vendors", err)
	}

	resp := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, dto.NewVendorResponse(v))
	}
	return c.JSON(dto.DataResponse[[]dto.VendorResponse]{Success: true, Data: resp})
}

// parseReply returns a client error message when the body is unusable.
func parseReply(c *fiber.Ctx) (uuid.UUID, models.VendorEmail, string) {
	var req dto.RecordResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, models.VendorEmail{}, "Invalid request body"
	}
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return uuid.Nil, models.VendorEmail{}, "Invalid vendor ID"
	}
	if strings.TrimSpace(req.Body) == "" {
		return uuid.Nil, models.VendorEmail{}, "Email body is required"
	}
	return vendorID, models.VendorEmail{Subject: req.Subject, Body: req.Body}, ""
}

// fail maps service errors to a status code; unexpected ones are logged.
func (h *RFPHandler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrNoRFPReference):
		return badRequest(c, err.Error())
	}
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msg})
}
