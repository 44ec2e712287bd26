package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/service"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// BlockHandler serves the dormitory-block endpoints.
type BlockHandler struct {
	blockSvc service.BlockService
}

// NewBlockHandler creates the BlockHandler.
func NewBlockHandler(blockSvc service.BlockService) *BlockHandler {
	return &BlockHandler{blockSvc: blockSvc}
}

// ListBlocks returns every block.
// GET /api/blocks/
func (h *BlockHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.blockSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": blocks})
}

// CreateBlock creates a block.
// POST /api/blocks/
func (h *BlockHandler) CreateBlock(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	block, err := h.blockSvc.Create(c.Request.Context(), &req, p)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlockExists):
			response.BadRequest(c, 14001, "block already exists")
		case errors.Is(err, service.ErrPermissionDenied):
			response.Forbidden(c, 10003, "insufficient permissions")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, block)
}
