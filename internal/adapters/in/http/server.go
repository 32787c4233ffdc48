// Package http exposes the order tracking operations over REST using
// Echo. Handlers translate between wire types and application
// commands/queries, and map domain errors onto HTTP status codes.
package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/export"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	closeOrderHandler       commands.CloseOrderCommandHandler
	listOrdersHandler       queries.ListOrdersQueryHandler
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler

	cells kernel.CellSet
	db    *gorm.DB
}

// NewServer creates an HTTP server with the required command and query handlers.
// The database connection is only used by the health endpoint.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	closeOrderHandler commands.CloseOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler,
	cells kernel.CellSet,
	db *gorm.DB,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		closeOrderHandler:       closeOrderHandler,
		listOrdersHandler:       listOrdersHandler,
		getOrderByNumberHandler: getOrderByNumberHandler,
		cells:                   cells,
		db:                      db,
	}
}

// RegisterRoutes attaches all endpoints to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/orders", s.CreateOrder)
	e.GET("/api/orders", s.ListOrders)
	e.PUT("/api/orders/:id/close", s.CloseOrder)
	e.GET("/api/orders/number/:number", s.GetOrderByNumber)
	e.GET("/api/export/excel", s.ExportExcel)
	e.GET("/api/export/pdf", s.ExportPDF)
	e.GET("/health", s.Health)
}

type newAccessoryRequest struct {
	AccessoryType string `json:"accessory_type"`
	Quantity      int    `json:"quantity"`
}

type newOrderRequest struct {
	OrderNumber    string                `json:"order_number"`
	ExtraAccessory bool                  `json:"extra_accessory"`
	Cell           string                `json:"cell"`
	Accessories    []newAccessoryRequest `json:"accessories"`
}

type createOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type closeOrderRequest struct {
	AccessoriesAdded bool `json:"accessories_added"`
}

type accessoryResponse struct {
	ID            int64  `json:"id"`
	AccessoryType string `json:"accessory_type"`
	Quantity      int    `json:"quantity"`
}

type orderResponse struct {
	ID               int64               `json:"id"`
	OrderNumber      string              `json:"order_number"`
	ExtraAccessory   bool                `json:"extra_accessory"`
	Cell             string              `json:"cell"`
	OrderDate        string              `json:"order_date"`
	IsClosed         bool                `json:"is_closed"`
	AccessoriesAdded bool                `json:"accessories_added"`
	Accessories      []accessoryResponse `json:"accessories"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrder handles POST /api/orders. A number that already exists
// is not an error: the handler transparently appends the submitted
// accessories to the existing order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req newOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cell, err := s.cells.Cell(req.Cell)
	if err != nil {
		return s.writeError(ctx, err)
	}

	lines := make([]commands.LineItem, 0, len(req.Accessories))
	for _, accessory := range req.Accessories {
		lines = append(lines, commands.LineItem{
			AccessoryType: accessory.AccessoryType,
			Quantity:      accessory.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(req.OrderNumber, req.ExtraAccessory, cell, lines)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID})
}

// ListOrders handles GET /api/orders with optional q (order number
// substring) and date (order date prefix) parameters.
func (s *Server) ListOrders(ctx echo.Context) error {
	views, err := s.listOrders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]orderResponse, 0, len(views))
	for _, view := range views {
		response = append(response, toOrderResponse(view))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CloseOrder handles PUT /api/orders/:id/close.
func (s *Server) CloseOrder(ctx echo.Context) error {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "order id must be an integer",
		})
	}

	var req closeOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCloseOrderCommand(orderID, req.AccessoriesAdded)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.closeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderByNumber handles GET /api/orders/number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.getOrderByNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// ExportExcel handles GET /api/export/excel. Accepts the same q and
// date parameters as the listing; responds 404 when nothing matches.
func (s *Server) ExportExcel(ctx echo.Context) error {
	views, err := s.listOrders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if len(views) == 0 {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "no orders to export",
		})
	}

	var buf bytes.Buffer
	if err = export.WriteExcel(&buf, views); err != nil {
		return s.writeError(ctx, err)
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		`attachment; filename="`+export.FileName("pedidos", ".xlsx")+`"`,
	)
	return ctx.Blob(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportPDF handles GET /api/export/pdf.
func (s *Server) ExportPDF(ctx echo.Context) error {
	views, err := s.listOrders(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if len(views) == 0 {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "no orders to export",
		})
	}

	var buf bytes.Buffer
	if err = export.WritePDF(&buf, views); err != nil {
		return s.writeError(ctx, err)
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		`attachment; filename="`+export.FileName("pedidos", ".pdf")+`"`,
	)
	return ctx.Blob(http.StatusOK, contentTypePDF, buf.Bytes())
}

// Health handles GET /health with a database ping.
func (s *Server) Health(ctx echo.Context) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request().Context())
	}
	if err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}

func (s *Server) listOrders(ctx echo.Context) ([]queries.OrderView, error) {
	filter := queries.NewSearchFilter(
		ctx.QueryParam("q"),
		ctx.QueryParam("date"),
	)
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return nil, err
	}

	return s.listOrdersHandler.Handle(ctx.Request().Context(), query)
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}

func toOrderResponse(view queries.OrderView) orderResponse {
	accessories := make([]accessoryResponse, 0, len(view.Accessories))
	for _, accessory := range view.Accessories {
		accessories = append(accessories, accessoryResponse{
			ID:            accessory.ID,
			AccessoryType: accessory.AccessoryType,
			Quantity:      accessory.Quantity,
		})
	}

	return orderResponse{
		ID:               view.ID,
		OrderNumber:      view.OrderNumber,
		ExtraAccessory:   view.ExtraAccessory,
		Cell:             view.Cell,
		OrderDate:        view.OrderDate.Format(order.DateLayout),
		IsClosed:         view.IsClosed,
		AccessoriesAdded: view.AccessoriesAdded,
		Accessories:      accessories,
	}
}
