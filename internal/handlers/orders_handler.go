package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/aws"
	"orderflow/internal/orders"
	"orderflow/internal/validation"
)

// HandlerConfig groups dependencies for the orders routes.
type HandlerConfig struct {
	Service *orders.Service
	Logger  *zap.Logger
}

// RegisterOrdersRoutes maps the /orders front door onto the order service.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.GET("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()
		email := c.Query("email")
		orderID := c.Query("orderId")

		switch {
		case email == "" && orderID == "":
			result, err := cfg.Service.ListAll(ctx)
			if err != nil {
				respondInternal(c, cfg.Logger, "list all orders failed", err)
				return
			}
			c.JSON(http.StatusOK, result)

		case email != "" && orderID == "":
			result, err := cfg.Service.ListByEmail(ctx, email)
			if err != nil {
				respondInternal(c, cfg.Logger, "list orders failed", err)
				return
			}
			c.JSON(http.StatusOK, result)

		case email != "" && orderID != "":
			result, err := cfg.Service.Get(ctx, email, orderID)
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if err != nil {
				respondInternal(c, cfg.Logger, "get order failed", err)
				return
			}
			c.JSON(http.StatusOK, result)

		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId requires email"})
		}
	})

	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		// Validation already checked the enum tags; the parses produce the
		// typed values.
		payment, err := orders.ParsePaymentType(req.Payment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		shippingType, err := orders.ParseShippingType(req.Shipping.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		carrier, err := orders.ParseCarrierType(req.Shipping.Carrier)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := cfg.Service.Create(ctx, orders.CreateOrderInput{
			Email:      req.Email,
			ProductIDs: req.ProductIDs,
			Payment:    payment,
			Shipping: orders.Shipping{
				Type:    shippingType,
				Carrier: carrier,
			},
			RequestID: requestID(c),
		})
		if errors.Is(err, orders.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, orders.ErrNoProducts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			respondInternal(c, cfg.Logger, "create order failed", err)
			return
		}
		c.JSON(http.StatusCreated, result)
	})

	r.DELETE("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()
		email := c.Query("email")
		orderID := c.Query("orderId")
		if email == "" || orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and orderId are required"})
			return
		}

		result, err := cfg.Service.Delete(ctx, email, orderID, requestID(c))
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			respondInternal(c, cfg.Logger, "delete order failed", err)
			return
		}
		c.JSON(http.StatusOK, result)
	})
}

// requestID picks the upstream trace id, or mints one so every published
// event carries a correlation id.
func requestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-Id"); id != "" {
		return id
	}
	return uuid.NewString()
}

func respondInternal(c *gin.Context, log *zap.Logger, msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	if code := aws.ErrorCode(err); code != "" {
		fields = append(fields, zap.String("aws_error_code", code))
	}
	log.Error(msg, fields...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
