package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/response"
	"github.com/sajilokart/kicks-order-service/internal/domain"
)

// bindStrict decodes the body into a typed request struct and rejects
// unknown fields before anything reaches business logic, then runs the
// binding validators.
func bindStrict(c *gin.Context, out any) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(out)
}

// respondError maps the domain error taxonomy onto the HTTP boundary.
func respondError(c *gin.Context, err error) {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		c.JSON(http.StatusBadRequest, response.RejectionResponse{
			Message:         err.Error(),
			Rule:            te.Rule,
			CurrentStatus:   te.From,
			RequestedStatus: te.To,
			ValidNext:       te.ValidNext,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrOrphanedPayment):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrCancelNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrDeleteDelivered):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrGatewayInconclusive):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
