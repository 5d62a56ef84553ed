package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20

// newValidator returns a validator that reports JSON field names, compares
// decimals numerically and knows the domain enum tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("marketplace", func(fl validator.FieldLevel) bool {
		_, err := model.ParseMarketplace(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("finance_kind", func(fl validator.FieldLevel) bool {
		return model.FinanceKind(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("campaign_status", func(fl validator.FieldLevel) bool {
		return model.CampaignStatus(fl.Field().String()).IsValid()
	})

	return v
}

// decodeAndValidate decodes the JSON body into dst and validates it. On
// failure it writes a 400 response and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return false
		}
		details := make([]ValidationDetail, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
		writeErrorDetails(w, http.StatusBadRequest, "request validation failed", details)
		return false
	}

	return true
}

// validationMessage returns a human-readable validation message.
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "marketplace":
		return "Unknown marketplace"
	case "order_status":
		return "Unknown order status"
	case "finance_kind":
		return "Unknown finance record kind"
	case "campaign_status":
		return "Unknown campaign status"
	default:
		return "Invalid value"
	}
}
