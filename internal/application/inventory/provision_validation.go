package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
)

// ProvisionCommand entrada ya validada y tipada para ProvisionProductUseCase.Provision.
type ProvisionCommand struct {
	Name            string
	SKU             string
	Price           decimal.Decimal
	WarehouseID     int64
	InitialQuantity int
	ProductTypeID   *int64
}

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON (name, sku, ...) en lugar del nombre Go.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreateProduct valida el payload en una sola pasada y devuelve el comando tipado o un
// *domain.ValidationError. Orden: campos faltantes (todos), tipos inválidos, cantidad negativa.
func ValidateCreateProduct(in dto.CreateProductRequest) (ProvisionCommand, *domain.ValidationError) {
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return ProvisionCommand{}, &domain.ValidationError{Kind: domain.ValidationInvalidTypes}
		}
		missing := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
		return ProvisionCommand{}, &domain.ValidationError{Kind: domain.ValidationMissingFields, Fields: missing}
	}

	cmd := ProvisionCommand{
		Name: rawText(*in.Name),
		SKU:  rawText(*in.SKU),
	}
	var invalid []string

	price, ok := parseDecimal(*in.Price)
	if !ok {
		invalid = append(invalid, "price")
	}
	cmd.Price = price

	warehouseID, ok := parseInt(*in.WarehouseID)
	if !ok {
		invalid = append(invalid, "warehouse_id")
	}
	cmd.WarehouseID = warehouseID

	qty, ok := parseInt(*in.InitialQuantity)
	if !ok || qty > math.MaxInt32 || qty < math.MinInt32 {
		invalid = append(invalid, "initial_quantity")
	}
	cmd.InitialQuantity = int(qty)

	if in.ProductTypeID != nil {
		typeID, ok := parseInt(*in.ProductTypeID)
		if !ok {
			invalid = append(invalid, "product_type_id")
		}
		cmd.ProductTypeID = &typeID
	}

	if len(invalid) > 0 {
		return ProvisionCommand{}, &domain.ValidationError{Kind: domain.ValidationInvalidTypes, Fields: invalid}
	}
	if cmd.InitialQuantity < 0 {
		return ProvisionCommand{}, &domain.ValidationError{
			Kind:   domain.ValidationNegativeQuantity,
			Fields: []string{"initial_quantity"},
		}
	}
	return cmd, nil
}

// rawText texto de un string JSON; otros escalares se toman por su literal.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// scalarText devuelve el texto de un string o número JSON e indica si venía como string.
func scalarText(raw json.RawMessage) (text string, quoted bool, ok bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true, true
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, false
	}
	num, isNum := v.(json.Number)
	if !isNum {
		return "", false, false
	}
	return num.String(), false, true
}

// parseDecimal acepta número o string numérico exacto ("19.99", 19.99, "1e2").
func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	text, _, ok := scalarText(raw)
	if !ok || text == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseInt acepta enteros JSON, números integrales (5.0) y strings enteros ("5").
// Un string con decimales ("5.0") o un número fraccionario (5.5) se rechaza.
func parseInt(raw json.RawMessage) (int64, bool) {
	text, quoted, ok := scalarText(raw)
	if !ok || text == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	if quoted {
		return 0, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	bi := d.BigInt()
	if !bi.IsInt64() {
		return 0, false
	}
	return bi.Int64(), true
}
