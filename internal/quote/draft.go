package quote

import (
	"encoding/json"
	"errors"

	"portal-backend/internal/models"
)

// Field names a single editable column of a quotation row. Updates are
// tagged with the field so each value decodes against its own type instead
// of an untyped blob.
type Field string

const (
	FieldCode       Field = "code"
	FieldDesc       Field = "desc"
	FieldQty        Field = "qty"
	FieldUnit       Field = "unit"
	FieldLandedCost Field = "landed_cost"
	FieldUnitPrice  Field = "unit_price"
	FieldDelivery   Field = "delivery"
)

var (
	ErrUnknownField  = errors.New("unknown item field")
	ErrBadValue      = errors.New("value does not match the field type")
	ErrRowOutOfRange = errors.New("item row index out of range")
)

// FieldUpdate is one tagged edit to one row.
type FieldUpdate struct {
	Field Field           `json:"field"`
	Value json.RawMessage `json:"value"`
}

// Lookup resolves a product code to its canonical description.
type Lookup interface {
	Find(code string) (string, bool)
}

// AddRow appends a blank row with the builder defaults.
func AddRow(items []models.InquiryItem) []models.InquiryItem {
	return append(items, models.NewItem())
}

// RemoveRow drops one row. Removing the last row is allowed; an empty list
// is a valid builder state.
func RemoveRow(items []models.InquiryItem, idx int) ([]models.InquiryItem, error) {
	if idx < 0 || idx >= len(items) {
		return nil, ErrRowOutOfRange
	}
	return append(items[:idx], items[idx+1:]...), nil
}

// ApplyUpdate edits one field of one row. Setting the code looks it up in
// the catalog and overwrites the description on a match; on a miss the
// description is left untouched, including one auto-filled earlier.
func ApplyUpdate(items []models.InquiryItem, idx int, upd FieldUpdate, catalog Lookup) error {
	if idx < 0 || idx >= len(items) {
		return ErrRowOutOfRange
	}
	row := &items[idx]

	switch upd.Field {
	case FieldCode:
		v, err := stringValue(upd.Value)
		if err != nil {
			return err
		}
		row.Code = v
		if desc, ok := catalog.Find(v); ok {
			row.Desc = desc
		}
	case FieldDesc:
		v, err := stringValue(upd.Value)
		if err != nil {
			return err
		}
		row.Desc = v
	case FieldQty:
		v, err := numberValue(upd.Value)
		if err != nil {
			return err
		}
		row.Qty = v
	case FieldUnit:
		v, err := stringValue(upd.Value)
		if err != nil {
			return err
		}
		row.Unit = v
	case FieldLandedCost:
		v, err := numberValue(upd.Value)
		if err != nil {
			return err
		}
		row.LandedCost = v
	case FieldUnitPrice:
		v, err := numberValue(upd.Value)
		if err != nil {
			return err
		}
		row.UnitPrice = v
	case FieldDelivery:
		v, err := stringValue(upd.Value)
		if err != nil {
			return err
		}
		row.Delivery = v
	default:
		return ErrUnknownField
	}

	return nil
}

func stringValue(raw json.RawMessage) (string, error) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", ErrBadValue
	}
	return v, nil
}

func numberValue(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, ErrBadValue
	}
	return v, nil
}
