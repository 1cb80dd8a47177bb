package types

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// ParseDate parses the date formats found in stored JSON columns and
// portfolio files. Results are in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// SafeParseJSON decodes value into T. A value that already is a T is returned
// unchanged, strings and byte slices are parsed, and any other value is
// re-encoded first (pgx hands JSONB back as map/slice values). Nil input or a
// decode failure yields fallback; failures are logged, never returned.
func SafeParseJSON[T any](value any, fallback T) T {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return fallback
	case T:
		return v
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			log.Printf("[types] Warning: failed to re-encode JSON value: %v", err)
			return fallback
		}
		raw = encoded
	}

	if len(raw) == 0 {
		return fallback
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[types] Warning: failed to parse JSON value: %v", err)
		return fallback
	}
	return out
}

// DecodeSalaryAdjustments decodes a salary_adjustments column value as the
// driver or a portfolio document hands it over (see SafeParseJSON). Keys may
// be camelCase or snake_case and numbers may be stored as strings. Elements
// without a usable date or a positive salary are dropped.
func DecodeSalaryAdjustments(value any) []SalaryAdjustment {
	items, ok := jsonArray(value, "salary adjustments")
	if !ok {
		return []SalaryAdjustment{}
	}

	out := make([]SalaryAdjustment, 0, len(items))
	for i, item := range items {
		adj := SalaryAdjustment{
			NewSalary: field(item, "newSalary", "new_salary").Int(),
			Reason:    field(item, "reason").String(),
		}
		if t, ok := ParseDate(field(item, "effectiveDate", "effective_date").String()); ok {
			adj.EffectiveDate = t
		}
		if prev := field(item, "previousSalary", "previous_salary"); prev.Exists() && prev.Type != gjson.Null {
			v := prev.Int()
			adj.PreviousSalary = &v
		}

		if err := recordValidator.Struct(adj); err != nil {
			log.Printf("[types] Warning: dropping salary adjustment %d: %v", i, err)
			continue
		}
		out = append(out, adj)
	}
	return out
}

// DecodeBonusHistory decodes a bonus_history JSON column with the same
// leniency as DecodeSalaryAdjustments.
func DecodeBonusHistory(value any) []Bonus {
	items, ok := jsonArray(value, "bonus history")
	if !ok {
		return []Bonus{}
	}

	out := make([]Bonus, 0, len(items))
	for i, item := range items {
		b := Bonus{
			Amount: field(item, "amount").Int(),
			Type:   field(item, "type").String(),
		}
		if t, ok := ParseDate(field(item, "date").String()); ok {
			b.Date = t
		}

		if err := recordValidator.Struct(b); err != nil {
			log.Printf("[types] Warning: dropping bonus %d: %v", i, err)
			continue
		}
		out = append(out, b)
	}
	return out
}

// jsonArray returns the elements of a JSON array column value.
func jsonArray(value any, what string) ([]gjson.Result, bool) {
	raw := SafeParseJSON[json.RawMessage](value, nil)
	if len(raw) == 0 {
		return nil, false
	}
	if !gjson.ValidBytes(raw) {
		log.Printf("[types] Warning: invalid %s JSON, using empty list", what)
		return nil, false
	}
	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.Null {
		return nil, false
	}
	if !parsed.IsArray() {
		log.Printf("[types] Warning: %s JSON is not an array, using empty list", what)
		return nil, false
	}
	return parsed.Array(), true
}

// field returns the first key of item that exists.
func field(item gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if r := item.Get(key); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
