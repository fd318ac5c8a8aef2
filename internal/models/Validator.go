package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator checks candidate readings against the weather contract.
type Validator struct {
	forecastDays int
	v            *validator.Validate
}

func NewValidator(forecastDays int) *Validator {
	if forecastDays <= 0 {
		forecastDays = DefaultForecastDays
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(fmt.Sprintf("register finite validation: %v", err))
	}

	return &Validator{
		forecastDays: forecastDays,
		v:            v,
	}
}

func (val *Validator) ForecastDays() int {
	return val.forecastDays
}

// Validate returns w unchanged when it satisfies the contract, otherwise a *ValidationError.
func (val *Validator) Validate(w *WeatherData) (*WeatherData, error) {
	verr := &ValidationError{}
	if w == nil {
		verr.add("weather", "is required")
		return nil, verr
	}

	val.checkRules(w, verr)
	val.checkForecast(w.Forecast.ForecastDay, verr)

	if len(verr.Violations) > 0 {
		return nil, verr
	}

	return w, nil
}

// ValidateJSON checks an untrusted payload: every required key must be present with the
// right primitive type before the decoded value goes through Validate.
func (val *Validator) ValidateJSON(data []byte) (*WeatherData, error) {
	w, err := val.DecodeJSON(data)
	if err != nil {
		return nil, err
	}

	return val.Validate(w)
}

// DecodeJSON runs the key and type checks of ValidateJSON and decodes the payload
// without applying the contract rules.
func (val *Validator) DecodeJSON(data []byte) (*WeatherData, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Violations: []Violation{{Reason: fmt.Sprintf("is not valid JSON: %v", err)}}}
	}

	verr := &ValidationError{}
	checkShape("", reflect.TypeOf(WeatherData{}), raw, verr)
	if len(verr.Violations) > 0 {
		return nil, verr
	}

	var w WeatherData
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ValidationError{Violations: []Violation{{Reason: fmt.Sprintf("cannot be decoded: %v", err)}}}
	}

	return &w, nil
}

func (val *Validator) checkRules(w *WeatherData, verr *ValidationError) {
	err := val.v.Struct(w)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe.Namespace()), reason(fe))
	}
}

func (val *Validator) checkForecast(days []ForecastDay, verr *ValidationError) {
	if len(days) != val.forecastDays {
		verr.add("forecast.forecastday", fmt.Sprintf("must contain exactly %d days, got %d", val.forecastDays, len(days)))
	}

	if len(days) > 0 && days[0].Label != "" && days[0].Label != LabelToday {
		verr.add("forecast.forecastday[0].label", fmt.Sprintf("must be %q", LabelToday))
	}

	var prev time.Time
	for i, day := range days {
		date, err := time.Parse(DateLayout, day.Date)
		if err == nil {
			if i > 0 && !prev.IsZero() && !date.After(prev) {
				verr.add(fmt.Sprintf("forecast.forecastday[%d].date", i), "must be after the previous day")
			}
			prev = date
		}

		if n := len(day.Hour); n != 0 && n != HoursPerDay {
			verr.add(fmt.Sprintf("forecast.forecastday[%d].hour", i), fmt.Sprintf("must contain 0 or %d entries, got %d", HoursPerDay, n))
		}

		for j := 1; j < len(day.Hour); j++ {
			if hourKey(day.Hour[j]) <= hourKey(day.Hour[j-1]) {
				verr.add(fmt.Sprintf("forecast.forecastday[%d].hour[%d]", i, j), "must be later than the previous hour")
			}
		}
	}
}

func hourKey(h Hour) int64 {
	if h.TimeEpoch != 0 {
		return h.TimeEpoch
	}
	if t, err := time.Parse(TimeLayout, h.Time); err == nil {
		return t.Unix()
	}
	return 0
}

// checkShape walks the raw JSON alongside the Go type and records missing keys and type mismatches.
func checkShape(path string, t reflect.Type, raw any, verr *ValidationError) {
	switch t.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			verr.add(path, "must be an object")
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" || !f.IsExported() {
				continue
			}

			child := joinPath(path, name)
			value, present := obj[name]
			if !present || value == nil {
				if !strings.Contains(f.Tag.Get("json"), ",omitempty") {
					verr.add(child, "is required")
				}
				continue
			}
			checkShape(child, f.Type, value, verr)
		}
	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			verr.add(path, "must be an array")
			return
		}
		for i, item := range arr {
			checkShape(fmt.Sprintf("%s[%d]", path, i), t.Elem(), item, verr)
		}
	case reflect.String:
		if _, ok := raw.(string); !ok {
			verr.add(path, "must be a string")
		}
	case reflect.Bool:
		if _, ok := raw.(bool); !ok {
			verr.add(path, "must be a boolean")
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := raw.(float64); !ok {
			verr.add(path, "must be a number")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) {
			verr.add(path, "must be an integer")
		}
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// fieldPath drops the root type name validator puts in front of every namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a finite number"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "gtefield":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "datetime":
		return "must match layout " + fe.Param()
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
