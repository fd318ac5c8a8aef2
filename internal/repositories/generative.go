package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

const weatherToolName = "get_weather"

// TextModel is a generative model that can answer with JSON or ask for a tool call.
type TextModel interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

type GenerationRequest struct {
	Prompt      string
	Temperature float32
	// Output is a zero value of the type the answer must decode into; nil means free text.
	Output any
	Tools  []ToolSpec
}

// ToolSpec declares a function the model may call. All parameters are strings.
type ToolSpec struct {
	Name        string
	Description string
	Params      map[string]string
}

type ToolCall struct {
	Name string
	Args map[string]any
}

type GenerationResult struct {
	Text      string
	ToolCalls []ToolCall
}

var weatherTool = ToolSpec{
	Name:        weatherToolName,
	Description: "Returns current conditions and the daily forecast for a given location.",
	Params: map[string]string{
		"location": "The location to get weather for: a place name or a \"<lat>,<lon>\" pair.",
	},
}

const weatherPrompt = `You are a weather API. Return weather data as a single JSON object and nothing else.

Generate realistic current weather conditions and a %[1]d-day forecast for the following location: %[2]s

Today is %[3]s, %[4]s.
Rules:
- "forecast.forecastday" has exactly %[1]d entries, one per consecutive date starting today (%[4]s), ascending.
- The first entry has "label" "Today"; every later entry uses the 3-letter weekday of its date (Mon, Tue, Wed, ...).
- "date" uses the layout YYYY-MM-DD; hourly "time" uses YYYY-MM-DD HH:MM.
- Each "hour" array is either empty or has exactly 24 entries ordered from 00:00 to 23:00.
- Temperatures are Celsius; fields ending in "_f" are Fahrenheit. "maxtemp_c" is never below "mintemp_c".
- Humidity, cloud and chance fields are integers from 0 to 100; "is_day" is 0 or 1.
- Every "condition.text" is a short non-empty description such as "Partly cloudy".`

// GenerativeRepository asks a text model to stand in for a weather API. Its output is
// untrusted and always goes through the validator before it is returned.
type GenerativeRepository struct {
	model       TextModel
	validator   *models.Validator
	useTool     bool
	temperature float32
	timeout     time.Duration
	now         func() time.Time
	l           *logger.Logger
}

type GenerativeOption func(*GenerativeRepository)

// WithToolCalling offers the model a get_weather tool and generates data only when it calls it.
func WithToolCalling(enabled bool) GenerativeOption {
	return func(g *GenerativeRepository) { g.useTool = enabled }
}

func WithTemperature(t float32) GenerativeOption {
	return func(g *GenerativeRepository) { g.temperature = t }
}

func WithTimeout(d time.Duration) GenerativeOption {
	return func(g *GenerativeRepository) { g.timeout = d }
}

func WithGenerativeClock(now func() time.Time) GenerativeOption {
	return func(g *GenerativeRepository) { g.now = now }
}

func NewGenerativeRepository(model TextModel, v *models.Validator, l *logger.Logger, opts ...GenerativeOption) (*GenerativeRepository, error) {
	if model == nil {
		return nil, configMissing("generative", "text model")
	}
	if v == nil {
		v = models.NewValidator(models.DefaultForecastDays)
	}

	g := &GenerativeRepository{
		model:       model,
		validator:   v,
		temperature: 0.8,
		now:         time.Now,
		l:           l,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GenerativeRepository) Name() string {
	return "generative"
}

func (g *GenerativeRepository) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	q, err := models.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if !g.useTool {
		return g.generate(ctx, q.Raw)
	}

	res, err := g.model.Generate(ctx, GenerationRequest{
		Prompt:      fmt.Sprintf("What is the weather in %s?", q.Raw),
		Temperature: g.temperature,
		Tools:       []ToolSpec{weatherTool},
	})
	if err != nil {
		return nil, g.failed("tool request failed", err)
	}

	for _, call := range res.ToolCalls {
		if call.Name != weatherToolName {
			continue
		}

		location, _ := call.Args["location"].(string)
		if strings.TrimSpace(location) == "" {
			location = q.Raw
		}
		g.log("model requested weather tool", map[string]any{"query": q.Raw, "location": location})

		return g.generate(ctx, location)
	}

	return nil, g.failed("the model did not return weather data", nil)
}

func (g *GenerativeRepository) generate(ctx context.Context, location string) (*models.WeatherData, error) {
	now := g.now()
	prompt := fmt.Sprintf(weatherPrompt,
		g.validator.ForecastDays(),
		location,
		now.Weekday().String(),
		now.Format(models.DateLayout),
	)

	res, err := g.model.Generate(ctx, GenerationRequest{
		Prompt:      prompt,
		Temperature: g.temperature,
		Output:      models.WeatherData{},
	})
	if err != nil {
		return nil, g.failed("generation request failed", err)
	}

	text := stripCodeFence(res.Text)
	if text == "" {
		return nil, g.failed("model returned no output", nil)
	}

	data, err := g.validator.DecodeJSON([]byte(text))
	if err == nil {
		models.LabelForecast(data.Forecast.ForecastDay)
		data, err = g.validator.Validate(data)
	}
	if err != nil {
		g.log("model output rejected", map[string]any{"location": location, "err": err.Error()})
		return nil, err
	}

	return data, nil
}

func (g *GenerativeRepository) failed(msg string, err error) error {
	return &ProviderError{
		Kind:     GenerationFailed,
		Provider: g.Name(),
		Message:  msg,
		Err:      err,
	}
}

func (g *GenerativeRepository) log(msg string, fields map[string]any) {
	if g.l != nil {
		g.l.Info(msg, fields)
	}
}

// stripCodeFence removes a ```json ... ``` wrapper some models add around JSON answers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
