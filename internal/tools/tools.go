package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/deposit-calculator-go/internal/cache"
	"github.com/cloud-ru/deposit-calculator-go/internal/calculations"
	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/internal/metrics"
	"github.com/cloud-ru/deposit-calculator-go/internal/validators"
	"github.com/cloud-ru/deposit-calculator-go/pkg/utils"
)

// Имена инструментов
const (
	CalculateDepositReturn     = "calculate_deposit_return"
	DepositGrowthSchedule      = "deposit_growth_schedule"
	CompareInterestConventions = "compare_interest_conventions"
	ListDepositProducts        = "list_deposit_products"
)

// ErrInvalidParameter: параметр отсутствует или имеет неверный тип
var ErrInvalidParameter = errors.New("invalid parameter")

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Deps holds everything the handlers share.
type Deps struct {
	Config  *config.Config
	Tracer  trace.Tracer
	Catalog *catalog.Catalog
	Random  calculations.RandomSource
	Cache   cache.Cache
	Log     *logrus.Logger
}

// CalculationResponse - ответ инструмента calculate_deposit_return
type CalculationResponse struct {
	Request calculations.Request       `json:"request"`
	Product catalog.Product            `json:"product"`
	Result  calculations.Result        `json:"result"`
	Rate    calculations.RateBreakdown `json:"rate"`
	Growth  calculations.GrowthMetrics `json:"growth"`
	Cached  bool                       `json:"cached"`
}

// ScheduleResponse - ответ инструмента deposit_growth_schedule
type ScheduleResponse struct {
	Request  calculations.Request         `json:"request"`
	Result   calculations.Result          `json:"result"`
	Rate     calculations.RateBreakdown   `json:"rate"`
	Schedule []calculations.ScheduleEntry `json:"schedule"`
}

// ComparisonResponse - ответ инструмента compare_interest_conventions
type ComparisonResponse struct {
	Request           calculations.Request       `json:"request"`
	Rate              calculations.RateBreakdown `json:"rate"`
	Simple            calculations.Result        `json:"simple"`
	Compound          calculations.Result        `json:"compound"`
	CompoundAdvantage float64                    `json:"compound_advantage"`
	Recommendation    string                     `json:"recommendation"`
}

// ProductsResponse - ответ инструмента list_deposit_products
type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

// Registry возвращает все инструменты по именам
func Registry(d *Deps) map[string]ToolHandler {
	return map[string]ToolHandler{
		CalculateDepositReturn:     CalculateDepositReturnHandler(d),
		DepositGrowthSchedule:      DepositGrowthScheduleHandler(d),
		CompareInterestConventions: CompareInterestConventionsHandler(d),
		ListDepositProducts:        ListDepositProductsHandler(d),
	}
}

// Names returns the registered tool names, sorted.
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CalculateDepositReturnHandler обрабатывает запрос на расчет доходности вклада
func CalculateDepositReturnHandler(d *Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := CalculateDepositReturn

		ctx, span := d.Tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		req, product, err := parseRequest(d, params)
		if err != nil {
			return nil, fail(span, toolName, err)
		}
		setRequestAttributes(span, req)

		key := cacheKey(product, req)
		if !product.Floating {
			if resp, ok := d.lookupCached(ctx, key); ok {
				span.SetAttributes(attribute.Bool("cached", true))
				observe(span, toolName, req, resp.Result)
				d.logCalculation(toolName, req, resp.Result, true)
				return resp, nil
			}
		}

		calc, err := calculations.Calculate(d.Catalog, req, d.Random)
		if err != nil {
			return nil, fail(span, toolName, err)
		}

		resp := &CalculationResponse{
			Request: req,
			Product: product,
			Result:  calc.Result.Rounded(),
			Rate:    roundRate(calc.Rate),
			Growth:  calculations.Growth(calc.Result, req.TenorMonths),
		}

		if !product.Floating {
			d.storeCached(ctx, key, resp)
		}

		observe(span, toolName, req, calc.Result)
		d.logCalculation(toolName, req, calc.Result, false)

		return resp, nil
	}
}

// DepositGrowthScheduleHandler обрабатывает запрос на помесячный график вклада
func DepositGrowthScheduleHandler(d *Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := DepositGrowthSchedule

		_, span := d.Tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		req, _, err := parseRequest(d, params)
		if err != nil {
			return nil, fail(span, toolName, err)
		}
		setRequestAttributes(span, req)

		calc, err := calculations.Calculate(d.Catalog, req, d.Random)
		if err != nil {
			return nil, fail(span, toolName, err)
		}

		schedule, err := calculations.Schedule(d.Config, calc.Result, req.TenorMonths, req.Convention)
		if err != nil {
			return nil, fail(span, toolName, err)
		}

		observe(span, toolName, req, calc.Result)
		span.SetAttributes(attribute.Int("schedule_rows", len(schedule)))

		return &ScheduleResponse{
			Request:  req,
			Result:   calc.Result.Rounded(),
			Rate:     roundRate(calc.Rate),
			Schedule: schedule,
		}, nil
	}
}

// CompareInterestConventionsHandler обрабатывает запрос на сравнение простых и сложных процентов
func CompareInterestConventionsHandler(d *Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := CompareInterestConventions

		_, span := d.Tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		req, _, err := parseRequest(d, params)
		if err != nil {
			return nil, fail(span, toolName, err)
		}
		setRequestAttributes(span, req)

		cmp, err := calculations.CompareConventions(d.Catalog, req, d.Random)
		if err != nil {
			return nil, fail(span, toolName, err)
		}

		observe(span, toolName, req, cmp.Compound)

		return &ComparisonResponse{
			Request:           req,
			Rate:              roundRate(cmp.Rate),
			Simple:            cmp.Simple.Rounded(),
			Compound:          cmp.Compound.Rounded(),
			CompoundAdvantage: utils.Round2(cmp.CompoundAdvantage),
			Recommendation:    recommendation(cmp),
		}, nil
	}
}

// ListDepositProductsHandler возвращает каталог продуктов
func ListDepositProductsHandler(d *Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ListDepositProducts

		_, span := d.Tracer.Start(ctx, toolName)
		defer span.End()

		products := d.Catalog.Products()
		span.SetAttributes(attribute.Int("products", len(products)), attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()

		return &ProductsResponse{Products: products}, nil
	}
}

func recommendation(cmp *calculations.Comparison) string {
	if cmp.CompoundAdvantage > 0 {
		return fmt.Sprintf("Капитализация выгоднее на %.2f за срок вклада.", utils.Round2(cmp.CompoundAdvantage))
	}
	return "Простые и сложные проценты дают одинаковый доход."
}

// parseRequest извлекает и проверяет параметры запроса
func parseRequest(d *Deps, params map[string]interface{}) (calculations.Request, catalog.Product, error) {
	var req calculations.Request

	principal, err := validators.ParsePrincipal(d.Config, params["principal"])
	if err != nil {
		return req, catalog.Product{}, err
	}

	productID, ok := params["product_id"].(string)
	if !ok || strings.TrimSpace(productID) == "" {
		return req, catalog.Product{}, fmt.Errorf("%w: product_id", ErrInvalidParameter)
	}

	tenor, err := validators.ParseInt("tenor_months", params["tenor_months"])
	if err != nil {
		return req, catalog.Product{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	age, err := validators.ParseInt("age", params["age"])
	if err != nil {
		return req, catalog.Product{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if err := validators.CheckAge(d.Config, age); err != nil {
		return req, catalog.Product{}, err
	}

	var conventionName string
	if raw, present := params["convention"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return req, catalog.Product{}, fmt.Errorf("%w: convention", ErrInvalidParameter)
		}
		conventionName = s
	}
	conv, err := validators.CheckConvention(conventionName)
	if err != nil {
		return req, catalog.Product{}, err
	}

	product, err := validators.CheckProductTenor(d.Catalog, productID, tenor)
	if err != nil {
		return req, catalog.Product{}, err
	}

	req = calculations.Request{
		Principal:   principal,
		ProductID:   product.ID,
		TenorMonths: tenor,
		Age:         age,
		Convention:  conv,
	}
	return req, product, nil
}

// ErrorType maps an error to the label used in metrics and logs.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, calculations.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, calculations.ErrTenorNotOffered):
		return "tenor_not_offered"
	case errors.Is(err, calculations.ErrInvalidPrincipal),
		errors.Is(err, calculations.ErrInvalidAge),
		errors.Is(err, calculations.ErrInvalidConvention),
		errors.Is(err, ErrInvalidParameter):
		return "validation"
	default:
		return "calculation"
	}
}

func fail(span trace.Span, toolName string, err error) error {
	kind := ErrorType(err)
	status := "error"
	if kind != "calculation" {
		status = "validation_error"
	}
	span.SetAttributes(attribute.String("error", kind))
	metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, kind).Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	if kind == "calculation" {
		return fmt.Errorf("ошибка при выполнении расчета: %w", err)
	}
	return fmt.Errorf("неверные параметры: %w", err)
}

func setRequestAttributes(span trace.Span, req calculations.Request) {
	span.SetAttributes(
		attribute.Float64("principal", req.Principal),
		attribute.String("product_id", req.ProductID),
		attribute.Int("tenor_months", req.TenorMonths),
		attribute.Int("age", req.Age),
		attribute.String("convention", string(req.Convention)),
	)
}

func observe(span trace.Span, toolName string, req calculations.Request, res calculations.Result) {
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("effective_rate_percent", res.EffectiveRatePercent),
		attribute.Float64("interest_earned", res.InterestEarned),
	)
	metrics.EffectiveRate.WithLabelValues(req.ProductID, string(req.Convention)).Observe(res.EffectiveRatePercent)
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}

func roundRate(b calculations.RateBreakdown) calculations.RateBreakdown {
	return calculations.RateBreakdown{
		BasePercent:        utils.RoundTo(b.BasePercent, 4),
		AgeBonus:           utils.RoundTo(b.AgeBonus, 4),
		TenorBonus:         utils.RoundTo(b.TenorBonus, 4),
		FloatingAdjustment: utils.RoundTo(b.FloatingAdjustment, 4),
		EffectivePercent:   utils.RoundTo(b.EffectivePercent, 4),
	}
}

// cacheKey covers every input that affects a deterministic result,
// including the product's base rate so a catalog change misses.
func cacheKey(p catalog.Product, req calculations.Request) string {
	return strings.Join([]string{
		p.ID,
		strconv.FormatFloat(p.BaseRatePercent, 'g', -1, 64),
		strconv.Itoa(req.TenorMonths),
		strconv.Itoa(req.Age),
		string(req.Convention),
		strconv.FormatFloat(req.Principal, 'g', -1, 64),
	}, "|")
}

func (d *Deps) logCalculation(toolName string, req calculations.Request, res calculations.Result, cached bool) {
	d.Log.WithFields(logrus.Fields{
		"tool":           toolName,
		"product_id":     req.ProductID,
		"tenor_months":   req.TenorMonths,
		"convention":     req.Convention,
		"effective_rate": res.EffectiveRatePercent,
		"cached":         cached,
	}).Debug("расчет выполнен")
}

func (d *Deps) lookupCached(ctx context.Context, key string) (*CalculationResponse, bool) {
	if d.Cache == nil {
		return nil, false
	}
	raw, ok := d.Cache.Get(ctx, key)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	var resp CalculationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		d.Log.WithError(err).WithField("key", key).Warn("повреждена запись кэша")
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	resp.Cached = true
	return &resp, true
}

func (d *Deps) storeCached(ctx context.Context, key string, resp *CalculationResponse) {
	if d.Cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		d.Log.WithError(err).Warn("не удалось сериализовать результат для кэша")
		return
	}
	if err := d.Cache.Set(ctx, key, string(data)); err != nil {
		d.Log.WithError(err).WithField("key", key).Warn("не удалось сохранить результат в кэш")
	}
}
