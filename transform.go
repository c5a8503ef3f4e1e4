package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TransformContext carries the inputs bound into a conversion expression.
type TransformContext struct {
	Value string
	Key   string
	Row   map[string]string
	Now   *time.Time
	Args  map[string]any
}

func (ctx TransformContext) withDefaultNow() TransformContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx TransformContext) withDefaultMaps() TransformContext {
	if ctx.Row == nil {
		ctx.Row = map[string]string{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx TransformContext) withDefaults() TransformContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx TransformContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

// bindings returns the variables every engine exposes to expressions.
func (ctx TransformContext) bindings() map[string]any {
	return map[string]any{
		"value": ctx.Value,
		"key":   ctx.Key,
		"row":   ctx.Row,
		"now":   ctx.timestamp(),
		"args":  ctx.Args,
	}
}

// Transformer compiles conversion expressions.
type Transformer interface {
	Compile(expr string) (CompiledTransform, error)
}

// CompiledTransform is a reusable conversion program.
type CompiledTransform interface {
	Transform(ctx TransformContext) (any, error)
}

// EngineOption configures the built-in expression engines.
type EngineOption func(*engineConfig)

type engineConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// EngineCache stores compiled programs in cache, keyed by engine and
// expression. A nil cache compiles on every call.
func EngineCache(cache ProgramCache) EngineOption {
	return func(cfg *engineConfig) {
		cfg.cache = cache
	}
}

// EngineFunctions exposes the functions in registry to expressions. The
// registry is copied, so later registrations are not seen.
func EngineFunctions(registry *FunctionRegistry) EngineOption {
	return func(cfg *engineConfig) {
		cfg.registry = registry.Clone()
	}
}

func newEngineConfig(opts []EngineOption) engineConfig {
	var cfg engineConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func checkExpression(engine, expression string) error {
	if strings.TrimSpace(expression) == "" {
		return wrapTransformError(engine, expression, "", errors.New("expression must not be empty"))
	}
	return nil
}

// compiledTransform runs a program produced by one of the built-in engines.
type compiledTransform struct {
	engine     string
	expression string
	run        func(TransformContext) (any, error)
}

func (c compiledTransform) Transform(ctx TransformContext) (any, error) {
	ctx = ctx.withDefaults()
	out, err := c.run(ctx)
	if err != nil {
		return nil, wrapTransformError(c.engine, c.expression, ctx.Key, err)
	}
	return out, nil
}

// CompileValueFunc compiles expr once and returns a ValueFunc suitable for
// Record.Convert.
func CompileValueFunc(t Transformer, expr string, args map[string]any) (ValueFunc, error) {
	if t == nil {
		return nil, ErrNoTransformer
	}
	compiled, err := t.Compile(expr)
	if err != nil {
		return nil, err
	}
	return func(value string) (any, error) {
		return compiled.Transform(TransformContext{Value: value, Args: args})
	}, nil
}

// ConvertExpr is Convert driven by an expression. The expression sees the
// old value as `value`, the old key as `key` and the whole row as `row`.
func (r *Record) ConvertExpr(oldKey, newKey, expr string) error {
	if !r.Has(oldKey) {
		return nil
	}
	if expr == "" {
		return fmt.Errorf("fixture: expression must not be empty")
	}
	transformer, err := r.resolveTransformer()
	if err != nil {
		return err
	}
	engine := transformerEngineName(transformer)
	compiled, err := transformer.Compile(expr)
	if err != nil {
		return wrapTransformError(engine, expr, oldKey, err)
	}
	row := r.Data()
	start := time.Now()
	err = r.Convert(oldKey, newKey, func(value string) (any, error) {
		out, err := compiled.Transform(TransformContext{Value: value, Key: oldKey, Row: row})
		return out, wrapTransformError(engine, expr, oldKey, err)
	})
	r.cfg.logger.LogBinding(BindEvent{
		Op:       OpConvert,
		Key:      oldKey,
		Path:     newKey,
		Value:    row[oldKey],
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (r *Record) resolveTransformer() (Transformer, error) {
	if r.cfg.transformer != nil {
		return r.cfg.transformer, nil
	}
	opts := []EngineOption{EngineCache(r.cfg.programCache)}
	if r.cfg.functions != nil {
		opts = append(opts, EngineFunctions(r.cfg.functions))
	}
	var transformer Transformer
	switch r.cfg.settings.Engine {
	case EngineCEL:
		transformer = NewCELTransformer(opts...)
	case EngineJS:
		transformer = NewJSTransformer(opts...)
	default:
		transformer = NewExprTransformer(opts...)
	}
	if transformer == nil {
		return nil, ErrNoTransformer
	}
	r.cfg.transformer = transformer
	return transformer, nil
}

func transformerEngineName(t Transformer) string {
	if named, ok := t.(interface{ engineName() string }); ok {
		return named.engineName()
	}
	return "custom"
}
