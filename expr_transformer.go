package fixture

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// exprTransformer evaluates expressions with github.com/expr-lang/expr.
// Registered functions are callable by name or through call("name", ...).
type exprTransformer struct {
	engineConfig
}

// NewExprTransformer returns the default Transformer.
func NewExprTransformer(opts ...EngineOption) Transformer {
	return &exprTransformer{engineConfig: newEngineConfig(opts)}
}

func (e *exprTransformer) engineName() string { return EngineExpr }

func (e *exprTransformer) Compile(expression string) (CompiledTransform, error) {
	if err := checkExpression(EngineExpr, expression); err != nil {
		return nil, err
	}
	program, err := cachedProgram(e.cache, EngineExpr, expression, e.compile)
	if err != nil {
		return nil, wrapTransformError(EngineExpr, expression, "", err)
	}
	return compiledTransform{
		engine:     EngineExpr,
		expression: expression,
		run: func(ctx TransformContext) (any, error) {
			return exprlang.Run(program, ctx.bindings())
		},
	}, nil
}

func (e *exprTransformer) compile(expression string) (*exprvm.Program, error) {
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	if registry := e.registry; registry != nil {
		options = append(options, exprlang.Function("call", func(params ...any) (any, error) {
			if len(params) == 0 {
				return nil, fmt.Errorf("call needs a function name")
			}
			name, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("call name must be a string, got %T", params[0])
			}
			return registry.Call(name, params[1:]...)
		}))
		for _, name := range registry.Names() {
			options = append(options, exprlang.Function(name, func(params ...any) (any, error) {
				return registry.Call(name, params...)
			}))
		}
	}
	return exprlang.Compile(expression, options...)
}
