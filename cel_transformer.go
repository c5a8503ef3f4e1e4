package fixture

import (
	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// celTransformer evaluates expressions with cel-go. value and key are
// strings, row is map(string, string), now is a timestamp and args is dyn.
// Registered functions are reached through call("name", arg).
type celTransformer struct {
	engineConfig
}

// NewCELTransformer returns a Transformer backed by cel-go.
func NewCELTransformer(opts ...EngineOption) Transformer {
	return &celTransformer{engineConfig: newEngineConfig(opts)}
}

func (e *celTransformer) engineName() string { return EngineCEL }

func (e *celTransformer) Compile(expression string) (CompiledTransform, error) {
	if err := checkExpression(EngineCEL, expression); err != nil {
		return nil, err
	}
	program, err := cachedProgram(e.cache, EngineCEL, expression, e.compile)
	if err != nil {
		return nil, wrapTransformError(EngineCEL, expression, "", err)
	}
	return compiledTransform{
		engine:     EngineCEL,
		expression: expression,
		run: func(ctx TransformContext) (any, error) {
			out, _, err := program.Eval(ctx.bindings())
			if err != nil {
				return nil, err
			}
			return out.Value(), nil
		},
	}, nil
}

func (e *celTransformer) compile(expression string) (celgo.Program, error) {
	env, err := celgo.NewEnv(e.declarations()...)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(ast)
}

func (e *celTransformer) declarations() []celgo.EnvOption {
	decls := []celgo.EnvOption{
		celgo.Variable("value", celgo.StringType),
		celgo.Variable("key", celgo.StringType),
		celgo.Variable("row", celgo.MapType(celgo.StringType, celgo.StringType)),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
	}
	if e.registry == nil {
		return decls
	}
	registry := e.registry
	return append(decls, celgo.Function("call",
		celgo.Overload("call_string_dyn",
			[]*celgo.Type{celgo.StringType, celgo.DynType},
			celgo.DynType,
			celgo.BinaryBinding(func(name, arg ref.Val) ref.Val {
				fn, ok := name.Value().(string)
				if !ok {
					return types.NewErr("call name must be a string")
				}
				out, err := registry.Call(fn, arg.Value())
				if err != nil {
					return types.NewErr("%s", err.Error())
				}
				if out == nil {
					return types.NullValue
				}
				return types.DefaultTypeAdapter.NativeToValue(out)
			}),
		),
	))
}
