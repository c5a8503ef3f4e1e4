//go:build js_eval

package fixture

import (
	"github.com/dop251/goja"
)

// jsTransformer evaluates expressions with goja. Each evaluation runs on a
// fresh runtime, so expressions cannot leak state between rows.
type jsTransformer struct {
	engineConfig
}

// NewJSTransformer returns a Transformer backed by goja.
func NewJSTransformer(opts ...EngineOption) Transformer {
	return &jsTransformer{engineConfig: newEngineConfig(opts)}
}

func (e *jsTransformer) engineName() string { return EngineJS }

func (e *jsTransformer) Compile(expression string) (CompiledTransform, error) {
	if err := checkExpression(EngineJS, expression); err != nil {
		return nil, err
	}
	program, err := cachedProgram(e.cache, EngineJS, expression, compileJS)
	if err != nil {
		return nil, wrapTransformError(EngineJS, expression, "", err)
	}
	return compiledTransform{
		engine:     EngineJS,
		expression: expression,
		run: func(ctx TransformContext) (any, error) {
			vm := goja.New()
			if err := e.bind(vm, ctx); err != nil {
				return nil, err
			}
			out, err := vm.RunProgram(program)
			if err != nil {
				return nil, err
			}
			return out.Export(), nil
		},
	}, nil
}

func compileJS(expression string) (*goja.Program, error) {
	return goja.Compile("", "(function(){ return ("+expression+"); })()", false)
}

func (e *jsTransformer) bind(vm *goja.Runtime, ctx TransformContext) error {
	for name, value := range ctx.bindings() {
		if err := vm.Set(name, value); err != nil {
			return err
		}
	}
	if e.registry == nil {
		return nil
	}
	registry := e.registry
	if err := vm.Set("call", func(name string, args ...any) (any, error) {
		return registry.Call(name, args...)
	}); err != nil {
		return err
	}
	for _, name := range registry.Names() {
		if err := vm.Set(name, func(args ...any) (any, error) {
			return registry.Call(name, args...)
		}); err != nil {
			return err
		}
	}
	return nil
}
