//go:build !js_eval

package fixture

// NewJSTransformer returns nil unless built with the js_eval tag; ConvertExpr
// then reports ErrNoTransformer.
func NewJSTransformer(...EngineOption) Transformer {
	return nil
}
