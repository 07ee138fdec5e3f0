// Package extras provides format validators beyond the built-in primitives:
// UUIDs, email addresses and expression-language conditions.
package extras

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/google/uuid"

	valido "github.com/valido-go/valido"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UUID accepts strings in canonical or URN UUID form.
func UUID() valido.Validator {
	return valido.ChainOf(
		valido.String(),
		valido.Condition(func(v any) (bool, error) {
			return uuid.Validate(v.(string)) == nil, nil
		}).Named("uuid"),
	)
}

// Email accepts strings shaped like an email address. The check is a coarse
// pattern, not an RFC 5322 parse.
func Email() valido.Validator {
	return valido.ChainOf(valido.String(), valido.Pattern(emailPattern))
}

// ExprCondition compiles src as an expression over the variable "value" and
// accepts values for which it evaluates to true.
//
//	v := ctx.MustParse(extras.ExprCondition(`value > 0 && value < 100`))
//
// A compile failure is a schema mistake and panics; evaluation failures reject
// the value.
func ExprCondition(src string) valido.Validator {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		panic(fmt.Sprintf("extras: cannot compile condition %q: %v", src, err))
	}
	return valido.Condition(func(v any) (bool, error) {
		out, err := expr.Run(program, map[string]any{"value": v})
		if err != nil {
			return false, nil
		}
		ok, _ := out.(bool)
		return ok, nil
	}).Named(src)
}

// RegisterFormats registers the format validators under their conventional
// names so schemas can refer to them as "uuid" and "email".
func RegisterFormats(c *valido.Context) {
	_ = c.Register("uuid", UUID())
	_ = c.Register("email", Email())
}
