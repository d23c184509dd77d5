// This file contains the logic for reading the transform of a regression
// term, which may be written as a bare keyword (`log2`) or as a string
// (`"log2"`).

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/delaygen/internal/ctxlog"
)

// transformName returns the transform named by expr. The name itself is not
// checked here; unknown transforms are rejected by registry validation.
func transformName(ctx context.Context, expr hcl.Expression) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return "", fmt.Errorf("transform is required")
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		// A bare identifier such as `identity`.
		if len(v.Traversal) != 1 {
			return "", fmt.Errorf("invalid transform keyword: traversal path is not a single identifier")
		}
		name := v.Traversal.RootName()
		logger.Debug("Parsed transform keyword.", "keyword", name)
		return name, nil

	default:
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return "", diags
		}
		val, err := convert.Convert(val, cty.String)
		if err != nil {
			return "", fmt.Errorf("transform must be a keyword or a string: %w", err)
		}
		if val.IsNull() {
			return "", fmt.Errorf("transform must not be null")
		}
		var name string
		if err := gocty.FromCtyValue(val, &name); err != nil {
			return "", err
		}
		logger.Debug("Parsed transform string.", "transform", name)
		return name, nil
	}
}
