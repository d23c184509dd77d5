package emitter

import (
	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

// Binding names available to templates.
const (
	BindingOperations    = "operations"
	BindingName          = "name"
	BindingCamelCaseName = "camel_case_name"
	BindingPackage       = "package"
)

// OperationBinding is one entry of the "operations" binding.
type OperationBinding struct {
	Operation string
	Estimator estimator.Summary
}

// Bindings returns the template bindings for reg under the given model
// name. Operations keep the registry's declaration order.
func Bindings(reg *registry.Registry, model, pkg string) (map[string]any, error) {
	display, err := DisplayName(model)
	if err != nil {
		return nil, err
	}

	ops := make([]OperationBinding, 0, reg.Len())
	for op, est := range reg.All() {
		ops = append(ops, OperationBinding{Operation: op, Estimator: est.Summary()})
	}

	return map[string]any{
		BindingOperations:    ops,
		BindingName:          model,
		BindingCamelCaseName: display,
		BindingPackage:       pkg,
	}, nil
}
