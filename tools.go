//go:build tools

package tools

// No tool imports are tracked here. Mocks in pkg/log/mocks are generated
// with an installed mockery binary using .mockery.yml at the module root.
