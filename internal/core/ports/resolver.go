package ports

// ToolResolver locates the external tools a plan depends on before the
// pipeline starts.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ToolResolver interface {
	// Resolve maps each tool name to an absolute executable path. It
	// fails with a single error naming every tool that could not be
	// found.
	Resolve(names []string) (map[string]string, error)
}
