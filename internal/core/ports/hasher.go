package ports

// Hasher computes content hashes of produced artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Hash returns a stable hex digest of the file's content.
	Hash(path string) (string, error)
}
