package signer

// Signer produces signatures for repository databases
type Signer interface {
	// SignDetached creates an armored detached signature for data
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}
