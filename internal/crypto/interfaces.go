package crypto

// Sealer protects OAuth tokens at rest.
//
// Seal turns a plaintext secret into an opaque string that is safe to store
// in the credentials table; Open reverses it. Implementations must accept
// values that were stored before sealing was enabled: Open returns such
// values unchanged.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}
