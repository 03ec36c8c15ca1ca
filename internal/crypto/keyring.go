package crypto

// Keyring stores the booking database's encryption key. The key never lives
// in the config file; it comes from the platform keychain or, failing that,
// an environment variable.
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "shutterbook"
	KeyName     = "db-encryption-key"
)

// NewKeyring returns the best keyring available on this platform
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
