// Package keychain provides credential storage backed by the operating
// system's native secret store.
//
// Entries are addressed by (service, account):
//   - Service: a namespace, typically the salted scope of one tool
//     (e.g. "myapp-x7Kp2mQ9")
//   - Account: the secret name (e.g. "DATABASE_URL")
//
// On macOS entries are Keychain generic passwords labeled
// "keytar: <account>" for Keychain Access.app visibility, scoped with
// kSecAttrAccessibleWhenUnlockedThisDeviceOnly: never synced to iCloud,
// never available while the machine is locked. On Linux and Windows the
// same (service, account) pair maps onto the Secret Service API and the
// Credential Manager.
package keychain

import "errors"

// ErrNotFound is returned when an entry does not exist in the store.
var ErrNotFound = errors.New("secret not found")

// ErrUnavailable is returned when the platform credential service cannot
// be reached: locked keychain, no D-Bus session, unsupported platform.
var ErrUnavailable = errors.New("credential store unavailable")

// Store is the interface for credential storage operations.
//
// Set overwrites silently. Get and Delete report a missing entry by
// returning an error wrapping ErrNotFound.
type Store interface {
	Set(service, account, value string) error
	Get(service, account string) (string, error)
	Delete(service, account string) error
}

// Lister is implemented by stores that can enumerate the accounts stored
// under a service. The Secret Service and Credential Manager APIs expose
// no enumeration, so the store returned by Open does not implement it on
// those platforms.
type Lister interface {
	Accounts(service string) ([]string, error)
}

// Open reads this reserved account to probe the platform credential
// service: "not found" is the healthy response, anything else means the
// service is locked or absent.
const (
	probeService = "keytar"
	probeAccount = "__keytar_availability_probe__"
)
