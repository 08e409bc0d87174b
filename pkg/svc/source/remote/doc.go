// Package remote retrieves configuration from a Magento installation over SSH.
//
// ParseTarget turns a "user@host[:port]:/path" specifier into a Target, an
// SSHDialer opens an authenticated Session to it, and Source runs the dump shim
// through that session.
package remote
