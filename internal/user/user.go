// Package user identifies who is running tally on this machine
package user

import (
	"os"
	"os/user"
)

// Unknown is reported when no login name can be found
const Unknown = "unknown"

// LoginName returns the operating system login name of the current process.
// Falls back to $USER, then $USERNAME, then Unknown.
func LoginName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return Unknown
}
