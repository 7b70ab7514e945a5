package composer

import (
	"fmt"
	"os/user"

	"github.com/thellimist/docstrap/internal/config"
)

// PrivilegeError is returned when the update is started by the
// administrative account. Running Composer as that user leaves vendor/
// owned by it.
type PrivilegeError struct {
	User string
}

func (e *PrivilegeError) Error() string {
	return fmt.Sprintf("Please, don't use %s to update the project, use your own project user !", e.User)
}

// CheckUser returns a *PrivilegeError when current equals admin. An empty
// admin falls back to config.DefaultAdministrator.
func CheckUser(current, admin string) error {
	if admin == "" {
		admin = config.DefaultAdministrator
	}
	if current == admin {
		return &PrivilegeError{User: current}
	}
	return nil
}

// CurrentUser returns the invoking user's name: $USER when set, otherwise
// the account of the running process.
func CurrentUser(getenv func(string) string) string {
	if name := getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
