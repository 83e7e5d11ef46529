// Package users resolves the account zshkit provisions and checks that the
// invoking account may act on it.
package users

import (
	"os"
	"os/user"
	"strconv"

	"github.com/arthur-debert/zshkit/pkg/errors"
)

// Identity is a resolved local account.
type Identity struct {
	Name string
	UID  int
	GID  int
	Home string
}

// IsRoot reports whether the identity is the superuser.
func (i Identity) IsRoot() bool {
	return i.UID == 0
}

// String returns the account name.
func (i Identity) String() string {
	return i.Name
}

// Lookup resolves an account by name.
type Lookup func(name string) (Identity, error)

// LookupSystem resolves an account from the local user database.
func LookupSystem(name string) (Identity, error) {
	if name == "" {
		return Identity{}, errors.New(errors.ErrInvalidInput, "user name must not be empty")
	}
	u, err := user.Lookup(name)
	if err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrUserLookup, "unknown user %q", name).
			WithDetail("user", name)
	}
	return fromUser(u)
}

// Current resolves the invoking account.
func Current() (Identity, error) {
	u, err := user.Current()
	if err != nil {
		return Identity{}, errors.Wrap(err, errors.ErrUserLookup, "cannot resolve invoking user")
	}
	return fromUser(u)
}

func fromUser(u *user.User) (Identity, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrUserLookup, "non-numeric uid %q for %s", u.Uid, u.Username)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrUserLookup, "non-numeric gid %q for %s", u.Gid, u.Username)
	}
	return Identity{Name: u.Username, UID: uid, GID: gid, Home: u.HomeDir}, nil
}

// DefaultTarget picks the account to suggest when --user is omitted: the
// account that ran sudo when the invoker is root, else the invoker.
func DefaultTarget(invoker Identity) string {
	if invoker.IsRoot() {
		if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
			return sudoUser
		}
	}
	return invoker.Name
}

// CheckAccess fails when a non-root invoker targets another account.
func CheckAccess(invoker, target Identity) error {
	if invoker.IsRoot() || invoker.Name == target.Name {
		return nil
	}
	return errors.Newf(errors.ErrPermission,
		"%s cannot provision %s: re-run with sudo or target yourself", invoker.Name, target.Name).
		WithDetail("invoker", invoker.Name).
		WithDetail("target", target.Name)
}
